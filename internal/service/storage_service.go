package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ObjectStore 导出文件的存放位置，key 为相对路径
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

// localStore 写到本地目录，由 /uploads 静态路由对外提供
type localStore struct {
	root string
}

func (s *localStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, r)
	return err
}

func (s *localStore) Remove(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
}

func (s *localStore) URL(key string) string {
	return path.Join("/uploads", key)
}

type minioStore struct {
	client *minio.Client
	bucket string
}

func newMinioStore(cfg *config.StorageConfig) (*minioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds: credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
	})
	if err != nil {
		return nil, err
	}
	return &minioStore{client: client, bucket: cfg.MinioBucket}, nil
}

func (s *minioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *minioStore) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *minioStore) URL(key string) string {
	return "/" + s.bucket + "/" + key
}

type ossStore struct {
	bucket   *oss.Bucket
	name     string
	endpoint string
}

func newOSSStore(cfg *config.StorageConfig) (*ossStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &ossStore{bucket: bucket, name: cfg.OSSBucket, endpoint: cfg.OSSEndpoint}, nil
}

func (s *ossStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.bucket.PutObject(key, r, oss.ContentType(contentType))
}

func (s *ossStore) Remove(ctx context.Context, key string) error {
	return s.bucket.DeleteObject(key)
}

func (s *ossStore) URL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.name, s.endpoint, key)
}

// StorageService 保存问卷导出文件；远端存储初始化失败时退回本地目录
type StorageService struct {
	Store ObjectStore
}

func NewStorageService(cfg *config.Config) *StorageService {
	var (
		store ObjectStore
		err   error
	)
	switch cfg.Storage.Type {
	case util.StorageMinio:
		store, err = newMinioStore(&cfg.Storage)
	case util.StorageOSS:
		store, err = newOSSStore(&cfg.Storage)
	}
	if err != nil {
		logger.Log.Warn("remote storage unavailable, falling back to local directory",
			zap.String("type", cfg.Storage.Type),
			zap.Error(err),
		)
		store = nil
	}
	if store == nil {
		store = &localStore{root: cfg.Storage.LocalPath}
	}
	return &StorageService{Store: store}
}

// Upload 写入对象并返回访问地址
func (s *StorageService) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := s.Store.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return s.Store.URL(key), nil
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	return s.Store.Remove(ctx, key)
}
