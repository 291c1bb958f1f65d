package util

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// OpenImportFile 校验上传的题目 CSV（扩展名、大小、内容嗅探），通过后返回已回到开头的文件
func OpenImportFile(header *multipart.FileHeader) (multipart.File, error) {
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return nil, ValidationError("only .csv files are accepted")
	}
	if header.Size > MaxImportFileSize {
		return nil, ValidationError(fmt.Sprintf("csv file exceeds %d bytes", MaxImportFileSize))
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	if err := sniffImportType(file); err != nil {
		file.Close()
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

// sniffImportType 读取前 512 字节判断内容类型，二进制文件直接拒绝
func sniffImportType(r io.Reader) error {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	mimeType := http.DetectContentType(buf[:n])
	for _, allowed := range AllowedImportMimeTypes {
		if strings.HasPrefix(mimeType, allowed) {
			return nil
		}
	}
	return ValidationError("invalid file type: " + mimeType)
}
