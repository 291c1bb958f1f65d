package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageService_Local(t *testing.T) {
	root := t.TempDir()
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: root}})
	ctx := context.Background()

	url, err := svc.Upload(ctx, "exports/a.csv", bytes.NewBufferString("txt,type\n"), 9, util.MimeCSV)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/exports/a.csv", url)

	data, err := os.ReadFile(filepath.Join(root, "exports", "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "txt,type\n", string(data))

	require.NoError(t, svc.Delete(ctx, "exports/a.csv"))
	_, err = os.Stat(filepath.Join(root, "exports", "a.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorageService_UnknownTypeFallsBackToLocal(t *testing.T) {
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "s3", LocalPath: t.TempDir()}})
	_, ok := svc.Store.(*localStore)
	assert.True(t, ok)
}

func TestCSVExportToStorage(t *testing.T) {
	f := newFixture()
	root := t.TempDir()
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: root}})
	svc := NewCSVService(fakeQuestionnaires{f.db}, fakeQuestions{f.db}, storage, f.scoring)
	q := f.db.addQuestionnaire(model.Questionnaire{Name: "R", InstructorID: 7, MaxQuestionScore: 5, Type: model.ReviewQuestionnaire})
	f.db.addQuestion(model.Question{QuestionnaireID: q.ID, Seq: 1, Txt: "Clarity", Type: model.Criterion})

	url, err := svc.ExportToStorage(context.Background(), instructor, q.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/exports/questionnaire_"))
	assert.True(t, strings.HasSuffix(url, ".csv"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/"))))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,Clarity,Criterion")
}
