package repository

import (
	"questionnaire_backend/internal/model"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存 SQLite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库按连接隔离，只能保留一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Questionnaire{},
		&model.Question{},
		&model.QuizQuestionChoice{},
		&model.QuestionAdvice{},
		&model.Answer{},
		&model.Assignment{},
		&model.AssignmentQuestionnaire{},
		&model.AssignmentParticipant{},
		&model.AssignmentTeam{},
		&model.TreeFolder{},
		&model.TreeNode{},
	))
	return db
}

func seedQuestionnaire(t *testing.T, db *gorm.DB, name string) *model.Questionnaire {
	t.Helper()
	q := &model.Questionnaire{
		Name:             name,
		InstructorID:     7,
		MaxQuestionScore: 5,
		Type:             model.ReviewQuestionnaire,
		DisplayType:      "Review",
	}
	require.NoError(t, NewQuestionnaireRepository(db).Create(q))
	return q
}

func seedQuestion(t *testing.T, db *gorm.DB, q model.Question) *model.Question {
	t.Helper()
	if q.Type == "" {
		q.Type = model.Criterion
	}
	require.NoError(t, NewQuestionRepository(db).Create(&q))
	return &q
}

func countRows(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}
