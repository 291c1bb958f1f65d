package service

import (
	"context"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/repository"
	"questionnaire_backend/internal/util"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newSQLiteQuestionnaireService 使用内存 SQLite 上的 gorm 仓储组装问卷服务
func newSQLiteQuestionnaireService(t *testing.T) (*QuestionnaireService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
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
		&model.TreeFolder{},
		&model.TreeNode{},
	))

	svc := NewQuestionnaireService(
		repository.NewQuestionnaireRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAssignmentRepository(db),
		NewPlacementService(repository.NewPlacementRepository(db)),
		nil,
		testConfig(),
	)
	return svc, db
}

func TestCopyQuestionnaire_KeepsBreakBeforeInDatabase(t *testing.T) {
	svc, db := newSQLiteQuestionnaireService(t)
	ctx := context.Background()

	src := &model.Questionnaire{Name: "Layout", InstructorID: 8, MaxQuestionScore: 5, Type: model.ReviewQuestionnaire, DisplayType: "Review"}
	require.NoError(t, svc.Questionnaires.Create(src))
	require.NoError(t, svc.Questions.Create(&model.Question{
		QuestionnaireID: src.ID, Seq: 1, Txt: "Same page", Type: model.Criterion, Weight: util.IntPtr(1), BreakBefore: false,
	}))
	require.NoError(t, svc.Questions.Create(&model.Question{
		QuestionnaireID: src.ID, Seq: 2, Txt: "New page", Type: model.Criterion, Weight: util.IntPtr(1), BreakBefore: true,
	}))

	clone, err := svc.Copy(ctx, instructor, src.ID)
	require.NoError(t, err)

	copied, err := svc.Questions.ListByQuestionnaire(clone.ID)
	require.NoError(t, err)
	require.Len(t, copied, 2)
	assert.Equal(t, "Same page", copied[0].Txt)
	assert.False(t, copied[0].BreakBefore)
	assert.Equal(t, "New page", copied[1].Txt)
	assert.True(t, copied[1].BreakBefore)

	var stored int64
	require.NoError(t, db.Model(&model.Question{}).Where("questionnaire_id = ? AND break_before = ?", clone.ID, false).Count(&stored).Error)
	assert.Equal(t, int64(1), stored)
}

func TestDeleteQuestionnaire_RefusedWhileLinkedInDatabase(t *testing.T) {
	svc, db := newSQLiteQuestionnaireService(t)
	ctx := context.Background()

	q, err := svc.Create(ctx, instructor, CreateQuestionnaireRequest{Name: "Rubric", Type: model.ReviewQuestionnaire})
	require.NoError(t, err)
	a := &model.Assignment{Name: "Wiki"}
	require.NoError(t, db.Create(a).Error)
	require.NoError(t, svc.Assignments.SaveLink(&model.AssignmentQuestionnaire{AssignmentID: a.ID, QuestionnaireID: q.ID}))

	_, err = svc.Delete(ctx, instructor, q.ID)
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindReferentialIntegrity))

	require.NoError(t, svc.Assignments.DeleteLink(a.ID, q.ID))
	_, err = svc.Delete(ctx, instructor, q.ID)
	require.NoError(t, err)

	_, err = svc.Questionnaires.FindByID(q.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
