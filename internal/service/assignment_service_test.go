package service

import (
	"context"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink_CreatesThenUpdates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	q := f.db.addQuestionnaire(model.Questionnaire{Name: "R", InstructorID: 7, MaxQuestionScore: 5, Type: model.ReviewQuestionnaire})
	a := f.db.addAssignment(model.Assignment{Name: "A"})

	link, err := f.assignment.Link(ctx, instructor, a.ID, q.ID, LinkRequest{Weight: 30})
	require.NoError(t, err)
	assert.Equal(t, 30, link.QuestionnaireWeight)
	assert.Nil(t, link.UsedInRound)

	updated, err := f.assignment.Link(ctx, ta, a.ID, q.ID, LinkRequest{Weight: 60, UsedInRound: util.IntPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, link.ID, updated.ID)
	assert.Equal(t, 60, updated.QuestionnaireWeight)
	assert.Len(t, f.db.links, 1)

	links, err := f.assignment.ListQuestionnaires(ctx, student, a.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, 1, *links[0].UsedInRound)
}

func TestLink_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	q := f.db.addQuestionnaire(model.Questionnaire{Name: "R", InstructorID: 7, MaxQuestionScore: 5, Type: model.ReviewQuestionnaire})
	a := f.db.addAssignment(model.Assignment{Name: "A"})

	_, err := f.assignment.Link(ctx, student, a.ID, q.ID, LinkRequest{Weight: 10})
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindPermission))

	_, err = f.assignment.Link(ctx, instructor, a.ID, q.ID, LinkRequest{Weight: 101})
	require.Error(t, err)
	assert.Equal(t, "Questionnaire weight must be between 0 and 100.", err.Error())

	_, err = f.assignment.Link(ctx, instructor, 999, q.ID, LinkRequest{Weight: 10})
	require.Error(t, err)
	assert.Equal(t, "Assignment not found.", err.Error())

	_, err = f.assignment.Link(ctx, instructor, a.ID, 999, LinkRequest{Weight: 10})
	require.Error(t, err)
	assert.Equal(t, "Questionnaire not found.", err.Error())

	assert.Empty(t, f.db.links)
}

func TestUnlink(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	q := f.db.addQuestionnaire(model.Questionnaire{Name: "R", InstructorID: 7, MaxQuestionScore: 5, Type: model.ReviewQuestionnaire})
	a := f.db.addAssignment(model.Assignment{Name: "A"})

	err := f.assignment.Unlink(ctx, instructor, a.ID, q.ID)
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindNotFound))

	f.db.addLink(model.AssignmentQuestionnaire{AssignmentID: a.ID, QuestionnaireID: q.ID, QuestionnaireWeight: 20})
	require.NoError(t, f.assignment.Unlink(ctx, admin, a.ID, q.ID))
	assert.Empty(t, f.db.links)

	// 取消关联后问卷可以删除
	_, err = f.questionnaire.Delete(ctx, instructor, q.ID)
	assert.NoError(t, err)
}

func TestWeightedScore(t *testing.T) {
	f := newFixture()
	q := f.db.addQuestionnaire(model.Questionnaire{Name: "T", InstructorID: 7, MaxQuestionScore: 5, Type: model.TeammateReviewQuestionnaire})
	a := f.db.addAssignment(model.Assignment{Name: "A"})
	f.db.addLink(model.AssignmentQuestionnaire{AssignmentID: a.ID, QuestionnaireID: q.ID, QuestionnaireWeight: 25})

	score, err := f.assignment.WeightedScore(context.Background(), instructor, a.ID, q.ID, avgScores("teammate", 88))
	require.NoError(t, err)
	assert.InDelta(t, 22.0, score, 1e-9)

	_, err = f.assignment.WeightedScore(context.Background(), ActingUser{ID: 2, Role: "guest"}, a.ID, q.ID, Scores{})
	assert.Error(t, err)
}
