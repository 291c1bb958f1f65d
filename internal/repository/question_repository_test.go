package repository

import (
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRepository_CreateKeepsBreakBefore(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	q := seedQuestionnaire(t, db, "Rubric")

	noBreak := seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 1, Txt: "Inline", BreakBefore: false})
	withBreak := seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 2, Txt: "New page", BreakBefore: true})

	stored, err := repo.FindByID(noBreak.ID)
	require.NoError(t, err)
	assert.False(t, stored.BreakBefore)

	stored, err = repo.FindByID(withBreak.ID)
	require.NoError(t, err)
	assert.True(t, stored.BreakBefore)
}

func TestQuestionRepository_CreateBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	q := seedQuestionnaire(t, db, "Rubric")
	existing := seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 1, Txt: "Existing"})

	batch := []model.Question{
		{QuestionnaireID: q.ID, Seq: 2, Txt: "Second", Type: model.Criterion},
		{QuestionnaireID: q.ID, Seq: 3, Txt: "Third", Type: model.TextArea},
	}
	require.NoError(t, repo.CreateBatch(batch))
	assert.NotZero(t, batch[0].ID)
	assert.NotZero(t, batch[1].ID)

	count, err := repo.CountByQuestionnaire(q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	t.Run("rolls back on failure", func(t *testing.T) {
		failing := []model.Question{
			{QuestionnaireID: q.ID, Seq: 4, Txt: "Fourth", Type: model.Criterion},
			{BaseModel: model.BaseModel{ID: existing.ID}, QuestionnaireID: q.ID, Seq: 5, Txt: "Duplicate id", Type: model.Criterion},
		}
		require.Error(t, repo.CreateBatch(failing))

		count, err := repo.CountByQuestionnaire(q.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.Zero(t, countRows(t, db, &model.Question{}, "txt = ?", "Fourth"))
	})
}

func TestQuestionRepository_SumWeights(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	q := seedQuestionnaire(t, db, "Rubric")
	other := seedQuestionnaire(t, db, "Other")
	empty := seedQuestionnaire(t, db, "Empty")

	seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 1, Weight: util.IntPtr(2)})
	seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 2, Weight: util.IntPtr(3)})
	seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 3, Type: model.TextArea})
	removed := seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 4, Weight: util.IntPtr(10)})
	seedQuestion(t, db, model.Question{QuestionnaireID: other.ID, Seq: 1, Weight: util.IntPtr(7)})
	require.NoError(t, repo.Delete(removed.ID))

	sum, err := repo.SumWeights(q.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, sum)

	sum, err = repo.SumWeights(empty.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sum)
}

func TestQuestionRepository_CountAnswers(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	q := seedQuestionnaire(t, db, "Rubric")
	other := seedQuestionnaire(t, db, "Other")

	q1 := seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 1})
	q2 := seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 2})
	removed := seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 3})
	o1 := seedQuestion(t, db, model.Question{QuestionnaireID: other.ID, Seq: 1})

	for _, questionID := range []uint{q1.ID, q1.ID, q2.ID, removed.ID, o1.ID} {
		require.NoError(t, db.Create(&model.Answer{QuestionID: questionID, ResponseID: 1}).Error)
	}
	require.NoError(t, repo.Delete(removed.ID))

	n, err := repo.CountAnswers(q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.CountAnswers(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestQuestionRepository_DeleteRemovesChoicesAndAdvice(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	q := seedQuestionnaire(t, db, "Quiz")
	question := seedQuestion(t, db, model.Question{QuestionnaireID: q.ID, Seq: 1, Type: model.MultipleChoiceRadio})

	require.NoError(t, repo.CreateChoices([]model.QuizQuestionChoice{
		{QuestionID: question.ID, Txt: "A", IsCorrect: true},
		{QuestionID: question.ID, Txt: "B"},
	}))
	require.NoError(t, repo.ReplaceAdvice(question.ID, []model.QuestionAdvice{{QuestionID: question.ID, Score: 1, Advice: "ok"}}))

	require.NoError(t, repo.Delete(question.ID))

	assert.Zero(t, countRows(t, db, &model.Question{}, "id = ?", question.ID))
	assert.Zero(t, countRows(t, db, &model.QuizQuestionChoice{}, "question_id = ?", question.ID))
	assert.Zero(t, countRows(t, db, &model.QuestionAdvice{}, "question_id = ?", question.ID))
}
