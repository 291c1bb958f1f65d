package service

import (
	"context"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/questiontype"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/logger"
	"questionnaire_backend/pkg/monitoring"
	"questionnaire_backend/pkg/tracing"
	"time"

	"go.uber.org/zap"
)

const msgCopyFailed = "The questionnaire was not able to be copied. Please check the original course for missing information."

func copyFailed(cause error) error {
	return util.CopyError(msgCopyFailed + cause.Error())
}

// Copy 复制问卷及其题目和建议，新问卷归属当前操作者（助教归属其主讲教师）。
// 复制过程没有事务，中途失败时已写入的数据会保留。
func (s *QuestionnaireService) Copy(ctx context.Context, actor ActingUser, id uint) (clone *model.Questionnaire, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuestionnaireService.Copy")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("questionnaire_copy", err)
	}()

	if err := actor.requireAccess(); err != nil {
		return nil, err
	}
	orig, err := s.findQuestionnaire(id)
	if err != nil {
		return nil, err
	}
	questions, err := s.Questions.ListByQuestionnaire(orig.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := actor.OwnerID()
	if err != nil {
		return nil, err
	}

	clone = &model.Questionnaire{
		Name:             "Copy of " + orig.Name,
		InstructorID:     ownerID,
		Private:          orig.Private,
		MinQuestionScore: orig.MinQuestionScore,
		MaxQuestionScore: orig.MaxQuestionScore,
		Type:             orig.Type,
		DisplayType:      orig.DisplayType,
		InstructionLoc:   orig.InstructionLoc,
	}
	clone.CreatedAt = time.Now()

	if err := s.validateQuestionnaire(clone); err != nil {
		return nil, copyFailed(err)
	}
	if err := s.Questionnaires.Create(clone); err != nil {
		return nil, copyFailed(err)
	}

	for _, question := range questions {
		if err := s.copyQuestion(clone.ID, question); err != nil {
			logger.Log.Error("questionnaire copy aborted",
				zap.Uint("source_id", orig.ID),
				zap.Uint("clone_id", clone.ID),
				zap.Uint("question_id", question.ID),
				zap.Error(err),
			)
			return nil, copyFailed(err)
		}
	}

	if !clone.Type.IsQuiz() && s.Placement != nil {
		if _, err := s.Placement.Register(ctx, clone); err != nil {
			return nil, copyFailed(err)
		}
	}

	logger.Log.Info("questionnaire copied",
		zap.Uint("source_id", orig.ID),
		zap.Uint("clone_id", clone.ID),
		zap.Int("questions", len(questions)),
	)
	return clone, nil
}

func (s *QuestionnaireService) copyQuestion(cloneID uint, question model.Question) error {
	copied := question
	copied.ID = 0
	copied.CreatedAt = time.Time{}
	copied.UpdatedAt = time.Time{}
	copied.QuestionnaireID = cloneID
	copied.Choices = nil
	copied.Advice = nil

	if variant, err := questiontype.Resolve(question.Type); err == nil {
		variant.ApplyCopyDefaults(&copied)
	}
	if err := s.Questions.Create(&copied); err != nil {
		return err
	}

	advice, err := s.Questions.ListAdvice(question.ID)
	if err != nil {
		return err
	}
	for _, a := range advice {
		newAdvice := model.QuestionAdvice{
			QuestionID: copied.ID,
			Score:      a.Score,
			Advice:     a.Advice,
		}
		if err := s.Questions.CreateAdvice(&newAdvice); err != nil {
			return err
		}
	}
	return nil
}
