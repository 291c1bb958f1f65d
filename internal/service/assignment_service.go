package service

import (
	"context"
	"errors"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgWeightOutOfRange = "Questionnaire weight must be between 0 and 100."
	msgCannotLink       = "You are not allowed to change assignment questionnaires."
)

type LinkRequest struct {
	Weight      int  `json:"weight"`
	UsedInRound *int `json:"usedInRound"`
}

// AssignmentService 维护作业与问卷之间的关联
type AssignmentService struct {
	Assignments    AssignmentStore
	Questionnaires QuestionnaireStore
	Scoring        *ScoringService
}

func NewAssignmentService(assignments AssignmentStore, questionnaires QuestionnaireStore, scoring *ScoringService) *AssignmentService {
	return &AssignmentService{
		Assignments:    assignments,
		Questionnaires: questionnaires,
		Scoring:        scoring,
	}
}

func (s *AssignmentService) requireLinker(actor ActingUser) error {
	if !actor.HasAccess() || actor.Role == model.Student {
		return util.PermissionError(msgCannotLink)
	}
	return nil
}

// Link 新建或更新关联，同一作业下同一问卷只保留一条记录
func (s *AssignmentService) Link(ctx context.Context, actor ActingUser, assignmentID, questionnaireID uint, req LinkRequest) (*model.AssignmentQuestionnaire, error) {
	if err := s.requireLinker(actor); err != nil {
		return nil, err
	}
	if req.Weight < 0 || req.Weight > 100 {
		return nil, util.ValidationError(msgWeightOutOfRange)
	}
	if _, err := s.Assignments.FindByID(assignmentID); err != nil {
		return nil, notFoundOr(err, msgAssignmentAbsent)
	}
	if _, err := s.Questionnaires.FindByID(questionnaireID); err != nil {
		return nil, notFoundOr(err, msgQuestionnaireAbsent)
	}

	link, err := s.Assignments.FindLink(assignmentID, questionnaireID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		link = &model.AssignmentQuestionnaire{
			AssignmentID:    assignmentID,
			QuestionnaireID: questionnaireID,
		}
	} else if err != nil {
		return nil, err
	}
	link.QuestionnaireWeight = req.Weight
	link.UsedInRound = req.UsedInRound

	if err := s.Assignments.SaveLink(link); err != nil {
		return nil, err
	}
	logger.Log.Info("questionnaire linked to assignment",
		zap.Uint("assignment_id", assignmentID),
		zap.Uint("questionnaire_id", questionnaireID),
		zap.Int("weight", req.Weight),
	)
	return link, nil
}

func (s *AssignmentService) Unlink(ctx context.Context, actor ActingUser, assignmentID, questionnaireID uint) error {
	if err := s.requireLinker(actor); err != nil {
		return err
	}
	if _, err := s.Assignments.FindLink(assignmentID, questionnaireID); err != nil {
		return notFoundOr(err, msgNotLinked)
	}
	return s.Assignments.DeleteLink(assignmentID, questionnaireID)
}

func (s *AssignmentService) ListQuestionnaires(ctx context.Context, actor ActingUser, assignmentID uint) ([]model.AssignmentQuestionnaire, error) {
	if err := actor.requireAccess(); err != nil {
		return nil, err
	}
	if _, err := s.Assignments.FindByID(assignmentID); err != nil {
		return nil, notFoundOr(err, msgAssignmentAbsent)
	}
	return s.Assignments.ListLinks(assignmentID)
}

// WeightedScore 问卷在作业中的加权得分，scores 来自评审汇总
func (s *AssignmentService) WeightedScore(ctx context.Context, actor ActingUser, assignmentID, questionnaireID uint, scores Scores) (float64, error) {
	if err := actor.requireAccess(); err != nil {
		return 0, err
	}
	return s.Scoring.GetWeightedScore(ctx, questionnaireID, assignmentID, scores)
}
