package service

import (
	"context"
	"questionnaire_backend/pkg/logger"
	"questionnaire_backend/pkg/monitoring"
	"questionnaire_backend/pkg/tracing"
	"strconv"

	"go.uber.org/zap"
)

const msgNotLinked = "This questionnaire is not used by the assignment."

// ScoreStats 某类问卷在作业中的汇总分数，平均分缺失表示尚无评分
type ScoreStats struct {
	Max *float64 `json:"max"`
	Min *float64 `json:"min"`
	Avg *float64 `json:"avg"`
}

type QuestionnaireScores struct {
	Scores ScoreStats `json:"scores"`
}

// Scores 以问卷符号（可带轮次后缀，如 review2）为键
type Scores map[string]QuestionnaireScores

type ScoringService struct {
	Questionnaires QuestionnaireStore
	Questions      QuestionStore
	Assignments    AssignmentStore
	Cache          ScoreCache
}

func NewScoringService(questionnaires QuestionnaireStore, questions QuestionStore, assignments AssignmentStore, cache ScoreCache) *ScoringService {
	return &ScoringService{
		Questionnaires: questionnaires,
		Questions:      questions,
		Assignments:    assignments,
		Cache:          cache,
	}
}

// GetWeightedScore 根据作业关联记录的轮次确定分数键，再按权重折算
func (s *ScoringService) GetWeightedScore(ctx context.Context, questionnaireID, assignmentID uint, scores Scores) (score float64, err error) {
	_, span := tracing.StartSpan(ctx, "ScoringService.GetWeightedScore")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("weighted_score", err)
	}()

	q, err := s.Questionnaires.FindByID(questionnaireID)
	if err != nil {
		return 0, notFoundOr(err, msgQuestionnaireAbsent)
	}
	link, err := s.Assignments.FindLink(assignmentID, q.ID)
	if err != nil {
		return 0, notFoundOr(err, msgNotLinked)
	}

	symbol := q.Type.Symbol()
	if link.UsedInRound != nil {
		symbol += strconv.Itoa(*link.UsedInRound)
	}
	return ComputeWeightedScore(symbol, link.QuestionnaireWeight, scores), nil
}

// ComputeWeightedScore 平均分缺失时贡献 0，否则为 avg * weight / 100
func ComputeWeightedScore(symbol string, weight int, scores Scores) float64 {
	entry, ok := scores[symbol]
	if !ok || entry.Scores.Avg == nil {
		return 0
	}
	return *entry.Scores.Avg * float64(weight) / 100.0
}

// MaxPossibleScore 所有题目权重之和乘以问卷最高分
func (s *ScoringService) MaxPossibleScore(ctx context.Context, questionnaireID uint) (int, error) {
	if s.Cache != nil {
		if cached, ok, err := s.Cache.GetMaxScore(questionnaireID); err != nil {
			logger.Log.Warn("max score cache read failed", zap.Uint("questionnaire_id", questionnaireID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	q, err := s.Questionnaires.FindByID(questionnaireID)
	if err != nil {
		return 0, notFoundOr(err, msgQuestionnaireAbsent)
	}
	sum, err := s.Questions.SumWeights(q.ID)
	if err != nil {
		return 0, err
	}
	score := sum * q.MaxQuestionScore

	if s.Cache != nil {
		if err := s.Cache.SetMaxScore(q.ID, score); err != nil {
			logger.Log.Warn("max score cache write failed", zap.Uint("questionnaire_id", q.ID), zap.Error(err))
		}
	}
	return score, nil
}

func (s *ScoringService) InvalidateMaxScore(questionnaireID uint) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.InvalidateMaxScore(questionnaireID); err != nil {
		logger.Log.Warn("max score cache invalidation failed", zap.Uint("questionnaire_id", questionnaireID), zap.Error(err))
	}
}
