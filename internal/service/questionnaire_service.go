package service

import (
	"context"
	"errors"
	"fmt"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/questiontype"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/logger"
	"questionnaire_backend/pkg/monitoring"
	"questionnaire_backend/pkg/tracing"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgTitleRequired       = "A rubric or survey must have a title."
	msgNameNotUnique       = "Questionnaire names must be unique."
	msgQuestionnaireAbsent = "Questionnaire not found."
	msgQuestionAbsent      = "Question not found."
	msgAssignmentInUse     = "The assignment %s uses this questionnaire. Are sure you want to delete the assignment?"
	msgHasResponses        = "There are responses based on this rubric, we suggest you do not delete it."
	msgTooManyQuestions    = "At most %d questions can be added at once."
)

// MaxNewQuestions 单次请求最多追加的题目数
const MaxNewQuestions = 100

type QuestionnaireService struct {
	Questionnaires QuestionnaireStore
	Questions      QuestionStore
	Assignments    AssignmentStore
	Placement      *PlacementService
	Scoring        *ScoringService
	Cfg            *config.Config
}

func NewQuestionnaireService(
	questionnaires QuestionnaireStore,
	questions QuestionStore,
	assignments AssignmentStore,
	placement *PlacementService,
	scoring *ScoringService,
	cfg *config.Config,
) *QuestionnaireService {
	return &QuestionnaireService{
		Questionnaires: questionnaires,
		Questions:      questions,
		Assignments:    assignments,
		Placement:      placement,
		Scoring:        scoring,
		Cfg:            cfg,
	}
}

type CreateQuestionnaireRequest struct {
	Name             string                  `json:"name"`
	Type             model.QuestionnaireType `json:"type" binding:"required"`
	Private          bool                    `json:"private"`
	MinQuestionScore *int                    `json:"minQuestionScore"`
	MaxQuestionScore *int                    `json:"maxQuestionScore"`
}

// UpdateQuestionnaireRequest 仅允许修改列出的字段
type UpdateQuestionnaireRequest struct {
	Name             *string                `json:"name"`
	Private          *bool                  `json:"private"`
	MinQuestionScore *int                   `json:"minQuestionScore"`
	MaxQuestionScore *int                   `json:"maxQuestionScore"`
	DisplayType      *string                `json:"displayType"`
	InstructionLoc   *string                `json:"instructionLoc"`
	Questions        map[uint]QuestionPatch `json:"questions"`
}

// QuestionPatch 题目可修改字段，Txt 置空表示删除该题
type QuestionPatch struct {
	Seq          *float64 `json:"seq"`
	Txt          *string  `json:"txt"`
	Weight       *int     `json:"weight"`
	Size         *string  `json:"size"`
	Alternatives *string  `json:"alternatives"`
	BreakBefore  *bool    `json:"breakBefore"`
	MaxLabel     *string  `json:"maxLabel"`
	MinLabel     *string  `json:"minLabel"`
}

type NewQuestionItem struct {
	Type model.QuestionType `json:"type"`
}

// AddQuestionsRequest 支持逐项指定题型，或者用 Type + TotalNum 批量添加同一题型
type AddQuestionsRequest struct {
	Type     model.QuestionType `json:"type"`
	TotalNum int                `json:"totalNum" binding:"min=0,max=100"`
	Items    []NewQuestionItem  `json:"items" binding:"max=100"`
}

type BatchItemFailure struct {
	Index int                `json:"index"`
	Type  model.QuestionType `json:"type"`
	Error string             `json:"error"`
}

// BatchAddResult 批量添加不是原子操作，成功的题目保留，失败的逐项返回
type BatchAddResult struct {
	Created  []model.Question   `json:"created"`
	Failures []BatchItemFailure `json:"failures"`
}

type AdviceInput struct {
	Score  int    `json:"score"`
	Advice string `json:"advice"`
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NotFoundError(msg)
	}
	return err
}

func (s *QuestionnaireService) findQuestionnaire(id uint) (*model.Questionnaire, error) {
	q, err := s.Questionnaires.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, msgQuestionnaireAbsent)
	}
	return q, nil
}

// validateQuestionnaire 校验分值范围以及同一所有者下名称唯一
func (s *QuestionnaireService) validateQuestionnaire(q *model.Questionnaire) error {
	if msg := q.ScoreBoundsError(); msg != "" {
		return util.ValidationError(msg)
	}
	exists, err := s.Questionnaires.ExistsByNameAndOwner(q.Name, q.InstructorID, q.ID)
	if err != nil {
		return err
	}
	if exists {
		return util.ValidationError(msgNameNotUnique)
	}
	return nil
}

func (s *QuestionnaireService) invalidateMaxScore(questionnaireID uint) {
	if s.Scoring != nil {
		s.Scoring.InvalidateMaxScore(questionnaireID)
	}
}

func (s *QuestionnaireService) Create(ctx context.Context, actor ActingUser, req CreateQuestionnaireRequest) (q *model.Questionnaire, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuestionnaireService.Create")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("questionnaire_create", err)
	}()

	if err := actor.requireAccess(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, util.ValidationError(msgTitleRequired)
	}
	if !req.Type.IsValid() {
		return nil, util.ConfigurationError(fmt.Sprintf("Unknown questionnaire type: %s", req.Type))
	}

	ownerID, err := actor.OwnerID()
	if err != nil {
		return nil, err
	}

	q = &model.Questionnaire{
		Name:             req.Name,
		InstructorID:     ownerID,
		Private:          req.Private,
		MinQuestionScore: s.Cfg.Questionnaire.DefaultMinQuestionScore,
		MaxQuestionScore: s.Cfg.Questionnaire.DefaultMaxQuestionScore,
		Type:             req.Type,
		DisplayType:      req.Type.DisplayType(),
		InstructionLoc:   s.Cfg.Questionnaire.InstructionURL,
	}
	if req.Type.IsQuiz() {
		q.MinQuestionScore = QuizMinQuestionScore
		q.MaxQuestionScore = QuizMaxQuestionScore
	}
	if req.MinQuestionScore != nil {
		q.MinQuestionScore = *req.MinQuestionScore
	}
	if req.MaxQuestionScore != nil {
		q.MaxQuestionScore = *req.MaxQuestionScore
	}

	if err := s.validateQuestionnaire(q); err != nil {
		return nil, err
	}
	if err := s.Questionnaires.Create(q); err != nil {
		return nil, err
	}

	// 测验不挂到导航树上
	if !q.Type.IsQuiz() && s.Placement != nil {
		if _, err := s.Placement.Register(ctx, q); err != nil {
			return nil, err
		}
	}

	logger.Log.Info("questionnaire created",
		zap.Uint("id", q.ID),
		zap.String("type", string(q.Type)),
		zap.Uint("owner", q.InstructorID),
	)
	return q, nil
}

func (s *QuestionnaireService) Get(ctx context.Context, actor ActingUser, id uint) (*model.Questionnaire, error) {
	if err := actor.requireAccess(); err != nil {
		return nil, err
	}
	q, err := s.Questionnaires.FindWithQuestions(id)
	if err != nil {
		return nil, notFoundOr(err, msgQuestionnaireAbsent)
	}
	return q, nil
}

func (s *QuestionnaireService) ListMine(ctx context.Context, actor ActingUser, page, limit int) ([]model.Questionnaire, int64, error) {
	if err := actor.requireAccess(); err != nil {
		return nil, 0, err
	}
	ownerID, err := actor.OwnerID()
	if err != nil {
		return nil, 0, err
	}
	return s.Questionnaires.ListByOwner(ownerID, page, limit)
}

func (s *QuestionnaireService) Update(ctx context.Context, actor ActingUser, id uint, req UpdateQuestionnaireRequest) (q *model.Questionnaire, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuestionnaireService.Update")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("questionnaire_update", err)
	}()

	q, err = s.findQuestionnaire(id)
	if err != nil {
		return nil, err
	}
	if err := actor.requireEdit(q); err != nil {
		return nil, err
	}
	if err := ensureQuizUnlocked(s.Questions, q); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, util.ValidationError(msgTitleRequired)
		}
		q.Name = *req.Name
	}
	if req.Private != nil {
		q.Private = *req.Private
	}
	if req.MinQuestionScore != nil {
		q.MinQuestionScore = *req.MinQuestionScore
	}
	if req.MaxQuestionScore != nil {
		q.MaxQuestionScore = *req.MaxQuestionScore
	}
	if req.DisplayType != nil {
		q.DisplayType = *req.DisplayType
	}
	if req.InstructionLoc != nil {
		q.InstructionLoc = *req.InstructionLoc
	}

	if err := s.validateQuestionnaire(q); err != nil {
		return nil, err
	}
	if err := s.Questionnaires.Update(q); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(req.Questions))
	for qid := range req.Questions {
		ids = append(ids, qid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, qid := range ids {
		if err := s.patchQuestion(q.ID, qid, req.Questions[qid]); err != nil {
			return nil, err
		}
	}
	s.invalidateMaxScore(q.ID)

	return s.Questionnaires.FindWithQuestions(q.ID)
}

func (s *QuestionnaireService) patchQuestion(questionnaireID, questionID uint, patch QuestionPatch) error {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		return notFoundOr(err, msgQuestionAbsent)
	}
	if question.QuestionnaireID != questionnaireID {
		return util.NotFoundError(msgQuestionAbsent)
	}

	if patch.Txt != nil && strings.TrimSpace(*patch.Txt) == "" {
		return s.Questions.Delete(question.ID)
	}

	if patch.Seq != nil {
		question.Seq = *patch.Seq
	}
	if patch.Txt != nil {
		question.Txt = *patch.Txt
	}
	if patch.Weight != nil {
		question.Weight = patch.Weight
	}
	if patch.Size != nil {
		question.Size = patch.Size
	}
	if patch.Alternatives != nil {
		question.Alternatives = patch.Alternatives
	}
	if patch.BreakBefore != nil {
		question.BreakBefore = *patch.BreakBefore
	}
	if patch.MaxLabel != nil {
		question.MaxLabel = patch.MaxLabel
	}
	if patch.MinLabel != nil {
		question.MinLabel = patch.MinLabel
	}
	return s.Questions.Update(question)
}

// AddNewQuestions 按题型默认值批量追加空白题目，每一项独立保存
func (s *QuestionnaireService) AddNewQuestions(ctx context.Context, actor ActingUser, questionnaireID uint, req AddQuestionsRequest) (result *BatchAddResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuestionnaireService.AddNewQuestions")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("questionnaire_add_questions", err)
	}()

	q, err := s.findQuestionnaire(questionnaireID)
	if err != nil {
		return nil, err
	}
	if err := actor.requireEdit(q); err != nil {
		return nil, err
	}
	if err := ensureQuizUnlocked(s.Questions, q); err != nil {
		return nil, err
	}

	if req.TotalNum > MaxNewQuestions || len(req.Items) > MaxNewQuestions {
		return nil, util.ValidationError(fmt.Sprintf(msgTooManyQuestions, MaxNewQuestions))
	}

	items := req.Items
	if len(items) == 0 {
		for i := 0; i < req.TotalNum; i++ {
			items = append(items, NewQuestionItem{Type: req.Type})
		}
	}

	existing, err := s.Questions.CountByQuestionnaire(q.ID)
	if err != nil {
		return nil, err
	}

	result = &BatchAddResult{Created: []model.Question{}, Failures: []BatchItemFailure{}}
	for i, item := range items {
		question, itemErr := s.addQuestion(q.ID, item.Type, float64(existing)+float64(i+1))
		if itemErr != nil {
			logger.Log.Warn("failed to add question",
				zap.Uint("questionnaire_id", q.ID),
				zap.Int("index", i),
				zap.String("type", string(item.Type)),
				zap.Error(itemErr),
			)
			result.Failures = append(result.Failures, BatchItemFailure{Index: i, Type: item.Type, Error: itemErr.Error()})
			continue
		}
		result.Created = append(result.Created, *question)
	}

	if len(result.Created) > 0 {
		s.invalidateMaxScore(q.ID)
	}
	return result, nil
}

func (s *QuestionnaireService) addQuestion(questionnaireID uint, tag model.QuestionType, seq float64) (*model.Question, error) {
	variant, err := questiontype.Resolve(tag)
	if err != nil {
		return nil, err
	}
	question := &model.Question{
		QuestionnaireID: questionnaireID,
		Seq:             seq,
		Txt:             "",
		Type:            variant.Type(),
		BreakBefore:     true,
	}
	variant.ApplyDefaults(question)
	if err := s.Questions.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionnaireService) RemoveQuestion(ctx context.Context, actor ActingUser, questionnaireID, questionID uint) error {
	q, err := s.findQuestionnaire(questionnaireID)
	if err != nil {
		return err
	}
	if err := actor.requireEdit(q); err != nil {
		return err
	}
	if err := ensureQuizUnlocked(s.Questions, q); err != nil {
		return err
	}
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		return notFoundOr(err, msgQuestionAbsent)
	}
	if question.QuestionnaireID != q.ID {
		return util.NotFoundError(msgQuestionAbsent)
	}
	if err := s.Questions.Delete(question.ID); err != nil {
		return err
	}
	s.invalidateMaxScore(q.ID)
	return nil
}

// ToggleAccess 切换公开/私有，返回提示信息
func (s *QuestionnaireService) ToggleAccess(ctx context.Context, actor ActingUser, id uint) (*model.Questionnaire, string, error) {
	q, err := s.findQuestionnaire(id)
	if err != nil {
		return nil, "", err
	}
	if err := actor.requireEdit(q); err != nil {
		return nil, "", err
	}
	if err := ensureQuizUnlocked(s.Questions, q); err != nil {
		return nil, "", err
	}

	q.Private = !q.Private
	if err := s.Questionnaires.Update(q); err != nil {
		return nil, "", err
	}

	access := "public"
	if q.Private {
		access = "private"
	}
	return q, fmt.Sprintf("the questionnaire \"%s\" has been successfully made %s. ", q.Name, access), nil
}

// Delete 问卷被作业引用或已有作答记录时拒绝删除，否则在事务中级联删除
func (s *QuestionnaireService) Delete(ctx context.Context, actor ActingUser, id uint) (msg string, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuestionnaireService.Delete")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("questionnaire_delete", err)
	}()

	q, err := s.findQuestionnaire(id)
	if err != nil {
		return "", err
	}
	if err := actor.requireEdit(q); err != nil {
		return "", err
	}

	assignment, err := s.Assignments.FirstLinkedAssignment(q.ID)
	if err == nil {
		return "", util.ReferentialIntegrityError(fmt.Sprintf(msgAssignmentInUse, assignment.Name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	answers, err := s.Questions.CountAnswers(q.ID)
	if err != nil {
		return "", err
	}
	if answers > 0 {
		return "", util.ReferentialIntegrityError(msgHasResponses)
	}

	if err := s.Questionnaires.DeleteCascade(q.ID); err != nil {
		return "", err
	}
	s.invalidateMaxScore(q.ID)

	logger.Log.Info("questionnaire deleted", zap.Uint("id", q.ID), zap.Uint("actor", actor.ID))
	return fmt.Sprintf("The questionnaire \"%s\" has been successfully deleted.", q.Name), nil
}

func (s *QuestionnaireService) ListAdvice(ctx context.Context, actor ActingUser, questionnaireID uint) ([]model.QuestionAdvice, error) {
	if err := actor.requireAccess(); err != nil {
		return nil, err
	}
	if _, err := s.findQuestionnaire(questionnaireID); err != nil {
		return nil, err
	}
	return s.Questions.ListAdviceByQuestionnaire(questionnaireID)
}

// SaveAdvice 整体替换某道题的建议
func (s *QuestionnaireService) SaveAdvice(ctx context.Context, actor ActingUser, questionID uint, inputs []AdviceInput) ([]model.QuestionAdvice, error) {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		return nil, notFoundOr(err, msgQuestionAbsent)
	}
	q, err := s.findQuestionnaire(question.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	if err := actor.requireEdit(q); err != nil {
		return nil, err
	}
	if err := ensureQuizUnlocked(s.Questions, q); err != nil {
		return nil, err
	}

	advice := make([]model.QuestionAdvice, 0, len(inputs))
	for _, in := range inputs {
		if in.Score < q.MinQuestionScore || in.Score > q.MaxQuestionScore {
			return nil, util.ValidationError(fmt.Sprintf("Advice score %d is outside the questionnaire range %d..%d.",
				in.Score, q.MinQuestionScore, q.MaxQuestionScore))
		}
		advice = append(advice, model.QuestionAdvice{
			QuestionID: question.ID,
			Score:      in.Score,
			Advice:     in.Advice,
		})
	}

	if err := s.Questions.ReplaceAdvice(question.ID, advice); err != nil {
		return nil, err
	}
	return s.Questions.ListAdvice(question.ID)
}
