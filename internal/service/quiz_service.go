package service

import (
	"context"
	"errors"
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
	QuizMinQuestionScore = 0
	QuizMaxQuestionScore = 1
	quizQuestionWeight   = 1
)

const (
	msgQuizNameRequired  = "Please specify quiz name (please do not use your name or id)."
	msgQuizTypeRequired  = "Please select a type for each question"
	msgQuizNoQuizzing    = "This assignment does not support the quizzing feature."
	msgQuizNeedsTeam     = "You should create or join a team first."
	msgQuizNeedsTopic    = "Your team should have a topic."
	msgQuizLocked        = "Your quiz has been taken by some other students, you cannot edit it anymore."
	msgNotAQuiz          = "This questionnaire is not a quiz."
	msgAssignmentAbsent  = "Assignment not found."
	msgParticipantAbsent = "Participant not found."
	msgParticipantOther  = "This participant does not belong to the assignment."
	msgParticipantOwner  = "You can only create a quiz as your own participant."
)

type QuizState string

const (
	QuizDraft    QuizState = "draft"
	QuizEditable QuizState = "editable"
	QuizLocked   QuizState = "locked"
)

// QuizQuestionInput 测验中的一道题，Choices 为空表示未提交选项
type QuizQuestionInput struct {
	Text    string                      `json:"txt"`
	Type    model.QuestionType          `json:"type"`
	Choices *questiontype.ChoicePayload `json:"choices"`
}

type QuizSubmission struct {
	AssignmentID  uint                `json:"assignmentId" binding:"required"`
	ParticipantID uint                `json:"participantId" binding:"required"`
	Name          string              `json:"name"`
	Private       bool                `json:"private"`
	Questions     []QuizQuestionInput `json:"questions"`
}

type QuizQuestionUpdate struct {
	Text    *string                     `json:"txt"`
	Choices *questiontype.ChoicePayload `json:"choices"`
}

type QuizUpdate struct {
	Name      *string                     `json:"name"`
	Private   *bool                       `json:"private"`
	Questions map[uint]QuizQuestionUpdate `json:"questions"`
}

// QuizTemplate 新建测验时的表单模板
type QuizTemplate struct {
	AssignmentID     uint                    `json:"assignmentId"`
	ParticipantID    uint                    `json:"participantId"`
	Type             model.QuestionnaireType `json:"type"`
	MinQuestionScore int                     `json:"minQuestionScore"`
	MaxQuestionScore int                     `json:"maxQuestionScore"`
	NumQuestions     int                     `json:"numQuestions"`
	QuestionTypes    []model.QuestionType    `json:"questionTypes"`
}

type QuizView struct {
	Quiz  *model.Questionnaire `json:"quiz"`
	State QuizState            `json:"state"`
}

type QuizService struct {
	Questionnaires QuestionnaireStore
	Questions      QuestionStore
	Assignments    AssignmentStore
	Cfg            *config.Config
}

func NewQuizService(questionnaires QuestionnaireStore, questions QuestionStore, assignments AssignmentStore, cfg *config.Config) *QuizService {
	return &QuizService{
		Questionnaires: questionnaires,
		Questions:      questions,
		Assignments:    assignments,
		Cfg:            cfg,
	}
}

// CheckEligibility 作业需要开启测验，参与者属于该作业和当前用户且已有团队，作业有选题时团队需要已选题
func (s *QuizService) CheckEligibility(ctx context.Context, actor ActingUser, assignmentID, participantID uint) (*QuizTemplate, error) {
	assignment, err := s.Assignments.FindByID(assignmentID)
	if err != nil {
		return nil, notFoundOr(err, msgAssignmentAbsent)
	}
	if !assignment.RequireQuiz {
		return nil, util.ValidationError(msgQuizNoQuizzing)
	}

	participant, err := s.Assignments.FindParticipant(participantID)
	if err != nil {
		return nil, notFoundOr(err, msgParticipantAbsent)
	}
	if participant.AssignmentID != assignment.ID {
		return nil, util.ValidationError(msgParticipantOther)
	}
	if participant.UserID != actor.ID {
		return nil, util.PermissionError(msgParticipantOwner)
	}
	if participant.TeamID == nil {
		return nil, util.ValidationError(msgQuizNeedsTeam)
	}
	team, err := s.Assignments.FindTeam(*participant.TeamID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ValidationError(msgQuizNeedsTeam)
	}
	if err != nil {
		return nil, err
	}
	if assignment.HasTopics && team.TopicID == nil {
		return nil, util.ValidationError(msgQuizNeedsTopic)
	}

	return &QuizTemplate{
		AssignmentID:     assignment.ID,
		ParticipantID:    participant.ID,
		Type:             model.QuizQuestionnaire,
		MinQuestionScore: QuizMinQuestionScore,
		MaxQuestionScore: QuizMaxQuestionScore,
		NumQuestions:     assignment.NumQuizQuestions,
		QuestionTypes: []model.QuestionType{
			model.MultipleChoiceRadio,
			model.MultipleChoiceCheckbox,
			model.TrueFalse,
		},
	}, nil
}

// validateSubmission 在写入任何数据之前校验整份测验，返回第一个错误
func validateSubmission(sub *QuizSubmission, numQuestions int) error {
	if strings.TrimSpace(sub.Name) == "" {
		return util.ValidationError(msgQuizNameRequired)
	}
	for i := 0; i < numQuestions; i++ {
		if i >= len(sub.Questions) || sub.Questions[i].Type == "" {
			return util.ValidationError(msgQuizTypeRequired)
		}
		question := sub.Questions[i]
		variant, err := questiontype.Resolve(question.Type)
		if err != nil {
			return err
		}
		if question.Choices == nil {
			return util.ValidationError(questiontype.MsgCorrectAnswerMissing)
		}
		if err := variant.ValidateChoices(question.Text, question.Choices); err != nil {
			return err
		}
	}
	return nil
}

// CreateQuiz 校验全部题目后再创建测验、题目和选项，测验不挂到导航树
func (s *QuizService) CreateQuiz(ctx context.Context, actor ActingUser, sub QuizSubmission) (quiz *model.Questionnaire, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizService.CreateQuiz")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("quiz_create", err)
	}()

	if err := actor.requireAccess(); err != nil {
		return nil, err
	}
	tmpl, err := s.CheckEligibility(ctx, actor, sub.AssignmentID, sub.ParticipantID)
	if err != nil {
		return nil, err
	}
	if err := validateSubmission(&sub, tmpl.NumQuestions); err != nil {
		return nil, err
	}

	ownerID, err := actor.OwnerID()
	if err != nil {
		return nil, err
	}
	exists, err := s.Questionnaires.ExistsByNameAndOwner(sub.Name, ownerID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ValidationError(msgNameNotUnique)
	}

	quiz = &model.Questionnaire{
		Name:             sub.Name,
		InstructorID:     ownerID,
		Private:          sub.Private,
		MinQuestionScore: QuizMinQuestionScore,
		MaxQuestionScore: QuizMaxQuestionScore,
		Type:             model.QuizQuestionnaire,
		DisplayType:      model.QuizQuestionnaire.DisplayType(),
		InstructionLoc:   s.Cfg.Questionnaire.InstructionURL,
	}
	if err := s.Questionnaires.Create(quiz); err != nil {
		return nil, err
	}

	for i := 0; i < tmpl.NumQuestions; i++ {
		input := sub.Questions[i]
		variant, _ := questiontype.Resolve(input.Type)

		question := &model.Question{
			QuestionnaireID: quiz.ID,
			Seq:             float64(i + 1),
			Txt:             input.Text,
			Type:            variant.Type(),
			Weight:          util.IntPtr(quizQuestionWeight),
			BreakBefore:     true,
		}
		if err := s.Questions.Create(question); err != nil {
			return nil, err
		}
		if err := s.Questions.CreateChoices(variant.SynthesizeChoices(question.ID, input.Choices)); err != nil {
			return nil, err
		}
	}

	logger.Log.Info("quiz created",
		zap.Uint("id", quiz.ID),
		zap.Uint("assignment_id", sub.AssignmentID),
		zap.Uint("participant_id", sub.ParticipantID),
		zap.Int("questions", tmpl.NumQuestions),
	)
	return s.Questionnaires.FindWithQuestions(quiz.ID)
}

func (s *QuizService) findQuiz(id uint) (*model.Questionnaire, error) {
	q, err := s.Questionnaires.FindWithQuestions(id)
	if err != nil {
		return nil, notFoundOr(err, msgQuestionnaireAbsent)
	}
	if !q.Type.IsQuiz() {
		return nil, util.ValidationError(msgNotAQuiz)
	}
	return q, nil
}

// stateOf 没有题目为草稿，有人作答后锁定
func (s *QuizService) stateOf(q *model.Questionnaire) (QuizState, error) {
	if len(q.Questions) == 0 {
		return QuizDraft, nil
	}
	answers, err := s.Questions.CountAnswers(q.ID)
	if err != nil {
		return "", err
	}
	if answers > 0 {
		return QuizLocked, nil
	}
	return QuizEditable, nil
}

func (s *QuizService) State(ctx context.Context, quizID uint) (QuizState, error) {
	q, err := s.findQuiz(quizID)
	if err != nil {
		return "", err
	}
	return s.stateOf(q)
}

func (s *QuizService) View(ctx context.Context, actor ActingUser, quizID uint) (*QuizView, error) {
	if err := actor.requireAccess(); err != nil {
		return nil, err
	}
	q, err := s.findQuiz(quizID)
	if err != nil {
		return nil, err
	}
	state, err := s.stateOf(q)
	if err != nil {
		return nil, err
	}
	return &QuizView{Quiz: q, State: state}, nil
}

// editableQuiz 加载测验并检查编辑权限和锁定状态
func (s *QuizService) editableQuiz(actor ActingUser, quizID uint) (*model.Questionnaire, error) {
	q, err := s.findQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if err := actor.requireEdit(q); err != nil {
		return nil, err
	}
	if err := ensureQuizUnlocked(s.Questions, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ensureQuizUnlocked 测验一旦有人作答就不能再修改，其他问卷不受影响
func ensureQuizUnlocked(questions QuestionStore, q *model.Questionnaire) error {
	if !q.Type.IsQuiz() {
		return nil
	}
	answers, err := questions.CountAnswers(q.ID)
	if err != nil {
		return err
	}
	if answers > 0 {
		return util.LockedStateError(msgQuizLocked)
	}
	return nil
}

func (s *QuizService) EditQuiz(ctx context.Context, actor ActingUser, quizID uint) (*model.Questionnaire, error) {
	return s.editableQuiz(actor, quizID)
}

// UpdateQuiz 按题目 ID 更新题干，并按位置原地更新已有选项
func (s *QuizService) UpdateQuiz(ctx context.Context, actor ActingUser, quizID uint, upd QuizUpdate) (quiz *model.Questionnaire, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizService.UpdateQuiz")
	defer func() {
		tracing.EndSpan(span, err)
		monitoring.ObserveOperation("quiz_update", err)
	}()

	quiz, err = s.editableQuiz(actor, quizID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, util.ValidationError(msgQuizNameRequired)
		}
		if *upd.Name != quiz.Name {
			exists, err := s.Questionnaires.ExistsByNameAndOwner(*upd.Name, quiz.InstructorID, quiz.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, util.ValidationError(msgNameNotUnique)
			}
		}
		quiz.Name = *upd.Name
	}
	if upd.Private != nil {
		quiz.Private = *upd.Private
	}
	if err := s.Questionnaires.Update(quiz); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(upd.Questions))
	for qid := range upd.Questions {
		ids = append(ids, qid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, qid := range ids {
		if err := s.updateQuizQuestion(quiz.ID, qid, upd.Questions[qid]); err != nil {
			return nil, err
		}
	}

	return s.Questionnaires.FindWithQuestions(quiz.ID)
}

func (s *QuizService) updateQuizQuestion(quizID, questionID uint, upd QuizQuestionUpdate) error {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		return notFoundOr(err, msgQuestionAbsent)
	}
	if question.QuestionnaireID != quizID {
		return util.NotFoundError(msgQuestionAbsent)
	}

	if upd.Text != nil {
		question.Txt = *upd.Text
		if err := s.Questions.Update(question); err != nil {
			return err
		}
	}
	if upd.Choices == nil {
		return nil
	}

	variant, err := questiontype.Resolve(question.Type)
	if err != nil {
		return err
	}
	choices, err := s.Questions.ListChoices(question.ID)
	if err != nil {
		return err
	}
	variant.UpdateChoices(choices, upd.Choices)
	for i := range choices {
		if err := s.Questions.UpdateChoice(&choices[i]); err != nil {
			return err
		}
	}
	return nil
}
