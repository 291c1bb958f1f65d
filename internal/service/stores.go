package service

import "questionnaire_backend/internal/model"

// 服务依赖的存储接口，由 repository 包中的 gorm 实现满足

type QuestionnaireStore interface {
	Create(q *model.Questionnaire) error
	FindByID(id uint) (*model.Questionnaire, error)
	FindWithQuestions(id uint) (*model.Questionnaire, error)
	ExistsByNameAndOwner(name string, ownerID, excludeID uint) (bool, error)
	ListByOwner(ownerID uint, page, limit int) ([]model.Questionnaire, int64, error)
	Update(q *model.Questionnaire) error
	DeleteCascade(id uint) error
}

type QuestionStore interface {
	Create(q *model.Question) error
	CreateBatch(questions []model.Question) error
	FindByID(id uint) (*model.Question, error)
	ListByQuestionnaire(questionnaireID uint) ([]model.Question, error)
	CountByQuestionnaire(questionnaireID uint) (int64, error)
	Update(q *model.Question) error
	Delete(id uint) error

	CreateChoices(choices []model.QuizQuestionChoice) error
	ListChoices(questionID uint) ([]model.QuizQuestionChoice, error)
	UpdateChoice(c *model.QuizQuestionChoice) error

	CreateAdvice(a *model.QuestionAdvice) error
	ListAdvice(questionID uint) ([]model.QuestionAdvice, error)
	ListAdviceByQuestionnaire(questionnaireID uint) ([]model.QuestionAdvice, error)
	ReplaceAdvice(questionID uint, advice []model.QuestionAdvice) error

	CountAnswers(questionnaireID uint) (int64, error)
	SumWeights(questionnaireID uint) (int, error)
}

type AssignmentStore interface {
	FindByID(id uint) (*model.Assignment, error)
	FindLink(assignmentID, questionnaireID uint) (*model.AssignmentQuestionnaire, error)
	FirstLinkedAssignment(questionnaireID uint) (*model.Assignment, error)
	ListLinks(assignmentID uint) ([]model.AssignmentQuestionnaire, error)
	SaveLink(link *model.AssignmentQuestionnaire) error
	DeleteLink(assignmentID, questionnaireID uint) error
	FindParticipant(id uint) (*model.AssignmentParticipant, error)
	FindTeam(id uint) (*model.AssignmentTeam, error)
}

type PlacementStore interface {
	FindFolderByName(pattern string) (*model.TreeFolder, error)
	FindFolderNode(folderID uint) (*model.TreeNode, error)
	FindOrCreateQuestionnaireNode(parentID, questionnaireID uint) (*model.TreeNode, error)
}

type UserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	UpdateLastLogin(userID uint) error
}

// ScoreCache 最大得分缓存，未配置 Redis 时为 nil
type ScoreCache interface {
	GetMaxScore(questionnaireID uint) (int, bool, error)
	SetMaxScore(questionnaireID uint, score int) error
	InvalidateMaxScore(questionnaireID uint) error
}
