package model

import (
	"strings"
)

type QuestionnaireType string

const (
	ReviewQuestionnaire                 QuestionnaireType = "ReviewQuestionnaire"
	MetareviewQuestionnaire             QuestionnaireType = "MetareviewQuestionnaire"
	AuthorFeedbackQuestionnaireSpaced   QuestionnaireType = "Author FeedbackQuestionnaire"
	AuthorFeedbackQuestionnaire         QuestionnaireType = "AuthorFeedbackQuestionnaire"
	TeammateReviewQuestionnaireSpaced   QuestionnaireType = "Teammate ReviewQuestionnaire"
	TeammateReviewQuestionnaire         QuestionnaireType = "TeammateReviewQuestionnaire"
	SurveyQuestionnaire                 QuestionnaireType = "SurveyQuestionnaire"
	AssignmentSurveyQuestionnaire       QuestionnaireType = "AssignmentSurveyQuestionnaire"
	AssignmentSurveyQuestionnaireSpaced QuestionnaireType = "Assignment SurveyQuestionnaire"
	GlobalSurveyQuestionnaireSpaced     QuestionnaireType = "Global SurveyQuestionnaire"
	GlobalSurveyQuestionnaire           QuestionnaireType = "GlobalSurveyQuestionnaire"
	CourseSurveyQuestionnaireSpaced     QuestionnaireType = "Course SurveyQuestionnaire"
	CourseSurveyQuestionnaire           QuestionnaireType = "CourseSurveyQuestionnaire"
	BookmarkRatingQuestionnaire         QuestionnaireType = "BookmarkratingQuestionnaire"
	QuizQuestionnaire                   QuestionnaireType = "QuizQuestionnaire"
)

// QuestionnaireTypes 可创建的问卷类型，顺序与界面下拉框一致
var QuestionnaireTypes = []QuestionnaireType{
	ReviewQuestionnaire,
	MetareviewQuestionnaire,
	AuthorFeedbackQuestionnaireSpaced,
	AuthorFeedbackQuestionnaire,
	TeammateReviewQuestionnaireSpaced,
	TeammateReviewQuestionnaire,
	SurveyQuestionnaire,
	AssignmentSurveyQuestionnaire,
	AssignmentSurveyQuestionnaireSpaced,
	GlobalSurveyQuestionnaireSpaced,
	GlobalSurveyQuestionnaire,
	CourseSurveyQuestionnaireSpaced,
	CourseSurveyQuestionnaire,
	BookmarkRatingQuestionnaire,
	QuizQuestionnaire,
}

func (t QuestionnaireType) IsValid() bool {
	for _, v := range QuestionnaireTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Symbol 返回评分结构中使用的键
func (t QuestionnaireType) Symbol() string {
	switch t.normalized() {
	case "ReviewQuestionnaire":
		return "review"
	case "MetareviewQuestionnaire":
		return "metareview"
	case "AuthorFeedbackQuestionnaire":
		return "feedback"
	case "TeammateReviewQuestionnaire":
		return "teammate"
	case "SurveyQuestionnaire":
		return "survey"
	case "AssignmentSurveyQuestionnaire":
		return "assignment_survey"
	case "GlobalSurveyQuestionnaire":
		return "global_survey"
	case "CourseSurveyQuestionnaire":
		return "course_survey"
	case "BookmarkratingQuestionnaire":
		return "bookmark"
	case "QuizQuestionnaire":
		return "quiz"
	}
	return ""
}

// DisplayType 返回用于匹配导航目录名称的展示类型，部分类型为 LIKE 模式
func (t QuestionnaireType) DisplayType() string {
	display := strings.SplitN(string(t), "Questionnaire", 2)[0]
	switch display {
	case "AuthorFeedback":
		return "Author%Feedback"
	case "CourseSurvey":
		return "Course%Survey"
	case "TeammateReview":
		return "Teammate%Review"
	case "GlobalSurvey":
		return "Global%Survey"
	case "AssignmentSurvey":
		return "Assignment%Survey"
	}
	return display
}

func (t QuestionnaireType) IsQuiz() bool {
	return t == QuizQuestionnaire
}

func (t QuestionnaireType) normalized() string {
	return strings.ReplaceAll(string(t), " ", "")
}

// swagger:model Questionnaire
type Questionnaire struct {
	BaseModel
	Name             string            `gorm:"size:255;not null;index:idx_questionnaire_owner_name" json:"name"`
	InstructorID     uint              `gorm:"index:idx_questionnaire_owner_name;type:bigint unsigned" json:"instructorId"`
	Private          bool              `gorm:"default:false" json:"private"`
	MinQuestionScore int               `gorm:"default:0" json:"minQuestionScore"`
	MaxQuestionScore int               `gorm:"default:5" json:"maxQuestionScore"`
	Type             QuestionnaireType `gorm:"size:64;not null" json:"type"`
	DisplayType      string            `gorm:"size:64" json:"displayType"`
	InstructionLoc   string            `gorm:"type:text" json:"instructionLoc"`
	Questions        []Question        `gorm:"foreignKey:QuestionnaireID" json:"questions,omitempty"`
}

func (Questionnaire) TableName() string {
	return "questionnaires"
}

// ScoreBoundsError 返回分值范围校验失败的提示，合法时返回空串
func (q *Questionnaire) ScoreBoundsError() string {
	if q.MaxQuestionScore < 1 {
		return "The maximum question score must be a positive integer."
	}
	if q.MinQuestionScore >= q.MaxQuestionScore {
		return "The minimum question score must be less than the maximum"
	}
	return ""
}
