package model

type QuestionType string

const (
	Criterion              QuestionType = "Criterion"
	Scale                  QuestionType = "Scale"
	Dropdown               QuestionType = "Dropdown"
	Checkbox               QuestionType = "Checkbox"
	TextArea               QuestionType = "TextArea"
	TextField              QuestionType = "TextField"
	MultipleChoiceRadio    QuestionType = "MultipleChoiceRadio"
	MultipleChoiceCheckbox QuestionType = "MultipleChoiceCheckbox"
	TrueFalse              QuestionType = "TrueFalse"
)

// swagger:model Question
type Question struct {
	BaseModel
	QuestionnaireID uint         `gorm:"index;type:bigint unsigned;not null" json:"questionnaireId"`
	Seq             float64      `gorm:"type:decimal(6,2);default:0" json:"seq"`
	Txt             string       `gorm:"type:text" json:"txt"`
	Type            QuestionType `gorm:"size:64;not null" json:"type"`
	Weight          *int         `json:"weight,omitempty"`
	MaxLabel        *string      `gorm:"size:255" json:"maxLabel,omitempty"`
	MinLabel        *string      `gorm:"size:255" json:"minLabel,omitempty"`
	Size            *string      `gorm:"size:32" json:"size,omitempty"`
	Alternatives    *string      `gorm:"size:255" json:"alternatives,omitempty"`
	BreakBefore     bool         `json:"breakBefore"`

	Choices []QuizQuestionChoice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
	Advice  []QuestionAdvice     `gorm:"foreignKey:QuestionID" json:"advice,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// WeightOrZero 未设置权重时按 0 计
func (q *Question) WeightOrZero() int {
	if q.Weight == nil {
		return 0
	}
	return *q.Weight
}

// swagger:model QuizQuestionChoice
type QuizQuestionChoice struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Txt        string `gorm:"type:text" json:"txt"`
	IsCorrect  bool   `gorm:"column:iscorrect;default:false" json:"isCorrect"`
}

func (QuizQuestionChoice) TableName() string {
	return "quiz_question_choices"
}

// swagger:model QuestionAdvice
type QuestionAdvice struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Score      int    `json:"score"`
	Advice     string `gorm:"type:text" json:"advice"`
}

func (QuestionAdvice) TableName() string {
	return "question_advices"
}

// Answer 评审或测验提交的作答记录
type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	ResponseID uint   `gorm:"index;type:bigint unsigned" json:"responseId"`
	Answer     *int   `json:"answer,omitempty"`
	Comments   string `gorm:"type:text" json:"comments"`
}

func (Answer) TableName() string {
	return "answers"
}
