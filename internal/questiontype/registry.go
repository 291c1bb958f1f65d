// Package questiontype 定义题型的封闭集合以及各题型的默认值、选项校验和选项生成规则。
package questiontype

import (
	"fmt"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
)

const (
	DefaultWeight        = 1
	DefaultMaxLabel      = "Strongly disagree"
	DefaultMinLabel      = "Strongly agree"
	CriterionSize        = "50, 3"
	TextAreaSize         = "60, 5"
	TextFieldSize        = "30"
	DropdownAlternatives = "0|1|2|3|4|5"
	CopiedSize           = "50,3"
)

const (
	MsgQuestionTextRequired = "Please make sure all questions have text"
	MsgChoiceTextRequired   = "Please make sure every question has text for all options"
	MsgCorrectAnswerMissing = "Please select a correct answer for all questions"
	MsgCheckboxNeedsMany    = "A multiple-choice checkbox question should have more than one correct answer."
)

// ChoiceInput 单个选项的提交内容
type ChoiceInput struct {
	Text      string `json:"txt"`
	IsCorrect bool   `json:"isCorrect"`
}

// ChoicePayload 一道测验题的选项提交内容
// CorrectIndex 从 1 开始；StatementTrue 仅判断题使用
type ChoicePayload struct {
	Choices       []ChoiceInput `json:"choices"`
	CorrectIndex  int           `json:"correctIndex"`
	StatementTrue *bool         `json:"statementTrue,omitempty"`
}

type Variant interface {
	Type() model.QuestionType
	Scored() bool
	// ApplyDefaults 批量新增题目时填充题型默认值
	ApplyDefaults(q *model.Question)
	// ApplyCopyDefaults 复制问卷时补齐缺失的字段
	ApplyCopyDefaults(q *model.Question)
	ValidateChoices(questionText string, p *ChoicePayload) error
	SynthesizeChoices(questionID uint, p *ChoicePayload) []model.QuizQuestionChoice
	// UpdateChoices 按位置原地更新已有选项
	UpdateChoices(existing []model.QuizQuestionChoice, p *ChoicePayload)
}

// Resolve 将题型标签解析为具体题型，未知标签返回 ConfigurationError
func Resolve(tag model.QuestionType) (Variant, error) {
	switch tag {
	case model.Criterion:
		return criterion{}, nil
	case model.Scale:
		return scale{}, nil
	case model.Dropdown:
		return dropdown{}, nil
	case model.Checkbox:
		return checkbox{}, nil
	case model.TextArea:
		return textArea{}, nil
	case model.TextField:
		return textField{}, nil
	case model.MultipleChoiceRadio:
		return multipleChoiceRadio{}, nil
	case model.MultipleChoiceCheckbox:
		return multipleChoiceCheckbox{}, nil
	case model.TrueFalse:
		return trueFalse{}, nil
	}
	return nil, util.ConfigurationError(fmt.Sprintf("Unknown question type: %s", tag))
}

// All 返回全部题型，顺序固定
func All() []model.QuestionType {
	return []model.QuestionType{
		model.Criterion,
		model.Scale,
		model.Dropdown,
		model.Checkbox,
		model.TextArea,
		model.TextField,
		model.MultipleChoiceRadio,
		model.MultipleChoiceCheckbox,
		model.TrueFalse,
	}
}
