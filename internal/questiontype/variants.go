package questiontype

import (
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"strings"
)

func applyScoredDefaults(q *model.Question) {
	q.Weight = util.IntPtr(DefaultWeight)
	// 标签与字段名相反，保持与历史数据一致
	q.MaxLabel = util.StringPtr(DefaultMaxLabel)
	q.MinLabel = util.StringPtr(DefaultMinLabel)
}

func fillCopiedSize(q *model.Question) {
	if q.Size == nil {
		q.Size = util.StringPtr(CopiedSize)
	}
}

// indexedChoices 正确答案由 CorrectIndex 指定，其余题型默认采用该规则
type indexedChoices struct{}

func (indexedChoices) ValidateChoices(questionText string, p *ChoicePayload) error {
	if err := validateTexts(questionText, p); err != nil {
		return err
	}
	if p.CorrectIndex < 1 || p.CorrectIndex > len(p.Choices) {
		return util.ValidationError(MsgCorrectAnswerMissing)
	}
	return nil
}

func (indexedChoices) SynthesizeChoices(questionID uint, p *ChoicePayload) []model.QuizQuestionChoice {
	choices := make([]model.QuizQuestionChoice, 0, len(p.Choices))
	for i, c := range p.Choices {
		choices = append(choices, model.QuizQuestionChoice{
			QuestionID: questionID,
			Txt:        c.Text,
			IsCorrect:  p.CorrectIndex == i+1,
		})
	}
	return choices
}

func (indexedChoices) UpdateChoices(existing []model.QuizQuestionChoice, p *ChoicePayload) {
	for i := range existing {
		existing[i].IsCorrect = p.CorrectIndex == i+1
		if i < len(p.Choices) {
			existing[i].Txt = p.Choices[i].Text
		}
	}
}

func validateTexts(questionText string, p *ChoicePayload) error {
	if strings.TrimSpace(questionText) == "" {
		return util.ValidationError(MsgQuestionTextRequired)
	}
	for _, c := range p.Choices {
		if strings.TrimSpace(c.Text) == "" {
			return util.ValidationError(MsgChoiceTextRequired)
		}
	}
	return nil
}

type criterion struct{ indexedChoices }

func (criterion) Type() model.QuestionType { return model.Criterion }
func (criterion) Scored() bool             { return true }

func (criterion) ApplyDefaults(q *model.Question) {
	applyScoredDefaults(q)
	q.Size = util.StringPtr(CriterionSize)
}

func (criterion) ApplyCopyDefaults(q *model.Question) { fillCopiedSize(q) }

type scale struct{ indexedChoices }

func (scale) Type() model.QuestionType            { return model.Scale }
func (scale) Scored() bool                        { return true }
func (scale) ApplyDefaults(q *model.Question)     { applyScoredDefaults(q) }
func (scale) ApplyCopyDefaults(q *model.Question) {}

type dropdown struct{ indexedChoices }

func (dropdown) Type() model.QuestionType { return model.Dropdown }
func (dropdown) Scored() bool             { return false }

func (dropdown) ApplyDefaults(q *model.Question) {
	q.Alternatives = util.StringPtr(DropdownAlternatives)
}

func (dropdown) ApplyCopyDefaults(q *model.Question) {}

type checkbox struct{ indexedChoices }

func (checkbox) Type() model.QuestionType            { return model.Checkbox }
func (checkbox) Scored() bool                        { return false }
func (checkbox) ApplyDefaults(q *model.Question)     {}
func (checkbox) ApplyCopyDefaults(q *model.Question) {}

type textArea struct{ indexedChoices }

func (textArea) Type() model.QuestionType { return model.TextArea }
func (textArea) Scored() bool             { return false }

func (textArea) ApplyDefaults(q *model.Question) {
	q.Size = util.StringPtr(TextAreaSize)
}

func (textArea) ApplyCopyDefaults(q *model.Question) { fillCopiedSize(q) }

type textField struct{ indexedChoices }

func (textField) Type() model.QuestionType { return model.TextField }
func (textField) Scored() bool             { return false }

func (textField) ApplyDefaults(q *model.Question) {
	q.Size = util.StringPtr(TextFieldSize)
}

func (textField) ApplyCopyDefaults(q *model.Question) { fillCopiedSize(q) }

type multipleChoiceRadio struct{ indexedChoices }

func (multipleChoiceRadio) Type() model.QuestionType            { return model.MultipleChoiceRadio }
func (multipleChoiceRadio) Scored() bool                        { return false }
func (multipleChoiceRadio) ApplyDefaults(q *model.Question)     {}
func (multipleChoiceRadio) ApplyCopyDefaults(q *model.Question) {}

// multipleChoiceCheckbox 每个选项独立标记是否正确
type multipleChoiceCheckbox struct{}

func (multipleChoiceCheckbox) Type() model.QuestionType            { return model.MultipleChoiceCheckbox }
func (multipleChoiceCheckbox) Scored() bool                        { return false }
func (multipleChoiceCheckbox) ApplyDefaults(q *model.Question)     {}
func (multipleChoiceCheckbox) ApplyCopyDefaults(q *model.Question) {}

func (multipleChoiceCheckbox) ValidateChoices(questionText string, p *ChoicePayload) error {
	if err := validateTexts(questionText, p); err != nil {
		return err
	}
	correct := 0
	for _, c := range p.Choices {
		if c.IsCorrect {
			correct++
		}
	}
	switch {
	case correct == 0:
		return util.ValidationError(MsgCorrectAnswerMissing)
	case correct == 1:
		return util.ValidationError(MsgCheckboxNeedsMany)
	}
	return nil
}

func (multipleChoiceCheckbox) SynthesizeChoices(questionID uint, p *ChoicePayload) []model.QuizQuestionChoice {
	choices := make([]model.QuizQuestionChoice, 0, len(p.Choices))
	for _, c := range p.Choices {
		choices = append(choices, model.QuizQuestionChoice{
			QuestionID: questionID,
			Txt:        c.Text,
			IsCorrect:  c.IsCorrect,
		})
	}
	return choices
}

// UpdateChoices 提交中缺少的位置视为不正确，文本保持不变
func (multipleChoiceCheckbox) UpdateChoices(existing []model.QuizQuestionChoice, p *ChoicePayload) {
	for i := range existing {
		if i < len(p.Choices) {
			existing[i].IsCorrect = p.Choices[i].IsCorrect
			existing[i].Txt = p.Choices[i].Text
			continue
		}
		existing[i].IsCorrect = false
	}
}

const (
	TrueChoice  = "True"
	FalseChoice = "False"
)

// trueFalse 固定生成 True / False 两个选项，由 StatementTrue 决定哪一个正确
type trueFalse struct{}

func (trueFalse) Type() model.QuestionType            { return model.TrueFalse }
func (trueFalse) Scored() bool                        { return false }
func (trueFalse) ApplyDefaults(q *model.Question)     {}
func (trueFalse) ApplyCopyDefaults(q *model.Question) {}

func (trueFalse) ValidateChoices(questionText string, p *ChoicePayload) error {
	if strings.TrimSpace(questionText) == "" {
		return util.ValidationError(MsgQuestionTextRequired)
	}
	if p.StatementTrue == nil {
		return util.ValidationError(MsgCorrectAnswerMissing)
	}
	return nil
}

func (trueFalse) SynthesizeChoices(questionID uint, p *ChoicePayload) []model.QuizQuestionChoice {
	statementTrue := p.StatementTrue != nil && *p.StatementTrue
	return []model.QuizQuestionChoice{
		{QuestionID: questionID, Txt: TrueChoice, IsCorrect: statementTrue},
		{QuestionID: questionID, Txt: FalseChoice, IsCorrect: !statementTrue},
	}
}

func (trueFalse) UpdateChoices(existing []model.QuizQuestionChoice, p *ChoicePayload) {
	if p.StatementTrue == nil {
		return
	}
	for i := range existing {
		if existing[i].Txt == TrueChoice {
			existing[i].IsCorrect = *p.StatementTrue
		} else {
			existing[i].IsCorrect = !*p.StatementTrue
		}
	}
}
