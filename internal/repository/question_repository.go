package repository

import (
	"questionnaire_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionRepository 题目及其附属数据（选项、建议、作答记录）
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Omit("Choices", "Advice").Create(q).Error
}

// CreateBatch 在同一事务中写入多道题目，任一失败则全部回滚
func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range questions {
			if err := tx.Omit("Choices", "Advice").Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) ListByQuestionnaire(questionnaireID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("questionnaire_id = ?", questionnaireID).
		Order("seq asc, id asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountByQuestionnaire(questionnaireID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("questionnaire_id = ?", questionnaireID).Count(&count).Error
	return count, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Omit("Choices", "Advice").Save(q).Error
}

// Delete 删除题目及其选项和建议
func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuizQuestionChoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionAdvice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func (r *QuestionRepository) CreateChoices(choices []model.QuizQuestionChoice) error {
	if len(choices) == 0 {
		return nil
	}
	return r.DB.Create(&choices).Error
}

func (r *QuestionRepository) ListChoices(questionID uint) ([]model.QuizQuestionChoice, error) {
	var cs []model.QuizQuestionChoice
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&cs).Error
	return cs, err
}

func (r *QuestionRepository) UpdateChoice(c *model.QuizQuestionChoice) error {
	return r.DB.Model(c).Select("txt", "iscorrect").Updates(c).Error
}

func (r *QuestionRepository) CreateAdvice(a *model.QuestionAdvice) error {
	return r.DB.Create(a).Error
}

func (r *QuestionRepository) ListAdvice(questionID uint) ([]model.QuestionAdvice, error) {
	var as []model.QuestionAdvice
	err := r.DB.Where("question_id = ?", questionID).Order("score desc, id asc").Find(&as).Error
	return as, err
}

func (r *QuestionRepository) ListAdviceByQuestionnaire(questionnaireID uint) ([]model.QuestionAdvice, error) {
	var as []model.QuestionAdvice
	err := r.DB.Joins("JOIN questions ON questions.id = question_advices.question_id").
		Where("questions.questionnaire_id = ? AND questions.deleted_at IS NULL", questionnaireID).
		Order("question_advices.question_id asc, question_advices.score desc").
		Find(&as).Error
	return as, err
}

// ReplaceAdvice 用新的建议列表整体替换题目已有的建议
func (r *QuestionRepository) ReplaceAdvice(questionID uint, advice []model.QuestionAdvice) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.QuestionAdvice{}).Error; err != nil {
			return err
		}
		if len(advice) == 0 {
			return nil
		}
		return tx.Create(&advice).Error
	})
}

// CountAnswers 统计问卷所有题目的作答记录数
func (r *QuestionRepository) CountAnswers(questionnaireID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Answer{}).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.questionnaire_id = ? AND questions.deleted_at IS NULL", questionnaireID).
		Count(&count).Error
	return count, err
}

// SumWeights 问卷所有题目权重之和
func (r *QuestionRepository) SumWeights(questionnaireID uint) (int, error) {
	var sum int
	err := r.DB.Model(&model.Question{}).
		Select("COALESCE(SUM(weight), 0)").
		Where("questionnaire_id = ?", questionnaireID).
		Scan(&sum).Error
	return sum, err
}
