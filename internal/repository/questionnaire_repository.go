package repository

import (
	"questionnaire_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionnaireRepository struct {
	DB *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) *QuestionnaireRepository {
	return &QuestionnaireRepository{DB: db}
}

func (r *QuestionnaireRepository) Create(q *model.Questionnaire) error {
	return r.DB.Omit("Questions").Create(q).Error
}

func (r *QuestionnaireRepository) FindByID(id uint) (*model.Questionnaire, error) {
	var q model.Questionnaire
	err := r.DB.First(&q, id).Error
	return &q, err
}

// FindWithQuestions 连同题目、选项和建议一起加载，题目按 seq 排序
func (r *QuestionnaireRepository) FindWithQuestions(id uint) (*model.Questionnaire, error) {
	var q model.Questionnaire
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq asc, id asc")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Questions.Advice").
		First(&q, id).Error
	return &q, err
}

// ExistsByNameAndOwner 检查同一所有者下是否已有同名问卷，excludeID 用于更新时排除自身
func (r *QuestionnaireRepository) ExistsByNameAndOwner(name string, ownerID, excludeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Questionnaire{}).
		Where("name = ? AND instructor_id = ? AND id <> ?", name, ownerID, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *QuestionnaireRepository) ListByOwner(ownerID uint, page, limit int) ([]model.Questionnaire, int64, error) {
	var qs []model.Questionnaire
	var total int64
	query := r.DB.Model(&model.Questionnaire{}).Where("instructor_id = ?", ownerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionnaireRepository) Update(q *model.Questionnaire) error {
	return r.DB.Omit("Questions").Save(q).Error
}

// DeleteCascade 在同一事务中删除问卷及其题目、选项、建议和导航节点
func (r *QuestionnaireRepository) DeleteCascade(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("questionnaire_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizQuestionChoice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuestionAdvice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("questionnaire_id = ?", id).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("node_object_id = ? AND type = ?", id, model.QuestionnaireNodeType).Delete(&model.TreeNode{}).Error; err != nil {
			return err
		}
		if err := tx.Where("questionnaire_id = ?", id).Delete(&model.AssignmentQuestionnaire{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Questionnaire{}, id).Error
	})
}
