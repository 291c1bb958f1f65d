package repository

import (
	"questionnaire_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssignmentRepository) FindLink(assignmentID, questionnaireID uint) (*model.AssignmentQuestionnaire, error) {
	var link model.AssignmentQuestionnaire
	err := r.DB.Where("assignment_id = ? AND questionnaire_id = ?", assignmentID, questionnaireID).
		First(&link).Error
	return &link, err
}

// FirstLinkedAssignment 返回第一个使用该问卷的作业，没有时返回 gorm.ErrRecordNotFound
func (r *AssignmentRepository) FirstLinkedAssignment(questionnaireID uint) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.Joins("JOIN assignment_questionnaires aq ON aq.assignment_id = assignments.id AND aq.deleted_at IS NULL").
		Where("aq.questionnaire_id = ?", questionnaireID).
		Order("assignments.id asc").
		First(&a).Error
	return &a, err
}

func (r *AssignmentRepository) ListLinks(assignmentID uint) ([]model.AssignmentQuestionnaire, error) {
	var links []model.AssignmentQuestionnaire
	err := r.DB.Where("assignment_id = ?", assignmentID).Order("id asc").Find(&links).Error
	return links, err
}

func (r *AssignmentRepository) SaveLink(link *model.AssignmentQuestionnaire) error {
	return r.DB.Omit("Assignment").Save(link).Error
}

func (r *AssignmentRepository) DeleteLink(assignmentID, questionnaireID uint) error {
	return r.DB.Where("assignment_id = ? AND questionnaire_id = ?", assignmentID, questionnaireID).
		Delete(&model.AssignmentQuestionnaire{}).Error
}

func (r *AssignmentRepository) FindParticipant(id uint) (*model.AssignmentParticipant, error) {
	var p model.AssignmentParticipant
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *AssignmentRepository) FindTeam(id uint) (*model.AssignmentTeam, error) {
	var t model.AssignmentTeam
	err := r.DB.First(&t, id).Error
	return &t, err
}
