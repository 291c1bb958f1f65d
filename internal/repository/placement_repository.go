package repository

import (
	"questionnaire_backend/internal/model"

	"gorm.io/gorm"
)

// PlacementRepository 导航树目录与节点
type PlacementRepository struct {
	DB *gorm.DB
}

func NewPlacementRepository(db *gorm.DB) *PlacementRepository {
	return &PlacementRepository{DB: db}
}

// FindFolderByName 按 LIKE 模式查找目录，展示类型中可能带有 %
func (r *PlacementRepository) FindFolderByName(pattern string) (*model.TreeFolder, error) {
	var f model.TreeFolder
	err := r.DB.Where("name LIKE ?", pattern).Order("id asc").First(&f).Error
	return &f, err
}

func (r *PlacementRepository) FindFolderNode(folderID uint) (*model.TreeNode, error) {
	var n model.TreeNode
	err := r.DB.Where("node_object_id = ? AND type = ?", folderID, model.FolderNodeType).First(&n).Error
	return &n, err
}

func (r *PlacementRepository) FindOrCreateQuestionnaireNode(parentID, questionnaireID uint) (*model.TreeNode, error) {
	var n model.TreeNode
	err := r.DB.
		Where(model.TreeNode{ParentID: &parentID, NodeObjectID: questionnaireID, Type: model.QuestionnaireNodeType}).
		FirstOrCreate(&n).Error
	return &n, err
}

func (r *PlacementRepository) FindQuestionnaireNode(questionnaireID uint) (*model.TreeNode, error) {
	var n model.TreeNode
	err := r.DB.Where("node_object_id = ? AND type = ?", questionnaireID, model.QuestionnaireNodeType).First(&n).Error
	return &n, err
}
