package service

import (
	"context"
	"errors"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlacementService 将问卷挂到导航树中与展示类型对应的目录下
type PlacementService struct {
	Store PlacementStore
}

func NewPlacementService(store PlacementStore) *PlacementService {
	return &PlacementService{Store: store}
}

// Register 查找目录节点并登记问卷节点；目录不存在时记录警告并跳过
func (s *PlacementService) Register(ctx context.Context, q *model.Questionnaire) (*model.TreeNode, error) {
	folder, err := s.Store.FindFolderByName(q.DisplayType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Warn("no tree folder for questionnaire display type",
			zap.Uint("questionnaire_id", q.ID),
			zap.String("display_type", q.DisplayType),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	parent, err := s.Store.FindFolderNode(folder.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.Warn("tree folder has no folder node",
			zap.Uint("folder_id", folder.ID),
			zap.String("folder", folder.Name),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return s.Store.FindOrCreateQuestionnaireNode(parent.ID, q.ID)
}
