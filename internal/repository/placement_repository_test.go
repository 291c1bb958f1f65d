package repository

import (
	"questionnaire_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFolder(t *testing.T, db *gorm.DB, name string) (*model.TreeFolder, *model.TreeNode) {
	t.Helper()
	folder := &model.TreeFolder{Name: name}
	require.NoError(t, db.Create(folder).Error)
	node := &model.TreeNode{NodeObjectID: folder.ID, Type: model.FolderNodeType}
	require.NoError(t, db.Create(node).Error)
	return folder, node
}

func TestPlacementRepository_FindFolderByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlacementRepository(db)
	seedFolder(t, db, "Teammate Review")
	seedFolder(t, db, "Review")
	seedFolder(t, db, "Author Feedback")

	tests := []struct {
		pattern string
		want    string
	}{
		{model.ReviewQuestionnaire.DisplayType(), "Review"},
		{model.AuthorFeedbackQuestionnaire.DisplayType(), "Author Feedback"},
		{model.TeammateReviewQuestionnaireSpaced.DisplayType(), "Teammate Review"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			folder, err := repo.FindFolderByName(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, folder.Name)
		})
	}

	_, err := repo.FindFolderByName(model.GlobalSurveyQuestionnaire.DisplayType())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPlacementRepository_FindOrCreateQuestionnaireNode(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlacementRepository(db)
	folder, folderNode := seedFolder(t, db, "Review")

	found, err := repo.FindFolderNode(folder.ID)
	require.NoError(t, err)
	assert.Equal(t, folderNode.ID, found.ID)

	node, err := repo.FindOrCreateQuestionnaireNode(folderNode.ID, 42)
	require.NoError(t, err)
	require.NotNil(t, node.ParentID)
	assert.Equal(t, folderNode.ID, *node.ParentID)
	assert.Equal(t, model.QuestionnaireNodeType, node.Type)

	again, err := repo.FindOrCreateQuestionnaireNode(folderNode.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, node.ID, again.ID)
	assert.Equal(t, int64(1), countRows(t, db, &model.TreeNode{}, "node_object_id = ? AND type = ?", 42, model.QuestionnaireNodeType))

	byQuestionnaire, err := repo.FindQuestionnaireNode(42)
	require.NoError(t, err)
	assert.Equal(t, node.ID, byQuestionnaire.ID)
}
