package model

const (
	FolderNodeType        = "FolderNode"
	QuestionnaireNodeType = "QuestionnaireNode"
)

// TreeFolder 导航树中的目录，名称与问卷展示类型对应
type TreeFolder struct {
	BaseModel
	Name string `gorm:"size:128;not null" json:"name"`
}

func (TreeFolder) TableName() string {
	return "tree_folders"
}

// TreeNode 导航树节点，NodeObjectID 指向目录或问卷
type TreeNode struct {
	BaseModel
	ParentID     *uint  `gorm:"index;type:bigint unsigned" json:"parentId,omitempty"`
	NodeObjectID uint   `gorm:"index;type:bigint unsigned;not null" json:"nodeObjectId"`
	Type         string `gorm:"size:32;not null" json:"type"`
}

func (TreeNode) TableName() string {
	return "tree_nodes"
}

// DefaultTreeFolders 初始化时写入的目录
var DefaultTreeFolders = []string{
	"Review",
	"Metareview",
	"Author Feedback",
	"Teammate Review",
	"Survey",
	"Assignment Survey",
	"Global Survey",
	"Course Survey",
	"Bookmarkrating",
}
