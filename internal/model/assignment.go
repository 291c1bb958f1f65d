package model

// swagger:model Assignment
type Assignment struct {
	BaseModel
	Name             string `gorm:"size:255;not null" json:"name"`
	RequireQuiz      bool   `gorm:"default:false" json:"requireQuiz"`
	NumQuizQuestions int    `gorm:"default:0" json:"numQuizQuestions"`
	HasTopics        bool   `gorm:"default:false" json:"hasTopics"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentQuestionnaire 作业与问卷的关联，携带权重百分比和可选的轮次
type AssignmentQuestionnaire struct {
	BaseModel
	AssignmentID        uint `gorm:"index;type:bigint unsigned;not null" json:"assignmentId"`
	QuestionnaireID     uint `gorm:"index;type:bigint unsigned;not null" json:"questionnaireId"`
	QuestionnaireWeight int  `gorm:"default:0" json:"questionnaireWeight"`
	UsedInRound         *int `json:"usedInRound,omitempty"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

func (AssignmentQuestionnaire) TableName() string {
	return "assignment_questionnaires"
}

type AssignmentParticipant struct {
	BaseModel
	AssignmentID uint  `gorm:"index;type:bigint unsigned;not null" json:"assignmentId"`
	UserID       uint  `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TeamID       *uint `gorm:"index;type:bigint unsigned" json:"teamId,omitempty"`
}

func (AssignmentParticipant) TableName() string {
	return "assignment_participants"
}

type AssignmentTeam struct {
	BaseModel
	AssignmentID uint   `gorm:"index;type:bigint unsigned;not null" json:"assignmentId"`
	Name         string `gorm:"size:255" json:"name"`
	TopicID      *uint  `gorm:"type:bigint unsigned" json:"topicId,omitempty"`
}

func (AssignmentTeam) TableName() string {
	return "assignment_teams"
}
