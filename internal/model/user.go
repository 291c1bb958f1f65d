package model

import (
	"time"
)

type UserRole string

const (
	SuperAdmin        UserRole = "super_admin"
	Admin             UserRole = "admin"
	Instructor        UserRole = "instructor"
	TeachingAssistant UserRole = "teaching_assistant"
	Student           UserRole = "student"
)

// IsKnown 判断角色是否属于平台定义的角色
func (r UserRole) IsKnown() bool {
	switch r {
	case SuperAdmin, Admin, Instructor, TeachingAssistant, Student:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == SuperAdmin || r == Admin
}

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"type:enum('super_admin','admin','instructor','teaching_assistant','student');default:'student'" json:"role"`
	InstructorID *uint     `gorm:"index;type:bigint unsigned" json:"instructorId,omitempty"` // 助教所属的主讲教师
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
