package service

import (
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
)

const (
	msgNoSupervisor = "Teaching assistant is not assigned to an instructor."
	msgCannotEdit   = "You are not allowed to edit this questionnaire."
	msgUnknownRole  = "You are not allowed to access questionnaires."
)

// ActingUser 当前操作者，由 JWT 声明构造后显式传入各业务方法
type ActingUser struct {
	ID           uint
	Role         model.UserRole
	SupervisorID *uint
}

func ActingUserFromClaims(c *util.Claims) ActingUser {
	return ActingUser{
		ID:           c.UserID,
		Role:         c.Role,
		SupervisorID: c.InstructorID,
	}
}

// OwnerID 解析新建问卷的所有者，助教创建的问卷归属其主讲教师
func (a ActingUser) OwnerID() (uint, error) {
	if a.Role != model.TeachingAssistant {
		return a.ID, nil
	}
	if a.SupervisorID == nil || *a.SupervisorID == 0 {
		return 0, util.PermissionError(msgNoSupervisor)
	}
	return *a.SupervisorID, nil
}

func (a ActingUser) HasAccess() bool {
	return a.Role.IsKnown()
}

// CanEdit 管理员可编辑全部问卷；教师可编辑自己的问卷；助教可编辑其主讲教师的问卷；学生只能编辑自己的测验
func (a ActingUser) CanEdit(q *model.Questionnaire) bool {
	switch a.Role {
	case model.SuperAdmin, model.Admin:
		return true
	case model.Instructor:
		return q.InstructorID == a.ID
	case model.TeachingAssistant:
		return a.SupervisorID != nil && q.InstructorID == *a.SupervisorID
	case model.Student:
		return q.Type.IsQuiz() && q.InstructorID == a.ID
	}
	return false
}

func (a ActingUser) requireAccess() error {
	if !a.HasAccess() {
		return util.PermissionError(msgUnknownRole)
	}
	return nil
}

func (a ActingUser) requireEdit(q *model.Questionnaire) error {
	if !a.CanEdit(q) {
		return util.PermissionError(msgCannotEdit)
	}
	return nil
}
