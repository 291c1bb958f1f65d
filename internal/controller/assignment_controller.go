package controller

import (
	"questionnaire_backend/internal/service"
	"questionnaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Service *service.AssignmentService
}

func NewAssignmentController(svc *service.AssignmentService) *AssignmentController {
	return &AssignmentController{Service: svc}
}

// @Summary 作业使用的问卷
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Success 200 {object} util.Response{data=[]model.AssignmentQuestionnaire}
// @Router /api/assignments/{id}/questionnaires [get]
func (c *AssignmentController) ListQuestionnaires(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	links, err := c.Service.ListQuestionnaires(ctx.Request.Context(), actor, id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, links)
}

// @Summary 关联问卷到作业
// @Description 已关联时更新权重和轮次
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param qid path int true "问卷ID"
// @Param body body service.LinkRequest true "权重百分比与轮次"
// @Success 200 {object} util.Response{data=model.AssignmentQuestionnaire}
// @Router /api/assignments/{id}/questionnaires/{qid} [post]
func (c *AssignmentController) Link(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	qid, ok := uintParam(ctx, "qid")
	if !ok {
		return
	}

	var req service.LinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	link, err := c.Service.Link(ctx.Request.Context(), actor, id, qid, req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, link)
}

// @Summary 取消问卷关联
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "作业ID"
// @Param qid path int true "问卷ID"
// @Success 200 {object} util.Response
// @Router /api/assignments/{id}/questionnaires/{qid} [delete]
func (c *AssignmentController) Unlink(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	qid, ok := uintParam(ctx, "qid")
	if !ok {
		return
	}

	if err := c.Service.Unlink(ctx.Request.Context(), actor, id, qid); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assignmentId": id, "questionnaireId": qid})
}
