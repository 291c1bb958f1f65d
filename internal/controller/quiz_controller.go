package controller

import (
	"questionnaire_backend/internal/service"
	"questionnaire_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 新建测验模板
// @Description 检查作业是否开启测验、参与者是否有团队和选题
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId query int true "作业ID"
// @Param participantId query int true "参与者ID"
// @Success 200 {object} util.Response{data=service.QuizTemplate}
// @Failure 400 {object} util.Response
// @Router /api/quizzes/new [get]
func (c *QuizController) New(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	assignmentID, err1 := strconv.ParseUint(ctx.Query("assignmentId"), 10, 64)
	participantID, err2 := strconv.ParseUint(ctx.Query("participantId"), 10, 64)
	if err1 != nil || err2 != nil {
		util.BadRequest(ctx, "assignmentId and participantId are required")
		return
	}

	tmpl, err := c.Service.CheckEligibility(ctx.Request.Context(), actor, uint(assignmentID), uint(participantID))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, tmpl)
}

// @Summary 创建测验
// @Description 全部题目校验通过后才写入
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizSubmission true "测验内容"
// @Success 201 {object} util.Response{data=model.Questionnaire}
// @Failure 400 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}

	var sub service.QuizSubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(ctx.Request.Context(), actor, sub)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary 测验详情
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Router /api/quizzes/{id} [get]
func (c *QuizController) View(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	view, err := c.Service.View(ctx.Request.Context(), actor, id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 编辑测验
// @Description 已有学生作答时返回 423
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Questionnaire}
// @Failure 423 {object} util.Response
// @Router /api/quizzes/{id}/edit [get]
func (c *QuizController) Edit(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	quiz, err := c.Service.EditQuiz(ctx.Request.Context(), actor, id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 更新测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param body body service.QuizUpdate true "修改内容"
// @Success 200 {object} util.Response{data=model.Questionnaire}
// @Failure 423 {object} util.Response
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var upd service.QuizUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.UpdateQuiz(ctx.Request.Context(), actor, id, upd)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}
