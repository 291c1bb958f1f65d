package controller

import (
	"bytes"
	"fmt"
	"questionnaire_backend/internal/service"
	"questionnaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionnaireController struct {
	Service     *service.QuestionnaireService
	Scoring     *service.ScoringService
	Assignments *service.AssignmentService
	CSV         *service.CSVService
}

func NewQuestionnaireController(
	svc *service.QuestionnaireService,
	scoring *service.ScoringService,
	assignments *service.AssignmentService,
	csvService *service.CSVService,
) *QuestionnaireController {
	return &QuestionnaireController{
		Service:     svc,
		Scoring:     scoring,
		Assignments: assignments,
		CSV:         csvService,
	}
}

// WeightedScoreRequest 计算加权得分的请求体
// swagger:model WeightedScoreRequest
type WeightedScoreRequest struct {
	AssignmentID uint           `json:"assignmentId" binding:"required"`
	Scores       service.Scores `json:"scores"`
}

// @Summary 创建问卷
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateQuestionnaireRequest true "问卷信息"
// @Success 201 {object} util.Response{data=model.Questionnaire}
// @Failure 400 {object} util.Response
// @Failure 422 {object} util.Response "未知的问卷类型"
// @Router /api/questionnaires [post]
func (c *QuestionnaireController) Create(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}

	var req service.CreateQuestionnaireRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Create(ctx.Request.Context(), actor, req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary 我的问卷列表
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/questionnaires [get]
func (c *QuestionnaireController) List(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	list, total, err := c.Service.ListMine(ctx.Request.Context(), actor, page, limit)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// @Summary 问卷详情
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response{data=model.Questionnaire}
// @Failure 404 {object} util.Response
// @Router /api/questionnaires/{id} [get]
func (c *QuestionnaireController) Get(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	q, err := c.Service.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary 更新问卷
// @Description 只允许修改白名单字段；题目 txt 置空会删除该题
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Param body body service.UpdateQuestionnaireRequest true "修改内容"
// @Success 200 {object} util.Response{data=model.Questionnaire}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/questionnaires/{id} [put]
func (c *QuestionnaireController) Update(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateQuestionnaireRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Update(ctx.Request.Context(), actor, id, req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary 删除问卷
// @Description 被作业引用或已有作答记录时拒绝删除
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/questionnaires/{id} [delete]
func (c *QuestionnaireController) Delete(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	msg, err := c.Service.Delete(ctx.Request.Context(), actor, id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id, "message": msg})
}

// @Summary 复制问卷
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 201 {object} util.Response{data=model.Questionnaire}
// @Failure 500 {object} util.Response "复制失败"
// @Router /api/questionnaires/{id}/copy [post]
func (c *QuestionnaireController) Copy(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	clone, err := c.Service.Copy(ctx.Request.Context(), actor, id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, clone)
}

// @Summary 切换公开/私有
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response
// @Router /api/questionnaires/{id}/toggle-access [post]
func (c *QuestionnaireController) ToggleAccess(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	q, msg, err := c.Service.ToggleAccess(ctx.Request.Context(), actor, id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questionnaire": q, "message": msg})
}

// @Summary 批量添加题目
// @Description 每一项独立保存，失败项在 failures 中返回
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Param body body service.AddQuestionsRequest true "题型列表"
// @Success 200 {object} util.Response{data=service.BatchAddResult}
// @Router /api/questionnaires/{id}/questions [post]
func (c *QuestionnaireController) AddQuestions(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.AddQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.AddNewQuestions(ctx.Request.Context(), actor, id, req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 删除题目
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Param qid path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/questionnaires/{id}/questions/{qid} [delete]
func (c *QuestionnaireController) RemoveQuestion(ctx *gin.Context) {
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

	if err := c.Service.RemoveQuestion(ctx.Request.Context(), actor, id, qid); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": qid})
}

// @Summary 问卷全部题目的建议
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response{data=[]model.QuestionAdvice}
// @Router /api/questionnaires/{id}/advice [get]
func (c *QuestionnaireController) ListAdvice(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	advice, err := c.Service.ListAdvice(ctx.Request.Context(), actor, id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, advice)
}

// @Summary 保存题目建议
// @Description 整体替换该题目的建议
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param qid path int true "题目ID"
// @Param body body []service.AdviceInput true "建议列表"
// @Success 200 {object} util.Response{data=[]model.QuestionAdvice}
// @Router /api/questions/{qid}/advice [put]
func (c *QuestionnaireController) SaveAdvice(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	qid, ok := uintParam(ctx, "qid")
	if !ok {
		return
	}

	var inputs []service.AdviceInput
	if err := ctx.ShouldBindJSON(&inputs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	advice, err := c.Service.SaveAdvice(ctx.Request.Context(), actor, qid, inputs)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, advice)
}

// @Summary 问卷最高可能得分
// @Tags 评分
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response
// @Router /api/questionnaires/{id}/max-score [get]
func (c *QuestionnaireController) MaxScore(ctx *gin.Context) {
	if _, ok := actingUser(ctx); !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	score, err := c.Scoring.MaxPossibleScore(ctx.Request.Context(), id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questionnaireId": id, "maxScore": score})
}

// @Summary 问卷在作业中的加权得分
// @Tags 评分
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Param body body WeightedScoreRequest true "作业与汇总分数"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "问卷未被该作业使用"
// @Router /api/questionnaires/{id}/weighted-score [post]
func (c *QuestionnaireController) WeightedScore(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req WeightedScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	score, err := c.Assignments.WeightedScore(ctx.Request.Context(), actor, req.AssignmentID, id, req.Scores)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questionnaireId": id, "assignmentId": req.AssignmentID, "weightedScore": score})
}

// @Summary 导出题目 CSV
// @Description store=true 时上传到存储服务并返回地址，否则直接下载
// @Tags 问卷
// @Produce text/csv
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Param store query bool false "是否上传到存储服务"
// @Success 200 {file} file
// @Router /api/questionnaires/{id}/export [get]
func (c *QuestionnaireController) Export(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	if ctx.Query("store") == "true" {
		url, err := c.CSV.ExportToStorage(ctx.Request.Context(), actor, id)
		if err != nil {
			util.Fail(ctx, err)
			return
		}
		util.Success(ctx, gin.H{"url": url})
		return
	}

	// 先写入缓冲区，出错时仍能返回 JSON
	var buf bytes.Buffer
	if err := c.CSV.Export(ctx.Request.Context(), actor, id, &buf); err != nil {
		util.Fail(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"questionnaire_%d.csv\"", id))
	ctx.Data(200, util.MimeCSV+"; charset=utf-8", buf.Bytes())
}

// @Summary 从 CSV 导入题目
// @Description 表头: seq,txt,type,weight,size,alternatives,max_label,min_label；全部行校验通过后才写入
// @Tags 问卷
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Param csv formData file true "CSV 文件"
// @Success 200 {object} util.Response{data=service.ImportResult}
// @Failure 400 {object} util.Response
// @Router /api/questionnaires/{id}/import [post]
func (c *QuestionnaireController) Import(ctx *gin.Context) {
	actor, ok := actingUser(ctx)
	if !ok {
		return
	}
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	header, err := ctx.FormFile("csv")
	if err != nil {
		util.BadRequest(ctx, "csv file required")
		return
	}
	file, err := util.OpenImportFile(header)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.CSV.Import(ctx.Request.Context(), actor, id, file)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, result)
}
