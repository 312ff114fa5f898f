package controller

import (
	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TryoutController struct {
	TryoutService *service.TryoutService
}

func NewTryoutController(tryoutService *service.TryoutService) *TryoutController {
	return &TryoutController{TryoutService: tryoutService}
}

// @Summary 创建试卷
// @Tags 试卷管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tryout body service.TryoutRequest true "试卷信息"
// @Success 201 {object} util.Response
// @Router /api/admin/tryouts [post]
func (c *TryoutController) Create(ctx *gin.Context) {
	var req service.TryoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	t, err := c.TryoutService.Create(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, t)
}

// @Summary 更新试卷
// @Tags 试卷管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "试卷ID"
// @Param tryout body service.TryoutRequest true "试卷信息"
// @Success 200 {object} util.Response
// @Router /api/admin/tryouts/{id} [put]
func (c *TryoutController) Update(ctx *gin.Context) {
	var req service.TryoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	t, err := c.TryoutService.Update(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, t)
}

// @Summary 删除试卷
// @Tags 试卷管理
// @Security BearerAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tryouts/{id} [delete]
func (c *TryoutController) Delete(ctx *gin.Context) {
	if err := c.TryoutService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 试卷详情（管理端，含判分信息）
// @Tags 试卷管理
// @Security BearerAuth
// @Produce json
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/admin/tryouts/{id} [get]
func (c *TryoutController) GetFull(ctx *gin.Context) {
	t, err := c.TryoutService.GetFull(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, t)
}

// @Summary 试卷列表
// @Tags 试卷
// @Security BearerAuth
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/tryouts [get]
func (c *TryoutController) List(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	user := util.GetUserFromContext(ctx)
	activeOnly := user == nil || user.Role != model.Admin

	ts, total, err := c.TryoutService.List(page, limit, activeOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: ts, Total: total, Page: page, Limit: limit})
}

// @Summary 试卷详情（学生端，不含判分信息）
// @Tags 试卷
// @Security BearerAuth
// @Produce json
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tryouts/{id} [get]
func (c *TryoutController) GetForStudent(ctx *gin.Context) {
	view, err := c.TryoutService.GetForStudent(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 添加题目
// @Tags 试卷管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "试卷ID"
// @Param question body service.QuestionRequest true "题目信息"
// @Success 201 {object} util.Response
// @Router /api/admin/tryouts/{id}/questions [post]
func (c *TryoutController) AddQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.TryoutService.AddQuestion(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary 更新题目
// @Tags 试卷管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param questionId path int true "题目ID"
// @Param question body service.QuestionRequest true "题目信息"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{questionId} [put]
func (c *TryoutController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.TryoutService.UpdateQuestion(util.MustParseUint(ctx.Param("questionId")), &req)
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary 删除题目
// @Tags 试卷管理
// @Security BearerAuth
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{questionId} [delete]
func (c *TryoutController) DeleteQuestion(ctx *gin.Context) {
	if err := c.TryoutService.DeleteQuestion(util.MustParseUint(ctx.Param("questionId"))); err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
