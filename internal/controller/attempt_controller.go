package controller

import (
	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// @Summary 开始答卷
// @Description 同一试卷同时只能有一份进行中的答卷，冲突返回 409
// @Tags 答卷
// @Security BearerAuth
// @Produce json
// @Param id path int true "试卷ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/tryouts/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	tryoutID := util.MustParseUint(ctx.Param("id"))
	if tryoutID == 0 {
		util.BadRequest(ctx, "invalid tryout id")
		return
	}

	view, err := c.AttemptService.StartAttempt(user.UserID, tryoutID)
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary 提交单题作答
// @Description 同题重复提交覆盖旧答案；已交卷返回 409，已超时返回 410
// @Tags 答卷
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "答卷ID"
// @Param answer body service.SubmitAnswerRequest true "作答内容"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 410 {object} util.Response
// @Router /api/attempts/{id}/answers [put]
func (c *AttemptController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitAnswer(ctx.Param("id"), user.UserID, &req)
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 交卷
// @Description 幂等操作，重复交卷返回同一份结果
// @Tags 答卷
// @Security BearerAuth
// @Produce json
// @Param id path string true "答卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id}/finish [post]
func (c *AttemptController) FinishAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.AttemptService.FinishAttempt(ctx.Param("id"), user.UserID)
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 查看答卷
// @Tags 答卷
// @Security BearerAuth
// @Produce json
// @Param id path string true "答卷ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.AttemptService.GetAttempt(ctx.Param("id"), user.UserID)
	if err != nil {
		util.HandleAttemptError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 我的答卷列表
// @Tags 答卷
// @Security BearerAuth
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	views, total, err := c.AttemptService.ListAttempts(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: views, Total: total, Page: page, Limit: limit})
}
