package controller

import (
	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// @Summary 注册推送令牌
// @Tags 通知
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param token body service.RegisterTokenRequest true "设备令牌"
// @Success 200 {object} util.Response
// @Router /api/notifications/tokens [post]
func (c *NotificationController) RegisterToken(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RegisterTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.NotificationService.RegisterToken(user.UserID, &req); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 注销推送令牌
// @Tags 通知
// @Security BearerAuth
// @Produce json
// @Param token path string true "设备令牌"
// @Success 200 {object} util.Response
// @Router /api/notifications/tokens/{token} [delete]
func (c *NotificationController) UnregisterToken(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.NotificationService.UnregisterToken(user.UserID, ctx.Param("token")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 我的通知
// @Tags 通知
// @Security BearerAuth
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	ns, total, err := c.NotificationService.List(user.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: ns, Total: total, Page: page, Limit: limit})
}

// @Summary 标记已读
// @Tags 通知
// @Security BearerAuth
// @Produce json
// @Param id path int true "通知ID"
// @Success 200 {object} util.Response
// @Router /api/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.NotificationService.MarkRead(user.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
