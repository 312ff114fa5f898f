package controller

import (
	"errors"

	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnnouncementController struct {
	AnnouncementService *service.AnnouncementService
}

func NewAnnouncementController(announcementService *service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{AnnouncementService: announcementService}
}

// @Summary 发布公告
// @Tags 公告管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param announcement body service.AnnouncementRequest true "公告内容"
// @Success 201 {object} util.Response
// @Router /api/admin/announcements [post]
func (c *AnnouncementController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AnnouncementService.Create(user.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// @Summary 公告列表
// @Tags 公告
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/announcements [get]
func (c *AnnouncementController) List(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	as, total, err := c.AnnouncementService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: as, Total: total, Page: page, Limit: limit})
}

// @Summary 公告详情
// @Tags 公告
// @Produce json
// @Param id path int true "公告ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/announcements/{id} [get]
func (c *AnnouncementController) Get(ctx *gin.Context) {
	a, err := c.AnnouncementService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 更新公告
// @Tags 公告管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "公告ID"
// @Param announcement body service.AnnouncementRequest true "公告内容"
// @Success 200 {object} util.Response
// @Router /api/admin/announcements/{id} [put]
func (c *AnnouncementController) Update(ctx *gin.Context) {
	var req service.AnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AnnouncementService.Update(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 删除公告
// @Tags 公告管理
// @Security BearerAuth
// @Param id path int true "公告ID"
// @Success 200 {object} util.Response
// @Router /api/admin/announcements/{id} [delete]
func (c *AnnouncementController) Delete(ctx *gin.Context) {
	if err := c.AnnouncementService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *AnnouncementController) handleError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrAnnouncementNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
