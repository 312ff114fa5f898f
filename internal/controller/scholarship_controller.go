package controller

import (
	"errors"

	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScholarshipController struct {
	ScholarshipService *service.ScholarshipService
}

func NewScholarshipController(scholarshipService *service.ScholarshipService) *ScholarshipController {
	return &ScholarshipController{ScholarshipService: scholarshipService}
}

// @Summary 创建奖学金信息
// @Tags 奖学金管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param scholarship body service.ScholarshipRequest true "奖学金信息"
// @Success 201 {object} util.Response
// @Router /api/admin/scholarships [post]
func (c *ScholarshipController) Create(ctx *gin.Context) {
	var req service.ScholarshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sc, err := c.ScholarshipService.Create(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, sc)
}

// @Summary 奖学金列表
// @Tags 奖学金
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param open query bool false "只看未截止"
// @Success 200 {object} util.Response
// @Router /api/scholarships [get]
func (c *ScholarshipController) List(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))
	openOnly := ctx.Query("open") == "true"

	ss, total, err := c.ScholarshipService.List(page, limit, openOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: ss, Total: total, Page: page, Limit: limit})
}

// @Summary 奖学金详情
// @Tags 奖学金
// @Produce json
// @Param id path int true "奖学金ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/scholarships/{id} [get]
func (c *ScholarshipController) Get(ctx *gin.Context) {
	sc, err := c.ScholarshipService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, sc)
}

// @Summary 更新奖学金信息
// @Tags 奖学金管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "奖学金ID"
// @Param scholarship body service.ScholarshipRequest true "奖学金信息"
// @Success 200 {object} util.Response
// @Router /api/admin/scholarships/{id} [put]
func (c *ScholarshipController) Update(ctx *gin.Context) {
	var req service.ScholarshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sc, err := c.ScholarshipService.Update(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, sc)
}

// @Summary 删除奖学金信息
// @Tags 奖学金管理
// @Security BearerAuth
// @Param id path int true "奖学金ID"
// @Success 200 {object} util.Response
// @Router /api/admin/scholarships/{id} [delete]
func (c *ScholarshipController) Delete(ctx *gin.Context) {
	if err := c.ScholarshipService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *ScholarshipController) handleError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrScholarshipNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
