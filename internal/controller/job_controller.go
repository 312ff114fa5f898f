package controller

import (
	"errors"

	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JobController struct {
	JobService *service.JobService
}

func NewJobController(jobService *service.JobService) *JobController {
	return &JobController{JobService: jobService}
}

// @Summary 发布职位
// @Tags 招聘管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param job body service.JobRequest true "职位信息"
// @Success 201 {object} util.Response
// @Router /api/admin/jobs [post]
func (c *JobController) Create(ctx *gin.Context) {
	var req service.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	j, err := c.JobService.Create(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, j)
}

// @Summary 职位列表
// @Tags 招聘
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param keyword query string false "职位或公司关键字"
// @Param open query bool false "只看未过期"
// @Success 200 {object} util.Response
// @Router /api/jobs [get]
func (c *JobController) List(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))
	openOnly := ctx.Query("open") == "true"

	js, total, err := c.JobService.List(page, limit, ctx.Query("keyword"), openOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: js, Total: total, Page: page, Limit: limit})
}

// @Summary 职位详情
// @Tags 招聘
// @Produce json
// @Param id path int true "职位ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/jobs/{id} [get]
func (c *JobController) Get(ctx *gin.Context) {
	j, err := c.JobService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, j)
}

// @Summary 更新职位
// @Tags 招聘管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "职位ID"
// @Param job body service.JobRequest true "职位信息"
// @Success 200 {object} util.Response
// @Router /api/admin/jobs/{id} [put]
func (c *JobController) Update(ctx *gin.Context) {
	var req service.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	j, err := c.JobService.Update(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, j)
}

// @Summary 删除职位
// @Tags 招聘管理
// @Security BearerAuth
// @Param id path int true "职位ID"
// @Success 200 {object} util.Response
// @Router /api/admin/jobs/{id} [delete]
func (c *JobController) Delete(ctx *gin.Context) {
	if err := c.JobService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *JobController) handleError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrJobNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
