package controller

import (
	"errors"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary 创建课程
// @Tags 课程管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param course body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response
// @Router /api/admin/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param category query string false "分类"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	user := util.GetUserFromContext(ctx)
	publishedOnly := user == nil || user.Role != model.Admin

	courses, total, err := c.CourseService.List(page, limit, ctx.Query("category"), publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	publishedOnly := user == nil || user.Role != model.Admin

	course, err := c.CourseService.Get(util.MustParseUint(ctx.Param("id")), publishedOnly)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 更新课程
// @Tags 课程管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "课程ID"
// @Param course body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 删除课程
// @Tags 课程管理
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.CourseService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 添加课程资料
// @Tags 课程管理
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "课程ID"
// @Param material body service.MaterialRequest true "资料信息"
// @Success 201 {object} util.Response
// @Router /api/admin/courses/{id}/materials [post]
func (c *CourseController) AddMaterial(ctx *gin.Context) {
	var req service.MaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.CourseService.AddMaterial(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// @Summary 删除课程资料
// @Tags 课程管理
// @Security BearerAuth
// @Param materialId path int true "资料ID"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{materialId} [delete]
func (c *CourseController) DeleteMaterial(ctx *gin.Context) {
	if err := c.CourseService.DeleteMaterial(util.MustParseUint(ctx.Param("materialId"))); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *CourseController) handleError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrCourseNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
