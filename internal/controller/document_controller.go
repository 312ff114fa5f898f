package controller

import (
	"errors"

	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	DocumentService *service.DocumentService
}

func NewDocumentController(documentService *service.DocumentService) *DocumentController {
	return &DocumentController{DocumentService: documentService}
}

// @Summary 上传文档
// @Tags 文档管理
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文档文件"
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Success 201 {object} util.Response
// @Router /api/admin/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	_, err = util.ValidateMimeType(src, util.AllowedDocumentTypes)
	src.Close()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	d, err := c.DocumentService.Upload(user.UserID, title, ctx.PostForm("description"), file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, d)
}

// @Summary 文档列表
// @Tags 文档
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param keyword query string false "标题关键字"
// @Success 200 {object} util.Response
// @Router /api/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	ds, total, err := c.DocumentService.List(page, limit, ctx.Query("keyword"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: ds, Total: total, Page: page, Limit: limit})
}

// @Summary 文档详情
// @Tags 文档
// @Produce json
// @Param id path int true "文档ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/documents/{id} [get]
func (c *DocumentController) Get(ctx *gin.Context) {
	d, err := c.DocumentService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// @Summary 下载文档
// @Description 返回文件地址并累加下载计数
// @Tags 文档
// @Produce json
// @Param id path int true "文档ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/documents/{id}/download [get]
func (c *DocumentController) Download(ctx *gin.Context) {
	url, err := c.DocumentService.Download(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// @Summary 删除文档
// @Tags 文档管理
// @Security BearerAuth
// @Param id path int true "文档ID"
// @Success 200 {object} util.Response
// @Router /api/admin/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	if err := c.DocumentService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *DocumentController) handleError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrDocumentNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
