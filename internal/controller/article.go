package controller

import (
	"errors"
	"strconv"

	"article-api/internal/dto"
	"article-api/internal/service"
	"article-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArticleApi 文章控制器
type ArticleApi struct {
	logger         *zap.SugaredLogger
	articleService *service.ArticleService
}

// NewArticleApi 创建文章控制器实例
func NewArticleApi(articleService *service.ArticleService, logger *zap.SugaredLogger) *ArticleApi {
	return &ArticleApi{
		logger:         logger,
		articleService: articleService,
	}
}

// List 获取文章列表
func (api *ArticleApi) List(c *gin.Context) {
	var req dto.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	if req.Overview {
		overviews, err := api.articleService.ListOverview(&req)
		if err != nil {
			api.logger.Errorf("获取文章概览列表失败: %v", err)
			response.InternalServerError(c, "获取文章列表失败", err)
			return
		}
		response.Success(c, "获取成功", overviews)
		return
	}

	articles, err := api.articleService.List(&req)
	if err != nil {
		api.logger.Errorf("获取文章列表失败: %v", err)
		response.InternalServerError(c, "获取文章列表失败", err)
		return
	}
	response.Success(c, "获取成功", articles)
}

// GetDetail 获取文章详情
func (api *ArticleApi) GetDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的文章ID", err)
		return
	}

	detail, err := api.articleService.GetDetail(id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.NotFound(c, "文章不存在", err)
			return
		}
		api.logger.Errorf("获取文章详情失败: %v", err)
		response.InternalServerError(c, "获取文章详情失败", err)
		return
	}

	response.Success(c, "获取成功", detail)
}

// Create 创建文章
func (api *ArticleApi) Create(c *gin.Context) {
	var req dto.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	article, err := api.articleService.Create(&req)
	if err != nil {
		api.logger.Errorf("创建文章失败: %v", err)
		response.InternalServerError(c, "创建文章失败", err)
		return
	}

	response.Success(c, "创建成功", gin.H{
		"article_id": article.ID,
	})
}

// Update 更新文章
func (api *ArticleApi) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的文章ID", err)
		return
	}

	var req dto.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	result, err := api.articleService.Update(id, &req)
	if err != nil {
		api.logger.Errorf("更新文章失败: %v", err)
		response.InternalServerError(c, "更新文章失败", err)
		return
	}

	response.Success(c, "更新成功", result)
}

// Delete 删除文章（软删除）
func (api *ArticleApi) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的文章ID", err)
		return
	}

	result, err := api.articleService.Delete(id)
	if err != nil {
		api.logger.Errorf("删除文章失败: %v", err)
		response.InternalServerError(c, "删除文章失败", err)
		return
	}

	response.Success(c, "删除成功", result)
}

// GetSeriesOverview 获取系列概览
func (api *ArticleApi) GetSeriesOverview(c *gin.Context) {
	series := c.Param("tag")
	if series == "" {
		response.BadRequest(c, "无效的系列标签", nil)
		return
	}

	overview, err := api.articleService.SeriesOverview(series)
	if err != nil {
		api.logger.Errorf("获取系列概览失败: %v", err)
		response.InternalServerError(c, "获取系列概览失败", err)
		return
	}

	response.Success(c, "获取成功", overview)
}

// parseID 解析路径里的ID参数
func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
