package router

import (
	"article-api/internal/controller"

	"github.com/gin-gonic/gin"
)

// Setup 设置API路由
func Setup(r *gin.Engine, articleApi *controller.ArticleApi, statisticsApi *controller.StatisticsApi) {
	api := r.Group("/api")

	setupArticleRoutes(api, articleApi)
	setupStatisticsRoutes(api, statisticsApi)
}

// setupArticleRoutes 设置文章相关路由
func setupArticleRoutes(api *gin.RouterGroup, articleApi *controller.ArticleApi) {
	articleRoutes := api.Group("/articles")
	{
		// 文章列表（支持概览投影与排序）
		articleRoutes.GET("", articleApi.List)
		// 系列概览
		articleRoutes.GET("/series/:tag", articleApi.GetSeriesOverview)
		// 文章详情（附带浏览量自增）
		articleRoutes.GET("/:id", articleApi.GetDetail)
		// 创建文章
		articleRoutes.POST("", articleApi.Create)
		// 更新文章
		articleRoutes.PUT("/:id", articleApi.Update)
		// 删除文章（软删除）
		articleRoutes.DELETE("/:id", articleApi.Delete)
	}
}

// setupStatisticsRoutes 设置统计相关路由
func setupStatisticsRoutes(api *gin.RouterGroup, statisticsApi *controller.StatisticsApi) {
	statisticsRoutes := api.Group("/statistics")
	{
		// 获取统计记录
		statisticsRoutes.GET("/:id", statisticsApi.GetByID)
		// 累加喜欢/收藏计数
		statisticsRoutes.POST("/:id/accumulate", statisticsApi.Accumulate)
	}
}
