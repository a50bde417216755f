package controller

import (
	"errors"

	"article-api/internal/dto"
	"article-api/internal/service"
	"article-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatisticsApi 统计控制器
type StatisticsApi struct {
	logger            *zap.SugaredLogger
	statisticsService *service.StatisticsService
}

// NewStatisticsApi 创建统计控制器实例
func NewStatisticsApi(statisticsService *service.StatisticsService, logger *zap.SugaredLogger) *StatisticsApi {
	return &StatisticsApi{
		logger:            logger,
		statisticsService: statisticsService,
	}
}

// GetByID 获取统计记录
func (api *StatisticsApi) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的统计ID", err)
		return
	}

	stats, err := api.statisticsService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrStatisticsNotFound) {
			response.NotFound(c, "统计记录不存在", err)
			return
		}
		api.logger.Errorf("获取统计记录失败: %v", err)
		response.InternalServerError(c, "获取统计记录失败", err)
		return
	}

	response.Success(c, "获取成功", stats)
}

// Accumulate 累加统计计数
func (api *StatisticsApi) Accumulate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的统计ID", err)
		return
	}

	var req dto.StatisticsAccumulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误", err)
		return
	}

	stats, err := api.statisticsService.Accumulate(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrStatisticsNotFound) {
			response.NotFound(c, "统计记录不存在", err)
			return
		}
		api.logger.Errorf("累加统计计数失败: %v", err)
		response.InternalServerError(c, "累加统计计数失败", err)
		return
	}

	response.Success(c, "操作成功", stats)
}
