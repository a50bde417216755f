package service

import (
	"errors"

	"article-api/internal/dto"
	"article-api/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatisticsService 文章统计服务
type StatisticsService struct {
	statsRepo repository.StatisticsRepository
	log       *zap.SugaredLogger
}

// NewStatisticsService 创建统计服务实例
func NewStatisticsService(statsRepo repository.StatisticsRepository, log *zap.SugaredLogger) *StatisticsService {
	return &StatisticsService{
		statsRepo: statsRepo,
		log:       log,
	}
}

// GetByID 根据ID获取统计记录
func (s *StatisticsService) GetByID(id int64) (*dto.StatisticsData, error) {
	stats, err := s.statsRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatisticsNotFound
		}
		return nil, err
	}

	data := convertToStatisticsData(stats)
	return &data, nil
}

// Accumulate 累加统计计数
// 读-改-写序列，未加并发保护：同一ID上的并发累加可能互相覆盖。
func (s *StatisticsService) Accumulate(id int64, req *dto.StatisticsAccumulateRequest) (*dto.StatisticsData, error) {
	stats, err := s.statsRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatisticsNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Enjoy != nil {
		stats.Enjoy += *req.Enjoy
		updates["enjoy"] = stats.Enjoy
	}
	if req.Stored != nil {
		stats.Stored += *req.Stored
		updates["stored"] = stats.Stored
	}

	if len(updates) > 0 {
		if _, err := s.statsRepo.Update(id, updates); err != nil {
			return nil, err
		}
	}

	data := convertToStatisticsData(stats)
	return &data, nil
}
