package repository

import (
	"article-api/internal/model"

	"gorm.io/gorm"
)

// StatisticsRepository 统计存储网关
type StatisticsRepository interface {
	// FindByID 按ID取统计记录
	FindByID(id int64) (*model.ArticleStatistics, error)
	// Update 按ID更新给定字段，返回受影响行数
	Update(id int64, values map[string]interface{}) (int64, error)
	// IncrementView 原子地把浏览量加一
	IncrementView(id int64) error
}

// statisticsRepository 基于gorm的实现
type statisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository 创建统计存储网关实例
func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) FindByID(id int64) (*model.ArticleStatistics, error) {
	var stats model.ArticleStatistics
	if err := r.db.First(&stats, id).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statisticsRepository) Update(id int64, values map[string]interface{}) (int64, error) {
	result := r.db.Model(&model.ArticleStatistics{}).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

func (r *statisticsRepository) IncrementView(id int64) error {
	return r.db.Model(&model.ArticleStatistics{}).Where("id = ?", id).
		Update("view", gorm.Expr("view + ?", 1)).Error
}
