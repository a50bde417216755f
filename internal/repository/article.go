package repository

import (
	"article-api/internal/model"

	"gorm.io/gorm"
)

// ArticleScope 推给存储层的查询范围
// 可见性、排序和分页在存储层完成，其余过滤条件在内存中执行。
type ArticleScope struct {
	Offset   int
	Limit    int
	AllState bool // true时包含未发布与已删除的文章
}

// ArticleRepository 文章存储网关
type ArticleRepository interface {
	// FindPage 按范围取一页文章，按创建时间倒序，预加载统计与作者
	FindPage(scope ArticleScope) ([]model.Article, error)
	// FindByID 按ID取未删除的文章，预加载统计与作者
	FindByID(id int64) (*model.Article, error)
	// FindPublished 取全部已发布且未删除的文章
	FindPublished() ([]model.Article, error)
	// Create 同事务创建文章与挂接的统计记录
	Create(article *model.Article) error
	// Update 按ID更新给定字段，返回受影响行数
	Update(id int64, values map[string]interface{}) (int64, error)
}

// articleRepository 基于gorm的实现
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository 创建文章存储网关实例
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) FindPage(scope ArticleScope) ([]model.Article, error) {
	query := r.db.Model(&model.Article{})
	if !scope.AllState {
		query = query.Where("is_deleted = ?", false).Where("is_published = ?", true)
	}

	var articles []model.Article
	err := query.
		Preload("Statistics").
		Preload("User").
		Order("created_at DESC").
		Offset(scope.Offset).
		Limit(scope.Limit).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) FindByID(id int64) (*model.Article, error) {
	var article model.Article
	err := r.db.
		Preload("Statistics").
		Preload("User").
		Where("is_deleted = ?", false).
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindPublished() ([]model.Article, error) {
	var articles []model.Article
	err := r.db.Model(&model.Article{}).
		Where("is_deleted = ?", false).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) Create(article *model.Article) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		stats := &model.ArticleStatistics{}
		if err := tx.Create(stats).Error; err != nil {
			return err
		}
		article.StatisticsID = stats.ID
		article.Statistics = *stats
		return tx.Create(article).Error
	})
}

func (r *articleRepository) Update(id int64, values map[string]interface{}) (int64, error) {
	result := r.db.Model(&model.Article{}).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}
