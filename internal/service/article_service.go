package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"article-api/internal/config"
	"article-api/internal/dto"
	"article-api/internal/model"
	"article-api/internal/model/ctypes"
	"article-api/internal/repository"
	"article-api/pkg/cache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ArticleService 文章服务
type ArticleService struct {
	articleRepo  repository.ArticleRepository
	statsRepo    repository.StatisticsRepository
	articleCache *cache.ArticleCache
	cfg          config.ArticleConfig
	log          *zap.SugaredLogger
}

// NewArticleService 创建文章服务实例
func NewArticleService(
	articleRepo repository.ArticleRepository,
	statsRepo repository.StatisticsRepository,
	articleCache *cache.ArticleCache,
	cfg config.ArticleConfig,
	log *zap.SugaredLogger,
) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		statsRepo:    statsRepo,
		articleCache: articleCache,
		cfg:          cfg,
		log:          log,
	}
}

// List 获取文章完整信息列表
func (s *ArticleService) List(req *dto.ArticleListRequest) ([]dto.ArticleData, error) {
	articles, err := s.fetchFiltered(req)
	if err != nil {
		return nil, err
	}

	rankArticles(articles, req.Rank)

	items := make([]dto.ArticleData, 0, len(articles))
	for i := range articles {
		items = append(items, s.convertToArticleData(&articles[i]))
	}
	return items, nil
}

// ListOverview 获取文章概览列表
func (s *ArticleService) ListOverview(req *dto.ArticleListRequest) ([]dto.ArticleOverview, error) {
	articles, err := s.fetchFiltered(req)
	if err != nil {
		return nil, err
	}

	overviews := make([]dto.ArticleOverview, 0, len(articles))
	for i := range articles {
		overviews = append(overviews, s.buildOverview(&articles[i]))
	}

	rankOverviews(overviews, req.Rank)
	return overviews, nil
}

// fetchFiltered 取一页文章并执行内存过滤
// 分页先于内存过滤执行，命中条数可能少于limit，这是既有的已知限制。
func (s *ArticleService) fetchFiltered(req *dto.ArticleListRequest) ([]model.Article, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}

	articles, err := s.articleRepo.FindPage(repository.ArticleScope{
		Offset:   req.Offset,
		Limit:    limit,
		AllState: req.AllState,
	})
	if err != nil {
		return nil, err
	}

	// 存储层无法表达的条件在这里过滤，缺省条件直接放行，顺序保持不变
	if req.Author != "" {
		articles = filterArticles(articles, func(a *model.Article) bool {
			return strings.Contains(a.Author, req.Author)
		})
	}
	if req.Title != "" {
		articles = filterArticles(articles, func(a *model.Article) bool {
			return strings.Contains(a.Title, req.Title)
		})
	}
	if req.UserID != 0 {
		articles = filterArticles(articles, func(a *model.Article) bool {
			return a.UserID == req.UserID
		})
	}
	if len(req.Category) > 0 {
		want := ctypes.CategoryList(req.Category).Normalize()
		articles = filterArticles(articles, func(a *model.Article) bool {
			return a.Category.Intersects(want)
		})
	}

	return articles, nil
}

// filterArticles 保序过滤
func filterArticles(articles []model.Article, keep func(*model.Article) bool) []model.Article {
	out := articles[:0]
	for i := range articles {
		if keep(&articles[i]) {
			out = append(out, articles[i])
		}
	}
	return out
}

// GetDetail 根据ID获取文章详情，并调度一次浏览量自增
// 自增不等待完成，调用方拿到的浏览量总是落后于自增后的值。
func (s *ArticleService) GetDetail(id int64) (*dto.ArticleData, error) {
	ctx := context.Background()

	if cached := s.tryGetCachedDetail(ctx, id); cached != nil {
		go s.incrementView(cached.Statistics.ID)
		return cached, nil
	}

	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	data := s.convertToArticleData(article)

	go s.incrementView(article.StatisticsID)
	s.setDetailCacheAsync(id, &data)

	return &data, nil
}

// tryGetCachedDetail 尝试从缓存获取文章详情
// 命中时重新读取统计计数，保证计数器不停留在缓存写入时刻。
func (s *ArticleService) tryGetCachedDetail(ctx context.Context, id int64) *dto.ArticleData {
	if s.articleCache == nil {
		return nil
	}

	var cached dto.ArticleData
	err := s.articleCache.GetArticleDetail(ctx, id, &cached)
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("获取文章详情缓存失败: %v", err)
		}
		return nil
	}

	if stats, err := s.statsRepo.FindByID(cached.Statistics.ID); err == nil {
		cached.Statistics = convertToStatisticsData(stats)
	}
	return &cached
}

// Create 创建文章
// 同事务创建一条零值统计记录并挂接到文章上。
func (s *ArticleService) Create(req *dto.ArticleCreateRequest) (*model.Article, error) {
	article := &model.Article{
		Title:       strings.TrimSpace(req.Title),
		Subtitle:    strings.TrimSpace(req.Subtitle),
		Author:      strings.TrimSpace(req.Author),
		Content:     strings.TrimSpace(req.Content),
		Category:    ctypes.CategoryList(req.Category).Normalize(),
		IsPublished: req.IsPublished,
		IsOriginal:  req.IsOriginal,
		Thumbnail:   req.Thumbnail,
		UserID:      req.UserID,
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}

	s.invalidateCachesAsync(article.ID, article.Category)
	return article, nil
}

// Update 更新文章内容或发布状态
// 只应用请求里出现的字段，返回实际影响的行数。
func (s *ArticleService) Update(id int64, req *dto.ArticleUpdateRequest) (*dto.AffectedResponse, error) {
	updates := map[string]interface{}{}
	if req.Content != nil {
		updates["content"] = strings.TrimSpace(*req.Content)
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}

	if len(updates) == 0 {
		return &dto.AffectedResponse{Affected: false, Rows: 0}, nil
	}

	rows, err := s.articleRepo.Update(id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateCachesAsync(id, s.lookupCategories(id))
	return &dto.AffectedResponse{Affected: rows > 0, Rows: rows}, nil
}

// Delete 软删除文章
// 只置位is_deleted，数据不做物理删除。
func (s *ArticleService) Delete(id int64) (*dto.AffectedResponse, error) {
	categories := s.lookupCategories(id)

	rows, err := s.articleRepo.Update(id, map[string]interface{}{"is_deleted": true})
	if err != nil {
		return nil, err
	}

	s.invalidateCachesAsync(id, categories)
	return &dto.AffectedResponse{Affected: rows > 0, Rows: rows}, nil
}

// lookupCategories 取文章的分类标签，仅用于缓存失效，取不到时返回空
func (s *ArticleService) lookupCategories(id int64) ctypes.CategoryList {
	article, err := s.articleRepo.FindByID(id)
	if err != nil {
		return nil
	}
	return article.Category
}

// SeriesOverview 系列概览：统计分类包含该标签的已发布文章
func (s *ArticleService) SeriesOverview(series string) (*dto.SeriesOverviewResponse, error) {
	ctx := context.Background()

	if s.articleCache != nil {
		var cached dto.SeriesOverviewResponse
		if err := s.articleCache.GetSeriesOverview(ctx, series, &cached); err == nil {
			return &cached, nil
		} else if err != redis.Nil {
			s.log.Warnf("获取系列概览缓存失败: %v", err)
		}
	}

	overview, err := s.computeSeriesOverview(series)
	if err != nil {
		return nil, err
	}

	s.setSeriesCacheAsync(series, overview)
	return overview, nil
}

// RefreshSeriesOverview 重新计算系列概览并回填缓存
func (s *ArticleService) RefreshSeriesOverview(series string) (*dto.SeriesOverviewResponse, error) {
	overview, err := s.computeSeriesOverview(series)
	if err != nil {
		return nil, err
	}
	s.setSeriesCacheAsync(series, overview)
	return overview, nil
}

// computeSeriesOverview 扫描已发布文章计算系列概览
func (s *ArticleService) computeSeriesOverview(series string) (*dto.SeriesOverviewResponse, error) {
	articles, err := s.articleRepo.FindPublished()
	if err != nil {
		return nil, err
	}

	overview := &dto.SeriesOverviewResponse{Series: series}
	for i := range articles {
		if !articles[i].Category.Contains(series) {
			continue
		}
		overview.Total++
		if articles[i].IsOriginal {
			overview.Original++
		}
	}
	return overview, nil
}

// incrementView 浏览量加一，不重试也不上报调用方
func (s *ArticleService) incrementView(statisticsID int64) {
	if err := s.statsRepo.IncrementView(statisticsID); err != nil {
		s.log.Warnf("更新文章浏览量失败: statisticsID=%d err=%v", statisticsID, err)
	}
}

// convertToArticleData 转换为文章完整信息
func (s *ArticleService) convertToArticleData(article *model.Article) dto.ArticleData {
	return dto.ArticleData{
		ID:          article.ID,
		Title:       article.Title,
		Subtitle:    article.Subtitle,
		Author:      article.Author,
		Content:     article.Content,
		Category:    article.Category.Normalize(),
		IsPublished: article.IsPublished,
		IsOriginal:  article.IsOriginal,
		Thumbnail:   article.Thumbnail,
		Statistics:  convertToStatisticsData(&article.Statistics),
		CreatedAt:   article.CreatedAt.Format(s.cfg.DateFormat),
		UpdatedAt:   article.UpdatedAt.Format(s.cfg.DateFormat),
	}
}

// convertToStatisticsData 转换统计信息
func convertToStatisticsData(stats *model.ArticleStatistics) dto.StatisticsData {
	return dto.StatisticsData{
		ID:     stats.ID,
		View:   stats.View,
		Enjoy:  stats.Enjoy,
		Stored: stats.Stored,
	}
}

// statValue 按排序字段取统计计数
func statValue(stats dto.StatisticsData, key string) int64 {
	switch key {
	case "view":
		return stats.View
	case "enjoy":
		return stats.Enjoy
	case "stored":
		return stats.Stored
	}
	return 0
}

// rankArticles 按统计字段稳定降序排序，rank为空不排序
func rankArticles(articles []model.Article, rank string) {
	if rank == "" {
		return
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return statValue(convertToStatisticsData(&articles[i].Statistics), rank) >
			statValue(convertToStatisticsData(&articles[j].Statistics), rank)
	})
}

// rankOverviews 概览列表的稳定降序排序
func rankOverviews(overviews []dto.ArticleOverview, rank string) {
	if rank == "" {
		return
	}
	sort.SliceStable(overviews, func(i, j int) bool {
		return statValue(overviews[i].Statistics, rank) > statValue(overviews[j].Statistics, rank)
	})
}

// 缓存相关方法

// setDetailCacheAsync 异步设置文章详情缓存
func (s *ArticleService) setDetailCacheAsync(id int64, data *dto.ArticleData) {
	if s.articleCache == nil {
		return
	}
	cached := *data
	go func() {
		if err := s.articleCache.SetArticleDetail(context.Background(), id, &cached); err != nil {
			s.log.Warnf("设置文章详情缓存失败: %v", err)
		}
	}()
}

// setSeriesCacheAsync 异步设置系列概览缓存
func (s *ArticleService) setSeriesCacheAsync(series string, overview *dto.SeriesOverviewResponse) {
	if s.articleCache == nil {
		return
	}
	cached := *overview
	go func() {
		if err := s.articleCache.SetSeriesOverview(context.Background(), series, &cached); err != nil {
			s.log.Warnf("设置系列概览缓存失败: %v", err)
		}
	}()
}

// invalidateCachesAsync 异步清理文章相关缓存
func (s *ArticleService) invalidateCachesAsync(articleID int64, categories ctypes.CategoryList) {
	if s.articleCache == nil {
		return
	}
	tags := append(ctypes.CategoryList{}, categories...)
	go func() {
		ctx := context.Background()
		if err := s.articleCache.DeleteArticleDetail(ctx, articleID); err != nil {
			s.log.Warnf("清除文章详情缓存失败: %v", err)
		}
		if err := s.articleCache.DeleteSeriesOverview(ctx, tags...); err != nil {
			s.log.Warnf("清除系列概览缓存失败: %v", err)
		}
	}()
}
