package cache

import (
	"context"
	"fmt"
	"time"
)

// 缓存键与过期时间
const (
	articleDetailKey  = "article:detail:%d"
	seriesOverviewKey = "article:series:%s"

	ArticleDetailExpiration  = 10 * time.Minute
	SeriesOverviewExpiration = 10 * time.Minute
)

// ArticleCache 文章缓存服务
type ArticleCache struct {
	cache Cache
}

// NewArticleCache 创建文章缓存服务
func NewArticleCache(cache Cache) *ArticleCache {
	return &ArticleCache{cache: cache}
}

// GetArticleDetail 获取文章详情缓存
func (a *ArticleCache) GetArticleDetail(ctx context.Context, articleID int64, dest interface{}) error {
	return a.cache.GetJSON(ctx, fmt.Sprintf(articleDetailKey, articleID), dest)
}

// SetArticleDetail 设置文章详情缓存
func (a *ArticleCache) SetArticleDetail(ctx context.Context, articleID int64, article interface{}) error {
	return a.cache.SetJSON(ctx, fmt.Sprintf(articleDetailKey, articleID), article, ArticleDetailExpiration)
}

// DeleteArticleDetail 删除文章详情缓存
func (a *ArticleCache) DeleteArticleDetail(ctx context.Context, articleID int64) error {
	return a.cache.Delete(ctx, fmt.Sprintf(articleDetailKey, articleID))
}

// GetSeriesOverview 获取系列概览缓存
func (a *ArticleCache) GetSeriesOverview(ctx context.Context, series string, dest interface{}) error {
	return a.cache.GetJSON(ctx, fmt.Sprintf(seriesOverviewKey, series), dest)
}

// SetSeriesOverview 设置系列概览缓存
func (a *ArticleCache) SetSeriesOverview(ctx context.Context, series string, overview interface{}) error {
	return a.cache.SetJSON(ctx, fmt.Sprintf(seriesOverviewKey, series), overview, SeriesOverviewExpiration)
}

// DeleteSeriesOverview 删除系列概览缓存
func (a *ArticleCache) DeleteSeriesOverview(ctx context.Context, series ...string) error {
	if len(series) == 0 {
		return nil
	}
	keys := make([]string, 0, len(series))
	for _, s := range series {
		keys = append(keys, fmt.Sprintf(seriesOverviewKey, s))
	}
	return a.cache.Delete(ctx, keys...)
}
