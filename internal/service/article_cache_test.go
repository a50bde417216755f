package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"article-api/internal/dto"
	"article-api/pkg/cache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// fakeCache 内存缓存，缺键时返回redis.Nil，读写删各自发信号供测试等待异步落地
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	set     chan string
	deleted chan string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string][]byte),
		set:     make(chan string, 8),
		deleted: make(chan string, 8),
	}
}

func (f *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	data, ok := f.entries[key]
	f.mu.Unlock()
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.entries[key] = data
	f.mu.Unlock()
	f.set <- key
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	for _, key := range keys {
		delete(f.entries, key)
	}
	f.mu.Unlock()
	for _, key := range keys {
		f.deleted <- key
	}
	return nil
}

var _ cache.Cache = (*fakeCache)(nil)

func newCachedTestService(t *testing.T) (*ArticleService, *fakeArticleRepo, *fakeStatsRepo, *fakeCache) {
	t.Helper()
	statsRepo := newFakeStatsRepo()
	articleRepo := newFakeArticleRepo(statsRepo)
	fc := newFakeCache()
	svc := NewArticleService(articleRepo, statsRepo, cache.NewArticleCache(fc), testConfig(), zap.NewNop().Sugar())
	return svc, articleRepo, statsRepo, fc
}

func waitSignal(t *testing.T, ch chan string, what string) string {
	t.Helper()
	select {
	case key := <-ch:
		return key
	case <-time.After(2 * time.Second):
		t.Fatalf("等待%s超时", what)
		return ""
	}
}

func TestGetDetailCacheHit(t *testing.T) {
	svc, repo, statsRepo, fc := newCachedTestService(t)
	article := seedArticle(t, repo, published("t", "a"))

	// 预置一份计数已过时的缓存快照
	stale := dto.ArticleData{
		ID:         article.ID,
		Title:      article.Title,
		Statistics: dto.StatisticsData{ID: article.StatisticsID, View: 1},
	}
	if err := cache.NewArticleCache(fc).SetArticleDetail(context.Background(), article.ID, &stale); err != nil {
		t.Fatalf("预置缓存失败: %v", err)
	}
	waitSignal(t, fc.set, "缓存写入")

	statsRepo.mu.Lock()
	stats := statsRepo.stats[article.StatisticsID]
	stats.View = 7
	statsRepo.stats[article.StatisticsID] = stats
	statsRepo.mu.Unlock()

	statsRepo.incremented = make(chan int64, 1)

	detail, err := svc.GetDetail(article.ID)
	if err != nil {
		t.Fatalf("GetDetail失败: %v", err)
	}

	// 命中后重新读取计数，不停留在缓存写入时刻的快照
	if detail.Statistics.View != 7 {
		t.Errorf("命中缓存也应返回最新计数, 期望7, 实际%d", detail.Statistics.View)
	}

	// 命中缓存同样调度浏览量自增
	select {
	case <-statsRepo.incremented:
	case <-time.After(2 * time.Second):
		t.Fatal("等待浏览量自增超时")
	}
	if got := statsRepo.view(article.StatisticsID); got != 8 {
		t.Errorf("自增落地后期望浏览量8, 实际%d", got)
	}
}

func TestGetDetailCacheMissPopulates(t *testing.T) {
	svc, repo, _, fc := newCachedTestService(t)
	article := seedArticle(t, repo, published("t", "a"))

	detail, err := svc.GetDetail(article.ID)
	if err != nil {
		t.Fatalf("GetDetail失败: %v", err)
	}
	if detail.Title != "t" {
		t.Errorf("未命中缓存应回源存储: %+v", detail)
	}

	// 回源后异步回填缓存
	waitSignal(t, fc.set, "缓存写入")

	var cached dto.ArticleData
	if err := cache.NewArticleCache(fc).GetArticleDetail(context.Background(), article.ID, &cached); err != nil {
		t.Fatalf("回填后读取缓存失败: %v", err)
	}
	if cached.ID != article.ID {
		t.Errorf("缓存内容与文章不符: %+v", cached)
	}
}

func TestUpdateInvalidatesCaches(t *testing.T) {
	svc, repo, _, fc := newCachedTestService(t)
	article := seedArticle(t, repo, published("t", "a", "go"))

	ctx := context.Background()
	articleCache := cache.NewArticleCache(fc)
	if err := articleCache.SetArticleDetail(ctx, article.ID, &dto.ArticleData{ID: article.ID}); err != nil {
		t.Fatalf("预置详情缓存失败: %v", err)
	}
	if err := articleCache.SetSeriesOverview(ctx, "go", &dto.SeriesOverviewResponse{Series: "go"}); err != nil {
		t.Fatalf("预置系列缓存失败: %v", err)
	}
	waitSignal(t, fc.set, "缓存写入")
	waitSignal(t, fc.set, "缓存写入")

	if _, err := svc.Update(article.ID, &dto.ArticleUpdateRequest{Content: strPtr("updated")}); err != nil {
		t.Fatalf("Update失败: %v", err)
	}

	// 详情键与分类对应的系列键都应被清理
	waitSignal(t, fc.deleted, "缓存清理")
	waitSignal(t, fc.deleted, "缓存清理")

	var detail dto.ArticleData
	if err := articleCache.GetArticleDetail(ctx, article.ID, &detail); err != redis.Nil {
		t.Errorf("详情缓存应已清理, err=%v", err)
	}
	var overview dto.SeriesOverviewResponse
	if err := articleCache.GetSeriesOverview(ctx, "go", &overview); err != redis.Nil {
		t.Errorf("系列缓存应已清理, err=%v", err)
	}
}

func TestDeleteInvalidatesCaches(t *testing.T) {
	svc, repo, _, fc := newCachedTestService(t)
	article := seedArticle(t, repo, published("t", "a", "go"))

	ctx := context.Background()
	articleCache := cache.NewArticleCache(fc)
	if err := articleCache.SetArticleDetail(ctx, article.ID, &dto.ArticleData{ID: article.ID}); err != nil {
		t.Fatalf("预置详情缓存失败: %v", err)
	}
	waitSignal(t, fc.set, "缓存写入")

	result, err := svc.Delete(article.ID)
	if err != nil {
		t.Fatalf("Delete失败: %v", err)
	}
	if !result.Affected {
		t.Fatal("删除存在的文章应报告affected=true")
	}

	waitSignal(t, fc.deleted, "缓存清理")

	var detail dto.ArticleData
	if err := articleCache.GetArticleDetail(ctx, article.ID, &detail); err != redis.Nil {
		t.Errorf("详情缓存应已清理, err=%v", err)
	}
}

func TestSchedulerWarmsSeriesOverviews(t *testing.T) {
	svc, repo, _, fc := newCachedTestService(t)
	seedArticle(t, repo, published("t1", "a", "go"))
	reposted := published("t2", "b", "go")
	reposted.IsOriginal = false
	seedArticle(t, repo, reposted)

	s := NewScheduler(svc, []string{"go"}, "@every 10m", zap.NewNop().Sugar())
	s.warmSeriesOverviews()

	waitSignal(t, fc.set, "缓存写入")

	var overview dto.SeriesOverviewResponse
	if err := cache.NewArticleCache(fc).GetSeriesOverview(context.Background(), "go", &overview); err != nil {
		t.Fatalf("预热后读取系列缓存失败: %v", err)
	}
	if overview.Total != 2 || overview.Original != 1 {
		t.Errorf("期望total=2 original=1, 实际%+v", overview)
	}
}

func TestSchedulerStartWithoutTags(t *testing.T) {
	svc, _, _, _ := newCachedTestService(t)

	s := NewScheduler(svc, nil, "@every 10m", zap.NewNop().Sugar())
	if err := s.Start(); err != nil {
		t.Fatalf("无标签时Start应直接返回: %v", err)
	}
	s.Stop()
}