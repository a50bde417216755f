package service

import (
	"sort"
	"sync"

	"article-api/internal/model"
	"article-api/internal/repository"

	"gorm.io/gorm"
)

// fakeStatsRepo 内存统计存储，行为对齐gorm实现
type fakeStatsRepo struct {
	mu     sync.Mutex
	nextID int64
	stats  map[int64]model.ArticleStatistics

	// incremented 每次浏览量自增后收到统计ID，供测试等待异步自增落地
	incremented chan int64
	// readBarrier 非空时FindByID会在屏障上集合，用于构造并发交错
	readBarrier *sync.WaitGroup
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{
		nextID: 1,
		stats:  make(map[int64]model.ArticleStatistics),
	}
}

func (f *fakeStatsRepo) create() model.ArticleStatistics {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := model.ArticleStatistics{Base: model.Base{ID: f.nextID}}
	f.nextID++
	f.stats[stats.ID] = stats
	return stats
}

func (f *fakeStatsRepo) FindByID(id int64) (*model.ArticleStatistics, error) {
	f.mu.Lock()
	stats, ok := f.stats[id]
	f.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	// 读取完成后在屏障上集合，保证并发读者拿到同一起点再继续
	if f.readBarrier != nil {
		f.readBarrier.Done()
		f.readBarrier.Wait()
	}

	copied := stats
	return &copied, nil
}

func (f *fakeStatsRepo) Update(id int64, values map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats, ok := f.stats[id]
	if !ok {
		return 0, nil
	}
	if v, ok := values["enjoy"]; ok {
		stats.Enjoy = v.(int64)
	}
	if v, ok := values["stored"]; ok {
		stats.Stored = v.(int64)
	}
	f.stats[id] = stats
	return 1, nil
}

func (f *fakeStatsRepo) IncrementView(id int64) error {
	f.mu.Lock()
	stats, ok := f.stats[id]
	if ok {
		stats.View++
		f.stats[id] = stats
	}
	f.mu.Unlock()

	if f.incremented != nil {
		f.incremented <- id
	}
	return nil
}

func (f *fakeStatsRepo) view(id int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats[id].View
}

var _ repository.StatisticsRepository = (*fakeStatsRepo)(nil)

// fakeArticleRepo 内存文章存储，行为对齐gorm实现
type fakeArticleRepo struct {
	mu       sync.Mutex
	nextID   int64
	articles []model.Article
	stats    *fakeStatsRepo
}

func newFakeArticleRepo(stats *fakeStatsRepo) *fakeArticleRepo {
	return &fakeArticleRepo{nextID: 1, stats: stats}
}

// attachStats 返回挂接了最新统计值的文章副本
func (f *fakeArticleRepo) attachStats(a model.Article) model.Article {
	if stats, err := f.stats.FindByID(a.StatisticsID); err == nil {
		a.Statistics = *stats
	}
	return a
}

func (f *fakeArticleRepo) FindPage(scope repository.ArticleScope) ([]model.Article, error) {
	f.mu.Lock()
	list := make([]model.Article, 0, len(f.articles))
	for _, a := range f.articles {
		if !scope.AllState && (a.IsDeleted || !a.IsPublished) {
			continue
		}
		list = append(list, a)
	}
	f.mu.Unlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	if scope.Offset >= len(list) {
		return nil, nil
	}
	list = list[scope.Offset:]
	if scope.Limit > 0 && len(list) > scope.Limit {
		list = list[:scope.Limit]
	}

	for i := range list {
		list[i] = f.attachStats(list[i])
	}
	return list, nil
}

func (f *fakeArticleRepo) FindByID(id int64) (*model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.articles {
		if a.ID == id && !a.IsDeleted {
			copied := f.attachStats(a)
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeArticleRepo) FindPublished() ([]model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]model.Article, 0, len(f.articles))
	for _, a := range f.articles {
		if a.IsDeleted || !a.IsPublished {
			continue
		}
		list = append(list, f.attachStats(a))
	}
	return list, nil
}

func (f *fakeArticleRepo) Create(article *model.Article) error {
	stats := f.stats.create()
	article.StatisticsID = stats.ID
	article.Statistics = stats

	f.mu.Lock()
	defer f.mu.Unlock()
	if article.ID == 0 {
		article.ID = f.nextID
	}
	f.nextID = article.ID + 1
	f.articles = append(f.articles, *article)
	return nil
}

func (f *fakeArticleRepo) Update(id int64, values map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.articles {
		if f.articles[i].ID != id {
			continue
		}
		if v, ok := values["content"]; ok {
			f.articles[i].Content = v.(string)
		}
		if v, ok := values["is_published"]; ok {
			f.articles[i].IsPublished = v.(bool)
		}
		if v, ok := values["is_deleted"]; ok {
			f.articles[i].IsDeleted = v.(bool)
		}
		return 1, nil
	}
	return 0, nil
}

var _ repository.ArticleRepository = (*fakeArticleRepo)(nil)
