package service

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler 定时任务调度器
// 周期性重算配置里指定的系列概览，保持缓存温热。
type Scheduler struct {
	cron           *cron.Cron
	articleService *ArticleService
	tags           []string
	spec           string
	log            *zap.SugaredLogger
}

// NewScheduler 创建调度器实例
func NewScheduler(articleService *ArticleService, tags []string, spec string, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		articleService: articleService,
		tags:           tags,
		spec:           spec,
		log:            log,
	}
}

// Start 启动定时任务
func (s *Scheduler) Start() error {
	if len(s.tags) == 0 {
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.warmSeriesOverviews); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("系列概览预热任务已启动: spec=%s tags=%v", s.spec, s.tags)
	return nil
}

// Stop 停止定时任务
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// warmSeriesOverviews 逐个重算并回填系列概览缓存
func (s *Scheduler) warmSeriesOverviews() {
	for _, tag := range s.tags {
		if _, err := s.articleService.RefreshSeriesOverview(tag); err != nil {
			s.log.Warnf("预热系列概览失败: series=%s err=%v", tag, err)
		}
	}
}
