package service

import (
	"errors"
	"sync"
	"testing"

	"article-api/internal/dto"

	"go.uber.org/zap"
)

func int64Ptr(v int64) *int64 { return &v }

func TestAccumulatePartialDelta(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc := NewStatisticsService(statsRepo, zap.NewNop().Sugar())
	stats := statsRepo.create()

	data, err := svc.Accumulate(stats.ID, &dto.StatisticsAccumulateRequest{Enjoy: int64Ptr(3)})
	if err != nil {
		t.Fatalf("Accumulate失败: %v", err)
	}
	if data.Enjoy != 3 {
		t.Errorf("期望enjoy=3, 实际%d", data.Enjoy)
	}
	if data.Stored != 0 {
		t.Errorf("未提供的字段不应改动, stored=%d", data.Stored)
	}

	data, err = svc.Accumulate(stats.ID, &dto.StatisticsAccumulateRequest{
		Enjoy:  int64Ptr(-1),
		Stored: int64Ptr(5),
	})
	if err != nil {
		t.Fatalf("Accumulate失败: %v", err)
	}
	if data.Enjoy != 2 || data.Stored != 5 {
		t.Errorf("期望enjoy=2 stored=5, 实际%+v", data)
	}
}

func TestAccumulateEmptyRequest(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc := NewStatisticsService(statsRepo, zap.NewNop().Sugar())
	stats := statsRepo.create()

	data, err := svc.Accumulate(stats.ID, &dto.StatisticsAccumulateRequest{})
	if err != nil {
		t.Fatalf("Accumulate失败: %v", err)
	}
	if data.Enjoy != 0 || data.Stored != 0 {
		t.Errorf("空请求不应改变计数: %+v", data)
	}
}

func TestAccumulateNotFound(t *testing.T) {
	svc := NewStatisticsService(newFakeStatsRepo(), zap.NewNop().Sugar())

	if _, err := svc.Accumulate(404, &dto.StatisticsAccumulateRequest{Enjoy: int64Ptr(1)}); !errors.Is(err, ErrStatisticsNotFound) {
		t.Fatalf("期望ErrStatisticsNotFound, 实际%v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewStatisticsService(newFakeStatsRepo(), zap.NewNop().Sugar())

	if _, err := svc.GetByID(404); !errors.Is(err, ErrStatisticsNotFound) {
		t.Fatalf("期望ErrStatisticsNotFound, 实际%v", err)
	}
}

// TestAccumulateConcurrentOverwrite 验证读-改-写的既有行为：
// 两个并发累加在同一起点读取，后写者覆盖先写者，最终只落地一次。
func TestAccumulateConcurrentOverwrite(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc := NewStatisticsService(statsRepo, zap.NewNop().Sugar())
	stats := statsRepo.create()

	barrier := &sync.WaitGroup{}
	barrier.Add(2)
	statsRepo.readBarrier = barrier

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Accumulate(stats.ID, &dto.StatisticsAccumulateRequest{Enjoy: int64Ptr(1)}); err != nil {
				t.Errorf("Accumulate失败: %v", err)
			}
		}()
	}
	wg.Wait()
	statsRepo.readBarrier = nil

	got, err := statsRepo.FindByID(stats.ID)
	if err != nil {
		t.Fatalf("FindByID失败: %v", err)
	}
	if got.Enjoy != 1 {
		t.Errorf("两次并发+1在同一起点读取时应互相覆盖, 期望enjoy=1, 实际%d", got.Enjoy)
	}
}
