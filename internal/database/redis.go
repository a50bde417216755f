package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"article-api/internal/config"
	"article-api/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	redisClient *redis.Client
	redisOne    sync.Once
)

// InitRedis 初始化Redis连接
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接redis失败: %v", err)
	}

	logger.Info("redis连接成功", zap.String("addr", cfg.Addr()))
	return client, nil
}

// GetRedis 获取Redis客户端实例
func GetRedis() *redis.Client {
	redisOne.Do(func() {
		client, err := InitRedis(&config.GlobalConfig.Redis)
		if err != nil {
			panic(fmt.Sprintf("redis初始化失败: %v", err))
		}
		redisClient = client
	})
	return redisClient
}
