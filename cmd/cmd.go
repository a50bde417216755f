package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"article-api/internal/config"
	"article-api/internal/controller"
	"article-api/internal/database"
	"article-api/internal/logger"
	"article-api/internal/middleware"
	"article-api/internal/model"
	"article-api/internal/repository"
	"article-api/internal/router"
	"article-api/internal/service"
	"article-api/pkg/cache"
	"article-api/pkg/snowflake"
	"article-api/pkg/validate"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "article-api",
	Short: "文章目录服务",
	Long:  `文章目录服务，提供文章的查询过滤、概览投影、排序以及浏览/喜欢/收藏计数`,
}

// serveCmd 启动服务命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	Long:  `启动文章目录的HTTP服务器`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config", "配置文件路径")

	rootCmd.AddCommand(serveCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initializeSystem 初始化系统
func initializeSystem() error {
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("配置初始化失败: %v", err)
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("日志初始化失败: %v", err)
	}

	if err := snowflake.Init("2024-01-01", config.GlobalConfig.App.MachineID); err != nil {
		return fmt.Errorf("雪花节点初始化失败: %v", err)
	}

	if err := validate.RegisterValidations(); err != nil {
		return fmt.Errorf("注册校验规则失败: %v", err)
	}

	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("MySQL数据库连接失败")
	}

	if err := model.InitTables(db); err != nil {
		return fmt.Errorf("初始化数据库表失败: %v", err)
	}

	return nil
}

// startServer 启动HTTP服务
func startServer() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.GlobalConfig
	gin.SetMode(cfg.App.Mode)

	// 组装依赖
	db := database.GetDB()
	articleCache := cache.NewArticleCache(cache.NewRedisCache(database.GetRedis()))
	articleRepo := repository.NewArticleRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	log := logger.GetSugaredLogger()
	articleService := service.NewArticleService(articleRepo, statsRepo, articleCache, cfg.Article, log)
	statisticsService := service.NewStatisticsService(statsRepo, log)

	// 定时预热系列概览缓存
	scheduler := service.NewScheduler(articleService, cfg.Article.SeriesWarmTags, cfg.Article.SeriesWarmSpec, log)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("启动定时任务失败", zap.Error(err))
	}
	defer scheduler.Stop()

	r := initRouter(articleService, statisticsService, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	// 优雅关闭
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	logger.Info("服务已启动", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("服务关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}

// initRouter 初始化路由
func initRouter(articleService *service.ArticleService, statisticsService *service.StatisticsService, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(logger.GinLogger())
	r.Use(middleware.Cors())

	articleApi := controller.NewArticleApi(articleService, log)
	statisticsApi := controller.NewStatisticsApi(statisticsService, log)
	router.Setup(r, articleApi, statisticsApi)

	return r
}
