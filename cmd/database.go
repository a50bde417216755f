package cmd

import (
	"errors"
	"fmt"
	"os"

	"article-api/internal/database"
	"article-api/internal/model"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// databaseCmd 数据库管理命令
var databaseCmd = &cobra.Command{
	Use:   "db",
	Short: "数据库管理命令",
	Long:  `数据库管理相关的命令，包括建表迁移和统计记录补齐`,
}

// migrateCmd 建表迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移",
	Long:  `按模型定义自动迁移数据库表结构`,
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate()
	},
}

// backfillStatsCmd 统计记录补齐命令
// 为缺少统计记录的历史文章补建零值记录。
var backfillStatsCmd = &cobra.Command{
	Use:   "backfill-stats",
	Short: "补齐文章统计记录",
	Long:  `扫描全部文章，为缺少统计记录的文章创建零值统计记录`,
	Run: func(cmd *cobra.Command, args []string) {
		runBackfillStats()
	},
}

func init() {
	databaseCmd.AddCommand(migrateCmd)
	databaseCmd.AddCommand(backfillStatsCmd)

	rootCmd.AddCommand(databaseCmd)
}

// runMigrate 执行自动迁移
func runMigrate() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("数据库迁移完成")
}

// runBackfillStats 为缺少统计记录的文章补建记录
func runBackfillStats() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	db := database.GetDB()

	var articles []model.Article
	if err := db.Find(&articles).Error; err != nil {
		fmt.Printf("读取文章失败: %v\n", err)
		os.Exit(1)
	}

	var created int
	for i := range articles {
		article := &articles[i]

		if article.StatisticsID != 0 {
			var stats model.ArticleStatistics
			err := db.First(&stats, article.StatisticsID).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				fmt.Printf("检查统计记录失败: articleID=%d err=%v\n", article.ID, err)
				continue
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			stats := &model.ArticleStatistics{}
			if err := tx.Create(stats).Error; err != nil {
				return err
			}
			return tx.Model(article).Update("statistics_id", stats.ID).Error
		})
		if err != nil {
			fmt.Printf("补建统计记录失败: articleID=%d err=%v\n", article.ID, err)
			continue
		}
		created++
	}

	fmt.Printf("统计记录补齐完成: 共%d篇文章, 新建%d条记录\n", len(articles), created)
}
