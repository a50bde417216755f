package model

import (
	"article-api/pkg/snowflake"

	"gorm.io/gorm"
)

// ArticleStatistics 文章统计模型
// 与文章同事务创建，之后由读流量和累加调用独立更新。
type ArticleStatistics struct {
	Base
	View   int64 `gorm:"not null;default:0" json:"view"`   // 浏览量
	Enjoy  int64 `gorm:"not null;default:0" json:"enjoy"`  // 喜欢数
	Stored int64 `gorm:"not null;default:0" json:"stored"` // 收藏数
}

// TableName 指定表名
func (ArticleStatistics) TableName() string {
	return "article_statistics"
}

// BeforeCreate 创建前分配雪花ID
func (s *ArticleStatistics) BeforeCreate(tx *gorm.DB) error {
	if s.ID == 0 {
		id, err := snowflake.GenerateID()
		if err != nil {
			return err
		}
		s.ID = id
	}
	return nil
}
