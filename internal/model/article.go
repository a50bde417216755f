package model

import (
	"article-api/internal/model/ctypes"
	"article-api/pkg/snowflake"

	"gorm.io/gorm"
)

// Article 文章模型
type Article struct {
	Base
	Title        string              `gorm:"type:varchar(255);not null" json:"title"`
	Subtitle     string              `gorm:"type:varchar(255)" json:"subtitle"`
	Author       string              `gorm:"type:varchar(100);index" json:"author"`
	Content      string              `gorm:"type:longtext" json:"content"`
	Category     ctypes.CategoryList `gorm:"type:varchar(512)" json:"category"`
	IsPublished  bool                `gorm:"not null;default:false;index" json:"is_published"`
	IsDeleted    bool                `gorm:"not null;default:false;index" json:"is_deleted"` // 软删除标记
	IsOriginal   bool                `gorm:"not null;default:true" json:"is_original"`       // 是否原创
	Thumbnail    string              `gorm:"type:varchar(255)" json:"thumbnail"`
	UserID       int64               `gorm:"index" json:"user_id"`
	StatisticsID int64               `gorm:"not null;uniqueIndex" json:"statistics_id"`

	// 关联
	User       User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Statistics ArticleStatistics `gorm:"foreignKey:StatisticsID" json:"statistics"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}

// BeforeCreate 创建前分配雪花ID
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == 0 {
		id, err := snowflake.GenerateID()
		if err != nil {
			return err
		}
		a.ID = id
	}
	return nil
}
