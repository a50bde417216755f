package model

// User 用户模型
// 文章侧只用它查询作者头像。
type User struct {
	Base
	Username string `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Nickname string `gorm:"type:varchar(50)" json:"nickname"`
	Avatar   string `gorm:"type:varchar(255)" json:"avatar"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
