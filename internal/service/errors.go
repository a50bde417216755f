package service

import "errors"

var (
	// ErrArticleNotFound 文章不存在或已被删除
	ErrArticleNotFound = errors.New("文章不存在")
	// ErrStatisticsNotFound 统计记录不存在
	ErrStatisticsNotFound = errors.New("统计记录不存在")
)
