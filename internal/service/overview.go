package service

import (
	"regexp"

	"article-api/internal/dto"
	"article-api/internal/model"
)

// summaryLength 概览摘要的最大字符数
const summaryLength = 100

// imageLinkPattern 匹配markdown图片引用 ![alt](url)
var imageLinkPattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

// buildOverview 文章到概览的纯投影，无副作用，可重复调用
func (s *ArticleService) buildOverview(article *model.Article) dto.ArticleOverview {
	return dto.ArticleOverview{
		ID:          article.ID,
		Title:       article.Title,
		Author:      article.Author,
		Summary:     summarize(article.Content),
		Category:    article.Category.Normalize(),
		IsPublished: article.IsPublished,
		Thumbnail:   article.Thumbnail,
		Avatar:      article.User.Avatar,
		Statistics:  convertToStatisticsData(&article.Statistics),
		CreatedAt:   article.CreatedAt.Format(s.cfg.DateFormat),
	}
}

// summarize 剥离图片引用后截取前summaryLength个字符
func summarize(content string) string {
	text := imageLinkPattern.ReplaceAllString(content, "")
	runes := []rune(text)
	if len(runes) <= summaryLength {
		return text
	}
	return string(runes[:summaryLength])
}
