package dto

// ArticleListRequest 文章列表查询请求
// 过滤条件均为可选，缺省即不过滤。
type ArticleListRequest struct {
	Offset   int      `form:"offset" binding:"omitempty,min=0"`        // 偏移量
	Limit    int      `form:"limit" binding:"omitempty,min=1"`         // 条数上限，缺省使用配置默认值
	Author   string   `form:"author"`                                  // 作者子串（区分大小写）
	Title    string   `form:"title"`                                   // 标题子串（区分大小写）
	Category []string `form:"category"`                                // 分类标签集合，交集非空保留
	UserID   int64    `form:"user_id"`                                 // 请求方用户ID，精确匹配
	Overview bool     `form:"overview"`                                // 是否返回概览投影
	Rank     string   `form:"rank" binding:"omitempty,rankkey"`        // 排序字段: view enjoy stored
	AllState bool     `form:"all_state"`                               // 是否包含未发布与已删除的文章
}

// ArticleCreateRequest 创建文章请求
type ArticleCreateRequest struct {
	Title       string   `json:"title" binding:"required,max=255"` // 文章标题
	Subtitle    string   `json:"subtitle" binding:"max=255"`       // 副标题
	Author      string   `json:"author" binding:"required,max=100"`
	Content     string   `json:"content" binding:"required"` // markdown内容
	Category    []string `json:"category"`                   // 分类标签
	Thumbnail   string   `json:"thumbnail"`
	IsPublished bool     `json:"is_published"`
	IsOriginal  bool     `json:"is_original"`
	UserID      int64    `json:"user_id"` // 作者账号ID，仅用于头像关联
}

// ArticleUpdateRequest 更新文章请求
// 只允许修改内容与发布状态，缺省字段不改动，指针区分缺省与清空。
type ArticleUpdateRequest struct {
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

// ArticleData 文章完整信息
type ArticleData struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Author      string         `json:"author"`
	Content     string         `json:"content"`
	Category    []string       `json:"category"`
	IsPublished bool           `json:"is_published"`
	IsOriginal  bool           `json:"is_original"`
	Thumbnail   string         `json:"thumbnail"`
	Statistics  StatisticsData `json:"statistics"`
	CreatedAt   string         `json:"created_at"` // 按配置的日期格式输出
	UpdatedAt   string         `json:"updated_at"`
}

// ArticleOverview 文章概览投影
// 内容剥离图片引用后截取前100个字符作为摘要。
type ArticleOverview struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Summary     string         `json:"summary"`
	Category    []string       `json:"category"`
	IsPublished bool           `json:"is_published"`
	Thumbnail   string         `json:"thumbnail"`
	Avatar      string         `json:"avatar"` // 作者头像
	Statistics  StatisticsData `json:"statistics"`
	CreatedAt   string         `json:"created_at"`
}

// AffectedResponse 更新/删除影响行数
type AffectedResponse struct {
	Affected bool  `json:"affected"` // 是否有记录受影响
	Rows     int64 `json:"rows"`     // 受影响的行数
}

// SeriesOverviewResponse 系列概览
type SeriesOverviewResponse struct {
	Series   string `json:"series"`
	Total    int64  `json:"total"`    // 分类包含该标签的已发布文章总数
	Original int64  `json:"original"` // 其中标记为原创的数量
}
