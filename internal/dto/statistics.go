package dto

// StatisticsData 文章统计信息
type StatisticsData struct {
	ID     int64 `json:"id"`
	View   int64 `json:"view"`
	Enjoy  int64 `json:"enjoy"`
	Stored int64 `json:"stored"`
}

// StatisticsAccumulateRequest 统计累加请求
// 缺省的字段不参与累加。
type StatisticsAccumulateRequest struct {
	Enjoy  *int64 `json:"enjoy" binding:"omitempty"`
	Stored *int64 `json:"stored" binding:"omitempty"`
}
