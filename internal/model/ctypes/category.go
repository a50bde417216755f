package ctypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// CategoryList 文章分类标签集合
// 存储层没有原生的列表列，落库时编码为JSON字符串，读取时解码还原，
// 顺序保留、重复去除。
type CategoryList []string

// Normalize 去重并保留首次出现顺序
func (c CategoryList) Normalize() CategoryList {
	if len(c) == 0 {
		return CategoryList{}
	}
	seen := make(map[string]struct{}, len(c))
	out := make(CategoryList, 0, len(c))
	for _, tag := range c {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Contains 判断是否包含指定标签
func (c CategoryList) Contains(tag string) bool {
	for _, t := range c {
		if t == tag {
			return true
		}
	}
	return false
}

// Intersects 判断与另一个标签集合是否存在交集
func (c CategoryList) Intersects(other CategoryList) bool {
	if len(c) == 0 || len(other) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(other))
	for _, t := range other {
		set[t] = struct{}{}
	}
	for _, t := range c {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// Value 实现 driver.Valuer 接口
func (c CategoryList) Value() (driver.Value, error) {
	data, err := json.Marshal(c.Normalize())
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner 接口
func (c *CategoryList) Scan(value interface{}) error {
	if value == nil {
		*c = CategoryList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法将 %T 转换为 CategoryList", value)
	}

	if len(data) == 0 {
		*c = CategoryList{}
		return nil
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("解码分类字段失败: %w", err)
	}
	*c = CategoryList(tags).Normalize()
	return nil
}
