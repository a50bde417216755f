package snowflake

import (
	"fmt"
	"time"

	sf "github.com/bwmarrin/snowflake"
)

var node *sf.Node

// Init 初始化雪花算法节点
// startTime: 起始时间，格式："2006-01-02"
// machineID: 机器ID (0-1023)
func Init(startTime string, machineID int64) error {
	st, err := time.Parse("2006-01-02", startTime)
	if err != nil {
		return fmt.Errorf("解析起始时间失败: %v", err)
	}

	sf.Epoch = st.UnixNano() / 1000000

	node, err = sf.NewNode(machineID)
	if err != nil {
		return fmt.Errorf("创建雪花节点失败: %v", err)
	}
	return nil
}

// GenerateID 生成唯一ID
func GenerateID() (int64, error) {
	if node == nil {
		return 0, fmt.Errorf("雪花节点未初始化")
	}
	return node.Generate().Int64(), nil
}
