// Package model 定义 logsearch 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

import (
	"regexp"

	"logsearch/internal/daterange"
)

// ScanRequest 描述一次扫描的全部输入，创建后不再修改。
type ScanRequest struct {
	// Root 是日志根目录，其直接子目录视为主机目录。
	Root string
	// Pattern 是调用方正则，按“包含”语义匹配。
	Pattern *regexp.Regexp
	// Window 是文件修改时间的开区间 (From, To)。
	Window daterange.Window
	// CountOnly 为 true 时只统计总命中数，不收集地址。
	CountOnly bool
}

// ErrorKind 区分单文件失败发生在哪个环节。
type ErrorKind string

const (
	ErrorKindStat  ErrorKind = "stat"
	ErrorKindOpen  ErrorKind = "open"
	ErrorKindRead  ErrorKind = "read"
	ErrorKindClose ErrorKind = "close"
)

// ScanError 记录单文件扫描失败信息。
// 设计为“错误不阻断全量扫描”，该文件已读取部分的命中仍然保留。
type ScanError struct {
	Path  string    `json:"path"`
	Kind  ErrorKind `json:"kind"`
	Error string    `json:"error"`
}

// RankedEntry 是排名输出中的一行 (地址, 次数)。
type RankedEntry struct {
	Address string `json:"address"`
	Count   uint64 `json:"count"`
}

// ScanResult 是一次扫描的完整产物。
//
// 注意：
// - TotalHits 统计的是匹配行数，而不是 Addresses 的值之和
// - CountOnly 模式下 Addresses 始终为空
type ScanResult struct {
	Root         string            `json:"root"`
	HostsScanned int64             `json:"hosts_scanned"`
	FilesScanned int64             `json:"files_scanned"`
	TotalHits    uint64            `json:"total_hits"`
	Addresses    map[string]uint64 `json:"-"`
	Errors       []ScanError       `json:"errors"`
}

// AddressSum 返回地址表中所有计数之和，恒不大于 TotalHits。
func (r ScanResult) AddressSum() uint64 {
	var sum uint64
	for _, count := range r.Addresses {
		sum += count
	}
	return sum
}
