// Package report 提供 logsearch 的输出能力。
// 当前实现支持逐行文本格式（默认）和 JSON 格式。
package report

import (
	"fmt"
	"io"
	"sort"

	"logsearch/internal/model"

	"github.com/bytedance/sonic"
)

// DefaultLimit 是地址排名最多展示的条数。
const DefaultLimit = 20

const (
	bannerRule    = "====================================="
	separatorRule = "-------------------------------------"
)

// Banner 是扫描前回显的调用参数，按用户输入原样展示。
type Banner struct {
	Pattern   string
	DateFrom  string
	DateTo    string
	LogDir    string
	CountOnly bool
}

// Options 控制汇总的生成方式。
type Options struct {
	// Days 是起止日期之间的天数，可以为 0 或负数。
	Days int64
	// ThresholdPerDay 是日均阈值，0 表示不过滤。
	ThresholdPerDay int64
	// Limit 是排名条数上限，<= 0 时使用 DefaultLimit。
	Limit     int
	CountOnly bool
}

// Summary 是最终输出模型。
type Summary struct {
	TotalHits       uint64              `json:"total_hits"`
	AddressSum      uint64              `json:"address_sum"`
	CountOnly       bool                `json:"count_only"`
	Days            int64               `json:"days"`
	ThresholdPerDay int64               `json:"threshold_per_day"`
	Threshold       int64               `json:"threshold"`
	Limit           int                 `json:"limit"`
	Top             []model.RankedEntry `json:"top"`
	HostsScanned    int64               `json:"hosts_scanned"`
	FilesScanned    int64               `json:"files_scanned"`
	Errors          []model.ScanError   `json:"errors"`
}

// NewSummary 根据扫描结果计算阈值与排名。
// CountOnly 时不生成排名。
func NewSummary(result model.ScanResult, options Options) Summary {
	limit := options.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	summary := Summary{
		TotalHits:       result.TotalHits,
		AddressSum:      result.AddressSum(),
		CountOnly:       options.CountOnly,
		Days:            options.Days,
		ThresholdPerDay: options.ThresholdPerDay,
		Threshold:       options.Days * options.ThresholdPerDay,
		Limit:           limit,
		Top:             make([]model.RankedEntry, 0),
		HostsScanned:    result.HostsScanned,
		FilesScanned:    result.FilesScanned,
		Errors:          result.Errors,
	}
	if summary.Errors == nil {
		summary.Errors = make([]model.ScanError, 0)
	}

	if !options.CountOnly {
		summary.Top = Rank(result.Addresses, summary.Threshold, limit)
	}
	return summary
}

// Rank 过滤出计数严格大于 threshold 的地址，按计数降序取前 limit 条。
// 计数相同时按地址升序，保证输出稳定。
func Rank(addresses map[string]uint64, threshold int64, limit int) []model.RankedEntry {
	entries := make([]model.RankedEntry, 0, len(addresses))
	for address, count := range addresses {
		if threshold >= 0 && count <= uint64(threshold) {
			continue
		}
		entries = append(entries, model.RankedEntry{Address: address, Count: count})
	}

	sort.Slice(entries, func(i int, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Address < entries[j].Address
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// PrintBanner 输出扫描参数回显和分隔线。
func PrintBanner(writer io.Writer, banner Banner) error {
	lines := []string{
		bannerRule,
		"Pattern = " + banner.Pattern,
		"Date from = " + banner.DateFrom,
		"Date to = " + banner.DateTo,
		"Log dir = " + banner.LogDir,
		fmt.Sprintf("Count only = %t", banner.CountOnly),
		separatorRule,
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintText 以逐行文本输出汇总。
func PrintText(writer io.Writer, summary Summary) error {
	if _, err := fmt.Fprintf(writer, "Total hits: \t %d\n", summary.TotalHits); err != nil {
		return err
	}
	if summary.CountOnly {
		return nil
	}

	heading := fmt.Sprintf("Top %d IPs:", summary.Limit)
	if summary.ThresholdPerDay > 0 {
		heading += fmt.Sprintf(" (showing IPs requesting *on average* more than %d times per day)", summary.ThresholdPerDay)
	}
	if _, err := fmt.Fprintln(writer, heading); err != nil {
		return err
	}

	for _, entry := range summary.Top {
		if _, err := fmt.Fprintf(writer, "%s \t %d\n", entry.Address, entry.Count); err != nil {
			return err
		}
	}
	return nil
}

// PrintJSON 把汇总按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, summary Summary) error {
	content, err := sonic.ConfigStd.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
