// Package pathfilter 决定主机目录下哪些条目需要被扫描。
package pathfilter

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"logsearch/internal/daterange"
)

// DefaultPrefix 是访问日志文件名的固定前缀。
const DefaultPrefix = "access_"

// IsLogFile 判断条目是否为以 prefix 开头的普通文件或符号链接。
// 符号链接的目标类型留给 InDateRange 检查。
func IsLogFile(entry fs.DirEntry, prefix string) bool {
	mode := entry.Type()
	if !mode.IsRegular() && mode&fs.ModeSymlink == 0 {
		return false
	}
	return strings.HasPrefix(entry.Name(), prefix)
}

// InDateRange 读取文件最后修改时间并判断是否落在窗口内，符号链接按目标判断。
// 读取失败时返回 false 和错误，由调用方记录后当作“排除”处理；
// 目标不是普通文件时直接排除。
func InDateRange(path string, window daterange.Window) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("could not get last modified time of file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	return window.Contains(info.ModTime()), nil
}
