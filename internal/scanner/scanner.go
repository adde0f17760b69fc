// Package scanner 提供日志目录扫描调度能力。
// 该层负责 根目录 → 主机目录 → 日志文件 三层遍历、逐行读取和结果聚合，
// 不负责单行的解码与过滤细节。
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"logsearch/internal/aggregate"
	"logsearch/internal/classify"
	"logsearch/internal/model"
	"logsearch/internal/pathfilter"

	"github.com/sirupsen/logrus"
)

// ListingError 表示根目录或主机目录无法列出，整次扫描随之终止。
type ListingError struct {
	Path string
	Err  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("could not list log directory %s: %v", e.Path, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

// Service 是扫描服务对象。
// 同一个 Service 可以重复调用 Scan，每次调用使用独立的聚合器。
type Service struct {
	classifier *classify.Classifier
	prefix     string
	logger     logrus.FieldLogger
}

// NewService 创建扫描服务。
// prefix 为空时使用 access_；logger 为空时使用 logrus 默认实例。
// 扫描期间的每条诊断日志都带有 profile 字段。
func NewService(classifier *classify.Classifier, prefix string, logger logrus.FieldLogger) *Service {
	if strings.TrimSpace(prefix) == "" {
		prefix = pathfilter.DefaultPrefix
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		classifier: classifier,
		prefix:     prefix,
		logger:     logger.WithField("profile", classifier.Profile().Name),
	}
}

// Scan 按顺序扫描全部主机目录下的日志文件。
//
// 错误约定：
// - 根目录或主机目录无法列出时返回 *ListingError，结果不可用
// - 单文件失败记录到 ScanResult.Errors，扫描继续
func (s *Service) Scan(request model.ScanRequest) (model.ScanResult, error) {
	var result model.ScanResult

	if request.Pattern == nil {
		return result, errors.New("scan pattern is nil")
	}

	trimmedRoot := strings.TrimSpace(request.Root)
	if trimmedRoot == "" {
		return result, errors.New("log directory is empty")
	}

	absoluteRoot, err := filepath.Abs(trimmedRoot)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	result.Root = absoluteRoot
	result.Errors = make([]model.ScanError, 0)

	hosts, err := os.ReadDir(absoluteRoot)
	if err != nil {
		return result, &ListingError{Path: absoluteRoot, Err: err}
	}

	s.logger.WithFields(logrus.Fields{
		"root":       absoluteRoot,
		"from":       request.Window.From,
		"to":         request.Window.To,
		"count_only": request.CountOnly,
	}).Debug("scan started")

	counters := aggregate.New()
	for _, host := range hosts {
		hostPath := filepath.Join(absoluteRoot, host.Name())
		if !isDirectory(hostPath, host) {
			s.logger.WithField("path", hostPath).Debug("skipping non-directory entry in log root")
			continue
		}

		if err := s.scanHost(hostPath, request, counters, &result); err != nil {
			return result, err
		}
		result.HostsScanned++
	}

	result.TotalHits = counters.Total()
	result.Addresses = counters.Addresses()

	s.logger.WithFields(logrus.Fields{
		"hosts":       result.HostsScanned,
		"files":       result.FilesScanned,
		"hits":        result.TotalHits,
		"address_sum": counters.AddressSum(),
		"errors":      len(result.Errors),
	}).Info("scan finished")

	return result, nil
}

// scanHost 扫描单个主机目录，不再向下递归。
func (s *Service) scanHost(hostPath string, request model.ScanRequest, counters *aggregate.Aggregator, result *model.ScanResult) error {
	entries, err := os.ReadDir(hostPath)
	if err != nil {
		return &ListingError{Path: hostPath, Err: err}
	}

	for _, entry := range entries {
		if !pathfilter.IsLogFile(entry, s.prefix) {
			continue
		}

		filePath := filepath.Join(hostPath, entry.Name())
		inRange, statErr := pathfilter.InDateRange(filePath, request.Window)
		if statErr != nil {
			s.recordError(result, filePath, model.ErrorKindStat, statErr)
			continue
		}
		if !inRange {
			continue
		}

		scanErr := s.scanFile(filePath, request, counters)
		if scanErr != nil {
			s.recordError(result, filePath, scanErr.kind, scanErr.err)
		}
		if scanErr == nil || scanErr.kind != model.ErrorKindOpen {
			result.FilesScanned++
		}
	}

	return nil
}

// fileError 携带单文件失败发生的环节。
type fileError struct {
	kind model.ErrorKind
	err  error
}

// scanFile 流式读取单个文件，逐行执行 过滤 → 匹配 → 聚合。
// 读取中途出错时，已处理行的命中保留。
func (s *Service) scanFile(filePath string, request model.ScanRequest, counters *aggregate.Aggregator) *fileError {
	file, openErr := os.Open(filePath)
	if openErr != nil {
		return &fileError{kind: model.ErrorKindOpen, err: openErr}
	}

	readErr := s.processLines(file, request, counters)
	closeErr := file.Close()

	if readErr != nil {
		return &fileError{kind: model.ErrorKindRead, err: readErr}
	}
	if closeErr != nil {
		return &fileError{kind: model.ErrorKindClose, err: closeErr}
	}
	return nil
}

// processLines 使用 ReadString('\n') 按行读取，不会把整个文件载入内存。
func (s *Service) processLines(reader io.Reader, request model.ScanRequest, counters *aggregate.Aggregator) error {
	bufferedReader := bufio.NewReader(reader)
	for {
		raw, err := bufferedReader.ReadString('\n')
		if errors.Is(err, io.EOF) && len(raw) == 0 {
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		s.processLine(raw, request, counters)

		// 最后一行没有换行符
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

func (s *Service) processLine(raw string, request model.ScanRequest, counters *aggregate.Aggregator) {
	line, eligible := s.classifier.Prepare(raw)
	if !eligible {
		return
	}
	if !request.Pattern.MatchString(line) {
		return
	}

	counters.RecordHit()
	if request.CountOnly {
		return
	}
	if address, ok := classify.ExtractAddress(line); ok {
		counters.RecordAddress(address)
	}
}

func (s *Service) recordError(result *model.ScanResult, filePath string, kind model.ErrorKind, err error) {
	s.logger.WithFields(logrus.Fields{
		"path": filePath,
		"kind": kind,
	}).Warnf("skipping log file: %v", err)

	result.Errors = append(result.Errors, model.ScanError{
		Path:  filePath,
		Kind:  kind,
		Error: err.Error(),
	})
}

// isDirectory 判断根目录下的条目是否为主机目录，符号链接按目标判断。
func isDirectory(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
