// Package config 读取环境变量中的默认设置，命令行参数可再覆盖这些值。
package config

import (
	"os"
	"strconv"
	"strings"

	"logsearch/internal/classify"
	"logsearch/internal/pathfilter"
	"logsearch/internal/report"

	"github.com/joho/godotenv"
)

// 环境变量名称。
const (
	EnvProfile     = "LOGSEARCH_PROFILE"
	EnvProfileFile = "LOGSEARCH_PROFILE_FILE"
	EnvLogPrefix   = "LOGSEARCH_LOG_PREFIX"
	EnvTopN        = "LOGSEARCH_TOP_N"
	EnvLogLevel    = "LOGSEARCH_LOG_LEVEL"
)

type Config struct {
	// EnvFile 是实际加载的 .env 路径，未加载时为空。
	EnvFile     string
	Profile     string
	ProfileFile string
	LogPrefix   string
	TopN        int
	LogLevel    string
}

// Load 先尝试加载当前目录的 .env（可选），再读取环境变量。
func Load() *Config {
	envFile := ""
	if err := godotenv.Load(); err == nil {
		envFile = ".env"
	}

	return &Config{
		EnvFile:     envFile,
		Profile:     getenv(EnvProfile, classify.DefaultProfile),
		ProfileFile: getenv(EnvProfileFile, ""),
		LogPrefix:   getenv(EnvLogPrefix, pathfilter.DefaultPrefix),
		TopN:        getenvInt(EnvTopN, report.DefaultLimit),
		LogLevel:    strings.ToLower(getenv(EnvLogLevel, "info")),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return def
}
