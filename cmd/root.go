// Package cmd 提供 logsearch 的命令行入口与子命令编排。
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"logsearch/internal/classify"
	"logsearch/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootOptions 存放根命令及子命令共享的可配置参数。
type rootOptions struct {
	profile     string
	profileFile string
	prefix      string
	top         int
	format      string
	logLevel    string
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	cfg := config.Load()
	registry := classify.NewRegistry()
	rootCmd := newRootCmd(version, cfg, registry, logrus.New())
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身执行日志检索：
//
//	logsearch 20240101 20240108 'GET /api' /var/log/web
//	logsearch 20240101 20240108 'GET /api' /var/log/web true --format json
func newRootCmd(version string, cfg *config.Config, registry *classify.Registry, logger *logrus.Logger) *cobra.Command {
	options := rootOptions{
		profile:     cfg.Profile,
		profileFile: cfg.ProfileFile,
		prefix:      cfg.LogPrefix,
		top:         cfg.TopN,
		format:      "text",
		logLevel:    cfg.LogLevel,
	}

	rootCmd := &cobra.Command{
		Use:   "logsearch DATE_FROM DATE_TO PATTERN LOG_DIR [COUNT_ONLY]",
		Short: "按日期范围检索访问日志并统计请求地址",
		Long: "logsearch 扫描 LOG_DIR 下每个主机目录中修改时间位于 (DATE_FROM, DATE_TO) 内的 access_ 日志，\n" +
			"统计匹配 PATTERN 的行数，并按请求次数列出排名靠前的客户端地址。\n" +
			"日期格式为 YYYYMMDD（UTC），COUNT_ONLY 为 true 时只输出总命中数。",
		Args:          usageArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := configureLogger(logger, cmd, options.logLevel); err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"env_file":     cfg.EnvFile,
				"profile":      options.profile,
				"profile_file": options.profileFile,
				"prefix":       options.prefix,
				"top":          options.top,
			}).Debug("effective configuration")
			return loadProfileFile(registry, options.profileFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, options, registry, logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&options.profileFile, "profile-file", options.profileFile, "额外过滤配置文件 (.yaml/.yml/.json)")
	rootCmd.PersistentFlags().StringVar(&options.logLevel, "log-level", options.logLevel, "诊断日志级别: debug, info, warn, error")
	rootCmd.Flags().StringVar(&options.profile, "profile", options.profile, "过滤配置名称，见 profiles 子命令")
	rootCmd.Flags().StringVar(&options.prefix, "prefix", options.prefix, "日志文件名前缀")
	rootCmd.Flags().IntVar(&options.top, "top", options.top, "地址排名最多展示条数")
	rootCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: text 或 json")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newProfilesCmd(registry))

	return rootCmd
}

// usageArgs 校验位置参数个数，错误信息给出完整用法。
func usageArgs(_ *cobra.Command, args []string) error {
	if len(args) < 4 || len(args) > 5 {
		return fmt.Errorf("required usage parameters: DATE_FROM DATE_TO PATTERN LOG_DIR [COUNT_ONLY], received %d argument(s)", len(args))
	}
	return nil
}

// configureLogger 把诊断日志写到 stderr，与 stdout 上的报告分开。
func configureLogger(logger *logrus.Logger, cmd *cobra.Command, level string) error {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(parsed)
	return nil
}

func loadProfileFile(registry *classify.Registry, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := registry.LoadFile(path); err != nil {
		return fmt.Errorf("load profile file: %w", err)
	}
	return nil
}

// errUnsupportedFormat 在 --format 取值非法时返回。
var errUnsupportedFormat = errors.New("unsupported format, allowed values: text, json")
