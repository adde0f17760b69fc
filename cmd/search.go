package cmd

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"logsearch/internal/classify"
	"logsearch/internal/daterange"
	"logsearch/internal/model"
	"logsearch/internal/report"
	"logsearch/internal/scanner"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runSearch 校验参数、执行扫描并输出结果。
// 所有参数错误都在扫描开始前返回。
func runSearch(cmd *cobra.Command, args []string, options rootOptions, registry *classify.Registry, logger *logrus.Logger) error {
	format := strings.ToLower(strings.TrimSpace(options.format))
	if format != "text" && format != "json" {
		return errUnsupportedFormat
	}
	if options.top <= 0 {
		return errors.New("top must be greater than 0")
	}

	window, err := daterange.NewWindow(args[0], args[1])
	if err != nil {
		return err
	}

	pattern, err := regexp.Compile(args[2])
	if err != nil {
		return fmt.Errorf("compile pattern: %w", err)
	}

	logDir := args[3]
	if _, err := os.Stat(logDir); err != nil {
		return fmt.Errorf("log directory does not exist %s: %w", logDir, err)
	}

	countOnly := false
	if len(args) == 5 {
		countOnly, err = strconv.ParseBool(strings.TrimSpace(args[4]))
		if err != nil {
			return fmt.Errorf("COUNT_ONLY must be true or false, got %q", args[4])
		}
	}

	profile, ok := registry.Lookup(options.profile)
	if !ok {
		return fmt.Errorf("unknown profile %q", options.profile)
	}
	classifier, err := classify.NewClassifier(profile)
	if err != nil {
		return fmt.Errorf("build classifier: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == "text" {
		if err := report.PrintBanner(out, report.Banner{
			Pattern:   args[2],
			DateFrom:  args[0],
			DateTo:    args[1],
			LogDir:    logDir,
			CountOnly: countOnly,
		}); err != nil {
			return err
		}
	}

	service := scanner.NewService(classifier, options.prefix, logger)
	result, err := service.Scan(model.ScanRequest{
		Root:      logDir,
		Pattern:   pattern,
		Window:    window,
		CountOnly: countOnly,
	})
	if err != nil {
		return err
	}

	summary := report.NewSummary(result, report.Options{
		Days:            window.Days(),
		ThresholdPerDay: profile.ThresholdPerDay,
		Limit:           options.top,
		CountOnly:       countOnly,
	})

	switch format {
	case "json":
		return report.PrintJSON(out, summary)
	default:
		return report.PrintText(out, summary)
	}
}
