package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"logsearch/internal/classify"

	"github.com/spf13/cobra"
)

// newProfilesCmd 创建 profiles 子命令。
// 命令用于展示当前可用的过滤配置以及被排除的资源后缀。
func newProfilesCmd(registry *classify.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "展示可用过滤配置",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "PROFILE\tEXCLUDED\tDECODE\tTHRESHOLD/DAY"); err != nil {
				return err
			}

			for _, item := range registry.Profiles() {
				if _, err := fmt.Fprintf(
					writer,
					"%s\t%s\t%t\t%d\n",
					item.Name,
					strings.Join(item.ExcludedExtensions, ", "),
					item.Decode,
					item.ThresholdPerDay,
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
