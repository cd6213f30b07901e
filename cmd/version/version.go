// Package versioncmder provides the version command.
package versioncmder

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/streamchat/pkg/cliui"
	"github.com/papercomputeco/streamchat/pkg/utils"
)

type versionCommander struct {
	short bool
}

func NewVersionCmd() *cobra.Command {
	cmder := &versionCommander{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Long:  "Print the streamchat version, commit and build time stamped in at release.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if cmder.short {
				fmt.Fprintln(out, utils.Version)
				return nil
			}

			rows := [][2]string{
				{"Version:", utils.Version},
				{"Sha:", utils.Sha},
				{"Built at:", utils.Buildtime},
				{"Go:", runtime.Version()},
				{"Platform:", runtime.GOOS + "/" + runtime.GOARCH},
			}
			label := cliui.KeyStyle.Width(10)
			for _, row := range rows {
				fmt.Fprintf(out, "%s%s\n", label.Render(row[0]), row[1])
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&cmder.short, "short", "s", false, "Print only the version")

	return cmd
}
