package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/streamchat/pkg/cliui"
	"github.com/papercomputeco/streamchat/pkg/config"
)

const listLongDesc string = `List all configuration values.

Prints every key with its effective file value. Keys still at their
built-in default are marked (default).

Examples:
  streamchat config list`

const listShortDesc string = "List all configuration values"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfger, err := openConfig(cmd, "")
			if err != nil {
				return err
			}

			keys := config.ValidConfigKeys()
			width := 0
			for _, k := range keys {
				width = max(width, len(k))
			}

			out := cmd.OutOrStdout()
			for _, key := range keys {
				value, err := cfger.GetConfigValue(key)
				if err != nil {
					return err
				}
				def, err := config.DefaultValue(key)
				if err != nil {
					return err
				}

				line := fmt.Sprintf("  %-*s = %q", width, key, value)
				if value == def {
					line += " " + cliui.DimStyle.Render("(default)")
				}
				fmt.Fprintln(out, line)
			}

			return nil
		},
	}
}
