package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/streamchat/pkg/cliui"
)

const setLongDesc string = `Set a configuration value.

Writes key = value into config.toml. Values are checked before saving:
client.endpoint must be an http(s) URL, client.format one of openai, ollama,
besteffort or auto, render.output one of auto, html, terminal or plain, and
client.timeout a duration. Run "streamchat init" first, or pass --config-dir.

Examples:
  streamchat config set client.endpoint http://localhost:8000
  streamchat config set client.timeout 90s
  streamchat config set render.width 100`

const setShortDesc string = "Set a configuration value"

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             setShortDesc,
		Long:              setLongDesc,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			cfger, err := openConfig(cmd, key)
			if err != nil {
				return err
			}

			if err := cfger.SetConfigValue(key, value); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s Set %s = %s\n\n",
				cliui.SuccessMark, cliui.KeyStyle.Render(key), formatValue(value))
			return nil
		},
	}
}
