// Package streamchatcmder
package streamchatcmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/papercomputeco/streamchat/cmd/streamchat/ask"
	chatcmder "github.com/papercomputeco/streamchat/cmd/streamchat/chat"
	configcmder "github.com/papercomputeco/streamchat/cmd/streamchat/config"
	initcmder "github.com/papercomputeco/streamchat/cmd/streamchat/init"
	versioncmder "github.com/papercomputeco/streamchat/cmd/version"
)

const streamchatLongDesc string = `Streamchat talks to a chat server that streams its replies as
newline-delimited JSON, rendering the markdown as it arrives.

Start a conversation using:
  streamchat chat             Interactive chat session
  streamchat ask <message>    Send one message and print the reply
  streamchat init             Create a local .streamchat/ directory
  streamchat config           Manage persistent configuration`

const streamchatShortDesc string = "Streamchat - streaming chat client"

func NewStreamchatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "streamchat",
		Short:         streamchatShortDesc,
		Long:          streamchatLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .streamchat/ directory")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
