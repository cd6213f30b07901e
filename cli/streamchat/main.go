package main

import (
	"os"

	streamchatcmder "github.com/papercomputeco/streamchat/cmd/streamchat"
)

func main() {
	cmd := streamchatcmder.NewStreamchatCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
