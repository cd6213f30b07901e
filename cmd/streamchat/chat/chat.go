// Package chatcmder provides the chat command: an interactive session with a
// chat server that streams its replies as newline-delimited JSON.
package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/streamchat/cmd/streamchat/session"
	"github.com/papercomputeco/streamchat/pkg/chatclient"
	"github.com/papercomputeco/streamchat/pkg/cliui"
	"github.com/papercomputeco/streamchat/pkg/config"
	"github.com/papercomputeco/streamchat/pkg/render"
)

const chatLongDesc string = `Start an interactive chat session.

Every message is sent as GET <endpoint><path>?<param>=<message>. The reply is
read as newline-delimited JSON fragments and the accumulated markdown is
re-rendered as each fragment arrives. The input is cleared once the reply
has finished streaming.

On a terminal the session runs full screen. When stdin is not a terminal,
every input line is sent as one message and replies are streamed to stdout.

Logs are written as JSON to streamchat.log in the .streamchat/ directory
when one exists.

Examples:
  streamchat chat
  streamchat chat --endpoint http://localhost:8000 --format auto
  echo "hello" | streamchat chat --output plain`

const chatShortDesc string = "Interactive streaming chat session"

type chatCommander struct {
	flags     session.Flags
	cfg       *config.Config
	configDir string

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := session.Load(cmd)
			if err != nil {
				return err
			}
			cmder.cfg = cfg
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.in = cmd.InOrStdin()
			cmder.out = cmd.OutOrStdout()
			cmder.errOut = cmd.ErrOrStderr()

			if isTerminal(cmder.in) && isTerminal(cmder.out) {
				return cmder.runInteractive(cmd.Context())
			}
			return cmder.runLines(cmd.Context())
		},
	}

	session.AddFlags(cmd, &cmder.flags)

	return cmd
}

func (c *chatCommander) runInteractive(ctx context.Context) error {
	logFile, err := session.OpenLogFile(c.configDir)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	log := session.FileLogger(logFile, "chat", c.cfg.Log.Debug)

	r, err := session.Renderer(render.ModeTerminal, c.cfg.Render)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	client, err := session.NewClient(c.cfg, r, log)
	if err != nil {
		return err
	}

	log.Info("chat session started", "endpoint", client.Endpoint())
	return runTUI(ctx, client)
}

// runLines sends every non-empty input line as one message. Plain replies
// stream to the output as they arrive; other renderings are printed once the
// reply is complete.
func (c *chatCommander) runLines(ctx context.Context) error {
	mode := session.ResolveOutput(c.cfg.Render.Output, false, render.ModePlain)
	r, err := session.Renderer(mode, c.cfg.Render)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	log := session.ConsoleLogger(c.errOut, "chat", c.cfg.Log)
	client, err := session.NewClient(c.cfg, r, log)
	if err != nil {
		return err
	}

	opts := []chatclient.WriterOption{chatclient.WithPrefixes(cliui.UserPrompt, cliui.ReplyPrompt)}
	if mode != render.ModePlain {
		opts = append(opts, chatclient.WithFinalRendering())
	}
	view := chatclient.NewWriter(c.out, "", opts...)

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sent, failed int
	for scanner.Scan() {
		input := scanner.Text()
		if strings.TrimSpace(input) == "" {
			continue
		}
		if strings.TrimSpace(input) == "/exit" {
			break
		}

		sent++
		view.SetInput(input)
		turn, err := client.Submit(ctx, view)
		if err != nil {
			failed++
			fmt.Fprintf(c.errOut, "  %s %v\n", cliui.FailMark, err)
			if errors.Is(err, context.Canceled) {
				return err
			}
			continue
		}
		for _, msg := range turn.Errors {
			fmt.Fprintf(c.errOut, "  %s server error: %s\n", cliui.FailMark, msg)
		}
		log.Debug("turn finished", "turn_id", turn.ID, "duration", cliui.FormatDuration(turn.Duration))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d messages failed", failed, sent)
	}
	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
