// Package askcmder provides the ask command, which sends one message and
// prints the rendered reply.
package askcmder

import (
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
	"github.com/papercomputeco/streamchat/pkg/logger"
	"github.com/papercomputeco/streamchat/pkg/render"
)

const askLongDesc string = `Send one message and print the reply.

The message is taken from the arguments, or from stdin with --stdin. An empty
message ("") is sent as is.

Output modes:
  html       The rendered HTML of the final reply (default when piped)
  terminal   ANSI-styled markdown (default on a terminal)
  plain      The raw markdown, streamed as it arrives

Examples:
  streamchat ask "What is a merkle tree?"
  streamchat ask --output html "Summarize this" > reply.html
  git diff | streamchat ask --stdin --output plain`

const askShortDesc string = "Send one message and print the reply"

var errNoMessage = errors.New("no message: pass it as an argument or use --stdin")

type askCommander struct {
	flags     session.Flags
	fromStdin bool
	cfg       *config.Config
	configDir string

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask [message...]",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !cmder.fromStdin {
				return errNoMessage
			}
			if len(args) > 0 && cmder.fromStdin {
				return errors.New("pass the message as arguments or with --stdin, not both")
			}

			cfg, err := session.Load(cmd)
			if err != nil {
				return err
			}
			cmder.cfg = cfg
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.in = cmd.InOrStdin()
			cmder.out = cmd.OutOrStdout()
			cmder.errOut = cmd.ErrOrStderr()
			return cmder.run(cmd.Context(), args)
		},
	}

	session.AddFlags(cmd, &cmder.flags)
	cmd.Flags().BoolVar(&cmder.fromStdin, "stdin", false, "Read the message from stdin")

	return cmd
}

func (c *askCommander) run(ctx context.Context, args []string) error {
	message, err := c.message(args)
	if err != nil {
		return err
	}

	mode := session.ResolveOutput(c.cfg.Render.Output, isTerminal(c.out), render.ModeHTML)
	r, err := session.Renderer(mode, c.cfg.Render)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	logFile, err := session.OpenLogFile(c.configDir)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	log := logger.Multi(
		session.ConsoleLogger(c.errOut, "ask", c.cfg.Log),
		session.FileLogger(logFile, "ask", c.cfg.Log.Debug),
	)

	client, err := session.NewClient(c.cfg, r, log)
	if err != nil {
		return err
	}

	var turn *chatclient.Turn
	if mode == render.ModePlain {
		view := chatclient.NewWriter(c.out, message,
			chatclient.WithPrefixes("", ""),
			chatclient.WithoutUserEcho(),
		)
		turn, err = client.Submit(ctx, view)
	} else {
		turn, err = c.submitQuiet(ctx, client, message)
		if err == nil {
			c.print(turn.Rendered)
		}
	}
	if err != nil {
		return err
	}

	for _, msg := range turn.Errors {
		fmt.Fprintf(c.errOut, "  %s server error: %s\n", cliui.FailMark, msg)
	}
	return nil
}

// submitQuiet runs the turn against an in-memory view, showing a spinner on
// stderr while waiting when stderr is a terminal.
func (c *askCommander) submitQuiet(ctx context.Context, client *chatclient.Client, message string) (*chatclient.Turn, error) {
	view := chatclient.NewRecorder(message)

	var turn *chatclient.Turn
	submit := func() error {
		var err error
		turn, err = client.Submit(ctx, view)
		return err
	}

	if isTerminal(c.errOut) {
		err := cliui.Step(c.errOut, "Waiting for "+client.Endpoint(), submit)
		return turn, err
	}
	return turn, submit()
}

func (c *askCommander) message(args []string) (string, error) {
	if !c.fromStdin {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(c.in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (c *askCommander) print(rendered string) {
	if rendered == "" {
		return
	}
	fmt.Fprint(c.out, rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Fprintln(c.out)
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
