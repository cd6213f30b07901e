// Package session resolves configuration, renderers, loggers and chat clients
// for the streamchat commands.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/streamchat/pkg/chatclient"
	"github.com/papercomputeco/streamchat/pkg/config"
	"github.com/papercomputeco/streamchat/pkg/dotdir"
	"github.com/papercomputeco/streamchat/pkg/logger"
	"github.com/papercomputeco/streamchat/pkg/render"
)

// LogFile is the chat log written inside the .streamchat/ directory.
const LogFile = "streamchat.log"

// Flags holds the values of the client flags registered by AddFlags.
type Flags struct {
	Endpoint string
	Path     string
	Param    string
	Format   string
	Timeout  time.Duration
	Output   string
	Style    string
	Width    uint
	Sanitize bool
	GFM      bool
	LogJSON  bool
}

var flagKeys = []string{
	config.FlagEndpoint,
	config.FlagPath,
	config.FlagParam,
	config.FlagFormat,
	config.FlagTimeout,
	config.FlagOutput,
	config.FlagStyle,
	config.FlagWidth,
	config.FlagSanitize,
	config.FlagGFM,
	config.FlagLogJSON,
}

// AddFlags registers the client flags on cmd.
func AddFlags(cmd *cobra.Command, f *Flags) {
	config.AddStringFlag(cmd, config.ClientFlags, config.FlagEndpoint, &f.Endpoint)
	config.AddStringFlag(cmd, config.ClientFlags, config.FlagPath, &f.Path)
	config.AddStringFlag(cmd, config.ClientFlags, config.FlagParam, &f.Param)
	config.AddStringFlag(cmd, config.ClientFlags, config.FlagFormat, &f.Format)
	config.AddDurationFlag(cmd, config.ClientFlags, config.FlagTimeout, &f.Timeout)
	config.AddStringFlag(cmd, config.ClientFlags, config.FlagOutput, &f.Output)
	config.AddStringFlag(cmd, config.ClientFlags, config.FlagStyle, &f.Style)
	config.AddUintFlag(cmd, config.ClientFlags, config.FlagWidth, &f.Width)
	config.AddBoolFlag(cmd, config.ClientFlags, config.FlagSanitize, &f.Sanitize)
	config.AddBoolFlag(cmd, config.ClientFlags, config.FlagGFM, &f.GFM)
	config.AddBoolFlag(cmd, config.ClientFlags, config.FlagLogJSON, &f.LogJSON)
}

// Load resolves the configuration for cmd with flag > env > file > default
// precedence. The persistent --debug flag forces debug logging on.
func Load(cmd *cobra.Command) (*config.Config, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	config.BindRegisteredFlags(v, cmd, config.ClientFlags, flagKeys)

	cfg := config.FromViper(v)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Debug = true
	}

	return cfg, nil
}

// ResolveOutput maps the "auto" output mode to terminal when writing to a
// terminal and to fallback otherwise.
func ResolveOutput(output string, tty bool, fallback string) string {
	if output != config.OutputAuto && output != "" {
		return output
	}
	if tty {
		return render.ModeTerminal
	}
	return fallback
}

// Renderer builds the renderer for an already resolved output mode.
func Renderer(mode string, rc config.RenderConfig) (render.Renderer, error) {
	return render.New(mode, render.Options{
		Style:    rc.Style,
		Width:    int(rc.Width),
		GFM:      rc.GFM,
		Sanitize: rc.Sanitize,
	})
}

// NewClient builds a chat client from the [client] section.
func NewClient(cfg *config.Config, r render.Renderer, log *slog.Logger) (*chatclient.Client, error) {
	clientCfg, err := chatclient.FromConfig(cfg.Client)
	if err != nil {
		return nil, err
	}

	return chatclient.New(clientCfg,
		chatclient.WithRenderer(r),
		chatclient.WithLogger(log),
	)
}

// OpenLogFile opens the chat log inside the resolved .streamchat/ directory
// for appending. It returns a nil file when no directory exists.
func OpenLogFile(configDir string) (*os.File, error) {
	path, err := dotdir.NewManager().File(configDir, LogFile)
	if err != nil || path == "" {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// FileLogger returns a JSON logger writing to f, or a no-op logger when f is
// nil.
func FileLogger(f *os.File, component string, debug bool) *slog.Logger {
	if f == nil {
		return logger.Nop()
	}
	return logger.New(
		logger.WithWriter(f),
		logger.WithComponent(component),
		logger.WithJSON(true),
		logger.WithDebug(debug),
	)
}

// ConsoleLogger returns the stderr logger: pretty unless log.json is set.
func ConsoleLogger(w io.Writer, component string, cfg config.LogConfig) *slog.Logger {
	return logger.New(
		logger.WithWriter(w),
		logger.WithComponent(component),
		logger.WithPretty(!cfg.JSON),
		logger.WithJSON(cfg.JSON),
		logger.WithDebug(cfg.Debug),
	)
}
