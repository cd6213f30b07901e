package config

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --endpoint
// on both "streamchat chat" and "streamchat ask").
type Flag struct {
	// Name is the long flag name (e.g. "endpoint").
	Name string

	// Shorthand is the one-letter short flag (e.g. "e"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "client.endpoint").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling the Add*Flag helpers and
// BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagEndpoint = "endpoint"
	FlagPath     = "path"
	FlagParam    = "param"
	FlagFormat   = "format"
	FlagTimeout  = "timeout"
	FlagOutput   = "output"
	FlagStyle    = "style"
	FlagWidth    = "width"
	FlagSanitize = "sanitize"
	FlagGFM      = "gfm"
	FlagLogJSON  = "log-json"
)

// ClientFlags are the flags every command that talks to the chat endpoint
// registers.
var ClientFlags = FlagSet{
	FlagEndpoint: {Name: "endpoint", Shorthand: "e", ViperKey: "client.endpoint", Description: "Chat server base URL"},
	FlagPath:     {Name: "path", ViperKey: "client.path", Description: "Chat endpoint path"},
	FlagParam:    {Name: "param", ViperKey: "client.param", Description: "Query parameter carrying the message"},
	FlagFormat:   {Name: "format", Shorthand: "f", ViperKey: "client.format", Description: "Stream format (openai, ollama, besteffort, auto)"},
	FlagTimeout:  {Name: "timeout", ViperKey: "client.timeout", Description: "Request timeout including the streamed reply (0 for none)"},
	FlagOutput:   {Name: "output", Shorthand: "o", ViperKey: "render.output", Description: "Reply rendering (auto, html, terminal, plain)"},
	FlagStyle:    {Name: "style", ViperKey: "render.style", Description: "Terminal markdown style (auto, dark, light, notty, or a JSON path)"},
	FlagWidth:    {Name: "width", ViperKey: "render.width", Description: "Terminal word wrap width"},
	FlagSanitize: {Name: "sanitize", ViperKey: "render.sanitize", Description: "Sanitize HTML output"},
	FlagGFM:      {Name: "gfm", ViperKey: "render.gfm", Description: "Enable GitHub Flavored Markdown in HTML output"},
	FlagLogJSON:  {Name: "log-json", ViperKey: "log.json", Description: "Write logs as JSON"},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaults().GetUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaults().GetBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddDurationFlag registers a duration flag on cmd from the given FlagSet.
func AddDurationFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *time.Duration) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaults().GetDuration(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().DurationVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().DurationVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaults returns a viper holding only the values from NewDefaultConfig.
func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}
