// Package cliui provides the shared styles, prompts and the step spinner
// used by streamchat's line-oriented commands.
package cliui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	userStyle   = accentStyle.Bold(true)
	replyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true)
)

// Prompts printed before each message in line-oriented output. They use the
// label colors of the chat TUI.
var (
	UserPrompt  = userStyle.Render("you> ")
	ReplyPrompt = replyStyle.Render("assistant> ")
)

// Step shows a spinner next to msg while fn runs, then replaces it with a
// mark for fn's result and the elapsed time. fn's error is returned.
func Step(w io.Writer, msg string, fn func() error) error {
	frames := spinner.Dot
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(frames.FPS)
		defer ticker.Stop()

		for i := 0; ; i++ {
			fmt.Fprintf(w, "\r  %s %s", accentStyle.Render(frames.Frames[i%len(frames.Frames)]), msg)

			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	close(done)
	<-stopped

	fmt.Fprintf(w, "\r  %s %s %s\n", Mark(err), msg, DimStyle.Render("("+FormatDuration(elapsed)+")"))

	return err
}

// Mark returns the success mark for a nil error and the fail mark otherwise.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
