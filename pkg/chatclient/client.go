// Package chatclient submits a message to a streaming chat endpoint and
// renders the reply into a View as it arrives.
//
// Each Submit owns one user node, one assistant node and one accumulator.
// Every fragment that carries content is appended to the accumulator and the
// whole accumulator is rendered again, so the assistant node always shows
// the rendering of everything received so far.
package chatclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/streamchat/pkg/llm"
	"github.com/papercomputeco/streamchat/pkg/llm/provider"
	"github.com/papercomputeco/streamchat/pkg/logger"
	"github.com/papercomputeco/streamchat/pkg/ndjson"
	"github.com/papercomputeco/streamchat/pkg/render"
	"github.com/papercomputeco/streamchat/pkg/utils"
)

// maxErrorBody bounds how much of a failed response is kept on a StatusError.
const maxErrorBody = 512

// Client is a StreamingChatClient. It holds no per-turn state and may be
// used from multiple goroutines.
type Client struct {
	cfg      Config
	chatURL  *url.URL
	http     *http.Client
	renderer render.Renderer
	provider provider.Provider
	logger   *slog.Logger
}

// New creates a Client for the endpoint described by cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()

	chatURL, err := cfg.chatURL()
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		chatURL: chatURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil {
		c.provider, err = provider.New(cfg.Format)
		if err != nil {
			return nil, err
		}
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	if c.renderer == nil {
		c.renderer = render.NewHTML()
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}

	return c, nil
}

// Endpoint returns the URL messages are sent to, without a query.
func (c *Client) Endpoint() string {
	return c.chatURL.String()
}

// RequestURL returns the full GET URL for message.
func (c *Client) RequestURL(message string) string {
	u := *c.chatURL
	q := url.Values{}
	q.Set(c.cfg.Param, message)
	u.RawQuery = q.Encode()
	return u.String()
}

// Submit runs one chat turn: it reads the message from view, appends the
// user and assistant nodes, streams the reply into the assistant node and
// clears the input once the stream has ended.
//
// A *TransportError or *StatusError leaves the input as it was. The returned
// Turn is non-nil even on error and describes how far the turn got.
func (c *Client) Submit(ctx context.Context, view View) (*Turn, error) {
	start := time.Now()
	message := view.Input()

	turn := &Turn{
		ID:      uuid.NewString(),
		Message: message,
	}
	log := c.logger.With("turn_id", turn.ID)

	userNode, err := view.Append(llm.RoleUser)
	if err != nil {
		return turn, fmt.Errorf("appending user message: %w", err)
	}
	userNode.SetContent(message)

	replyNode, err := view.Append(llm.RoleAssistant)
	if err != nil {
		return turn, fmt.Errorf("appending assistant message: %w", err)
	}
	replyNode.SetContent("")

	reqURL := c.RequestURL(message)
	log.Debug("sending chat request",
		"endpoint", c.Endpoint(),
		"message_len", len(message),
	)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		log.Error("chat request failed", "error", err)
		return turn, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			URL:        c.Endpoint(),
			Body:       utils.Truncate(strings.TrimSpace(string(body)), maxErrorBody/2),
		}
		log.Error("chat endpoint rejected request", "status", resp.StatusCode)
		return turn, statusErr
	}

	reader := ndjson.NewReader(resp.Body)
	if err := c.stream(reader, replyNode, turn, log); err != nil {
		turn.Duration = time.Since(start)
		log.Error("reading reply failed",
			"error", err,
			"fragments", turn.Fragments,
			"bytes", reader.Bytes(),
		)
		return turn, err
	}

	view.ClearInput()
	turn.Duration = time.Since(start)

	if n := reader.Buffered(); n > 0 {
		log.Debug("dropped partial fragment at end of stream", "bytes", n)
	}
	log.Debug("reply complete",
		"fragments", turn.Fragments,
		"applied", turn.Applied,
		"chunks", reader.Chunks(),
		"bytes", reader.Bytes(),
		"duration", turn.Duration,
	)

	return turn, nil
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", URL: c.Endpoint(), Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "send request", URL: c.Endpoint(), Err: err}
	}
	return resp, nil
}

// stream drains reader into node until the body ends.
func (c *Client) stream(reader *ndjson.Reader, node Node, turn *Turn, log *slog.Logger) error {
	var acc strings.Builder

	for {
		value, err := reader.Next()
		if err != nil {
			if errors.Is(err, ndjson.ErrMalformed) {
				turn.Malformed++
				log.Debug("skipping malformed fragment", "error", err)
				continue
			}
			return &TransportError{Op: "read reply", URL: c.Endpoint(), Err: err}
		}
		if value == nil {
			return nil
		}
		turn.Fragments++

		chunk, err := c.provider.ParseStreamChunk(value)
		if err != nil {
			turn.Malformed++
			log.Debug("failed to parse stream chunk",
				"error", err,
				"fragment", utils.Truncate(string(value), 120),
			)
			continue
		}
		if chunk == nil {
			turn.Skipped++
			continue
		}

		if chunk.Model != "" {
			turn.Model = chunk.Model
		}
		if chunk.FinishReason != "" {
			turn.FinishReason = chunk.FinishReason
		}
		if chunk.Error != "" {
			turn.Errors = append(turn.Errors, chunk.Error)
			log.Warn("chat endpoint reported an error", "error", chunk.Error)
			continue
		}
		if !chunk.HasContent() {
			turn.Skipped++
			continue
		}

		acc.WriteString(chunk.Content)
		content := acc.String()

		rendered, err := c.renderer.Render(content)
		if err != nil {
			return fmt.Errorf("rendering reply: %w", err)
		}

		node.SetContent(rendered)
		node.ScrollIntoView()

		turn.Applied++
		turn.Content = content
		turn.Rendered = rendered
	}
}
