// Package testutils provides shared fakes for streamchat tests.
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
)

// ChatPath is the route the fake chat endpoint serves.
const ChatPath = "/chat"

type reply struct {
	status int
	body   string
}

// ChatServer is a fake chat endpoint. Every GET /chat records the received
// message and answers with the next scripted reply; once the script runs
// out it answers 200 with an empty body.
type ChatServer struct {
	*httptest.Server

	mu       sync.Mutex
	messages []string
	queries  []string
	replies  []reply
}

// NewChatServer starts a fake chat endpoint on a loopback port. Call Close
// when done.
func NewChatServer() *ChatServer {
	s := &ChatServer{}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
	})
	app.Get(ChatPath, s.handleChat)

	s.Server = httptest.NewServer(adaptor.FiberApp(app))
	return s
}

// Reply queues a 200 response whose body is the concatenation of chunks.
func (s *ChatServer) Reply(chunks ...string) {
	s.ReplyStatus(fiber.StatusOK, chunks...)
}

// ReplyStatus queues a response with the given status code.
func (s *ChatServer) ReplyStatus(status int, chunks ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply{status: status, body: strings.Join(chunks, "")})
}

// Messages returns the decoded message parameter of every request, in order.
func (s *ChatServer) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

// RawQueries returns the undecoded query string of every request, in order.
func (s *ChatServer) RawQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func (s *ChatServer) handleChat(c *fiber.Ctx) error {
	s.mu.Lock()
	s.messages = append(s.messages, c.Query("message"))
	s.queries = append(s.queries, string(c.Request().URI().QueryString()))

	next := reply{status: fiber.StatusOK}
	if len(s.replies) > 0 {
		next = s.replies[0]
		s.replies = s.replies[1:]
	}
	s.mu.Unlock()

	c.Set(fiber.HeaderContentType, "application/x-ndjson")
	return c.Status(next.status).SendString(next.body)
}

// Fragment builds one OpenAI-style delta line carrying content.
func Fragment(content string) string {
	quoted, _ := json.Marshal(content)
	return `{"choices":[{"delta":{"content":` + string(quoted) + `}}]}` + "\n"
}
