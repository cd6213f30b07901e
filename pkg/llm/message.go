// Package llm holds the provider-neutral chat types shared by the stream
// decoders, the chat client and the terminal views.
package llm

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) String() string {
	return string(r)
}
