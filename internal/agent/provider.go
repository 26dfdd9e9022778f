package agent

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the language model behind the agent. Both calls return the
// model's raw text; the agent owns parsing.
type Provider interface {
	// Decide asks for a reply plus at most one action for the last message.
	Decide(ctx context.Context, conversation []Message) (string, error)
	// Finalize asks for the final reply given the result of action.
	Finalize(ctx context.Context, conversation []Message, action Action, toolResult []byte) (string, error)
}
