package domain

// Chat roles
const (
	ChatRoleSystem = "system"
	ChatRoleUser   = "user"
)

// ChatMessage is one message of a chat-completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a provider-neutral chat-completion request
type ChatRequest struct {
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// System returns the content of the first system message
func (r ChatRequest) System() string {
	for _, m := range r.Messages {
		if m.Role == ChatRoleSystem {
			return m.Content
		}
	}
	return ""
}
