package chat

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single chat message in the conversation sent to the LLM.
// The shape follows the OpenAI-compatible chat completions API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// User wraps a prompt in a single user message, which is how every
// engine prompt is delivered to the model.
func User(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}
