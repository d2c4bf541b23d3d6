package adapter

import "github.com/hpn/freetier-router/internal/domain"

// OpenRouter speaks the OpenAI chat completion format. Only the fields this
// adapter reads or writes are modelled.

// chatRequest is the body POSTed to /chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        *float64      `json:"top_p,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

// chatMessage is a single conversation message.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the success body returned by OpenRouter.
type chatResponse struct {
	ID      string        `json:"id"`
	Model   string        `json:"model"`
	Choices []chatChoice  `json:"choices"`
	Usage   *domain.Usage `json:"usage,omitempty"`
}

// chatChoice is one completion choice.
type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"`
}

// chatResponseMessage is the assistant message inside a choice.
// ThinkingContent is only populated by reasoning-style models; any
// non-string value is ignored.
type chatResponseMessage struct {
	Role            string `json:"role"`
	Content         string `json:"content"`
	ThinkingContent any    `json:"thinking_content,omitempty"`
}

// thinking returns the reasoning trace when the vendor sent one as a string.
func (m chatResponseMessage) thinking() string {
	s, _ := m.ThinkingContent.(string)
	return s
}
