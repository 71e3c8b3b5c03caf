package openai

import (
	"bytes"
	"encoding/json"
)

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatQuery is the body of /v1/chat/completions.
type ChatQuery struct {
	Model            string          `json:"model"`
	Messages         []ChatMessage   `json:"messages"`
	Tools            []ChatTool      `json:"tools,omitempty"`
	ToolChoice       *ToolChoice     `json:"tool_choice,omitempty"`
	Temperature      *float64        `json:"temperature,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	N                *int            `json:"n,omitempty"`
	Stop             []string        `json:"stop,omitempty"`
	MaxTokens        *int            `json:"max_tokens,omitempty"`
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]int  `json:"logit_bias,omitempty"`
	Seed             *int            `json:"seed,omitempty"`
	ResponseFormat   *ResponseFormat `json:"response_format,omitempty"`
	User             string          `json:"user,omitempty"`
	Stream           bool            `json:"stream,omitempty"`
}

// Streamable returns a copy of q with streaming enabled. q is not modified.
func (q ChatQuery) Streamable() ChatQuery {
	q.Stream = true
	return q
}

// ChatMessage is one message of a conversation.
type ChatMessage struct {
	Role       string         `json:"role"`
	Content    ChatContent    `json:"content"`
	Name       string         `json:"name,omitempty"`
	ToolCalls  []ChatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// NewChatMessage returns a text message for role.
func NewChatMessage(role, text string) ChatMessage {
	return ChatMessage{Role: role, Content: ChatContent{Text: text}}
}

// ChatContent is either plain text or a list of parts.
type ChatContent struct {
	Text  string
	Parts []ChatContentPart
}

// MarshalJSON emits the parts when set, the text otherwise, and null when both are empty.
func (c ChatContent) MarshalJSON() ([]byte, error) {
	if len(c.Parts) > 0 {
		return json.Marshal(c.Parts)
	}
	if c.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts a string, a list of parts, or null.
func (c *ChatContent) UnmarshalJSON(data []byte) error {
	*c = ChatContent{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		return nil
	}
	return json.Unmarshal(data, &c.Parts)
}

// String returns the text, or the concatenated text parts.
func (c ChatContent) String() string {
	if len(c.Parts) == 0 {
		return c.Text
	}
	var b bytes.Buffer
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// ChatContentPart is a text or image part of a message.
type ChatContentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL references an image by URL or data URI.
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// ChatTool declares a function the model may call.
type ChatTool struct {
	Type     string       `json:"type"`
	Function ChatFunction `json:"function"`
}

// ChatFunction describes a callable function. Parameters is a JSON schema.
type ChatFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToolChoice is "none", "auto", "required", or a specific function.
type ToolChoice struct {
	Mode     string
	Function string
}

// MarshalJSON emits the mode string, or the object form naming a function.
func (t ToolChoice) MarshalJSON() ([]byte, error) {
	if t.Function == "" {
		return json.Marshal(t.Mode)
	}
	return json.Marshal(map[string]any{
		"type":     "function",
		"function": map[string]string{"name": t.Function},
	})
}

// UnmarshalJSON accepts both forms.
func (t *ToolChoice) UnmarshalJSON(data []byte) error {
	*t = ToolChoice{}
	if err := json.Unmarshal(data, &t.Mode); err == nil {
		return nil
	}
	var obj struct {
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Function = obj.Function.Name
	return nil
}

// ResponseFormat selects "text" or "json_object" output.
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatToolCall is a function call requested by the model. In stream deltas
// Index identifies which call a fragment belongs to.
type ChatToolCall struct {
	Index    *int             `json:"index,omitempty"`
	ID       string           `json:"id,omitempty"`
	Type     string           `json:"type,omitempty"`
	Function ChatFunctionCall `json:"function"`
}

// ChatFunctionCall carries the function name and its JSON arguments.
type ChatFunctionCall struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments"`
}

// ChatResult is returned by /v1/chat/completions.
type ChatResult struct {
	ID                string       `json:"id"`
	Object            string       `json:"object"`
	Created           int64        `json:"created"`
	Model             string       `json:"model"`
	Choices           []ChatChoice `json:"choices"`
	Usage             *Usage       `json:"usage,omitempty"`
	SystemFingerprint string       `json:"system_fingerprint,omitempty"`
}

// ChatChoice is one generated message.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// ChatStreamResult is one frame of a streamed chat completion.
type ChatStreamResult struct {
	ID                string             `json:"id"`
	Object            string             `json:"object"`
	Created           int64              `json:"created"`
	Model             string             `json:"model"`
	Choices           []ChatStreamChoice `json:"choices"`
	Usage             *Usage             `json:"usage,omitempty"`
	SystemFingerprint string             `json:"system_fingerprint,omitempty"`
}

// ChatStreamChoice carries the delta for one choice.
type ChatStreamChoice struct {
	Index        int       `json:"index"`
	Delta        ChatDelta `json:"delta"`
	FinishReason *string   `json:"finish_reason"`
}

// ChatDelta is the incremental part of a message.
type ChatDelta struct {
	Role      string         `json:"role,omitempty"`
	Content   *string        `json:"content,omitempty"`
	ToolCalls []ChatToolCall `json:"tool_calls,omitempty"`
}

// Text returns the delta content of the first choice, or "".
func (r ChatStreamResult) Text() string {
	if len(r.Choices) == 0 || r.Choices[0].Delta.Content == nil {
		return ""
	}
	return *r.Choices[0].Delta.Content
}
