package domain

import "math"

// ChatRole is the author of a chat message
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one element of the completion "messages" array
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatContext carries what the frontend knows about where the user is
type ChatContext struct {
	Route         string   `json:"route,omitempty"`
	IndicatorName string   `json:"indicator_name,omitempty"`
	Category      Category `json:"drg_short_code,omitempty"`
	ExtraContext  string   `json:"extra_context,omitempty"`
	AskedFollowup bool     `json:"asked_followup,omitempty"`
	SessionID     string   `json:"session_id,omitempty"`
}

// ChatRequest is a single chat turn submitted by the widget
type ChatRequest struct {
	Messages     []ChatMessage `json:"messages"`
	Context      ChatContext   `json:"context"`
	MaxTokens    int           `json:"max_tokens,omitempty"`
	Temperature  *float64      `json:"temperature,omitempty"`
	Model        string        `json:"model,omitempty"`
	SystemPrompt string        `json:"system_prompt,omitempty"`
}

// ChatResponse is returned to the widget
type ChatResponse struct {
	Reply    string   `json:"reply"`
	Category Category `json:"detected_drg,omitempty"`
}

// CompletionRequest is what gets handed to the completion provider
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// FallbackReply is sent whenever no usable completion is available
const FallbackReply = "Thanks for sharing. Could you add one concrete example or suggestion?"

// DefaultPersona is the assistant persona and policy used when none is configured
const DefaultPersona = "You are a friendly, concise assistant for the Digital Responsibility Index website. " +
	"Note: 'DRG' always means Digital Responsibility Goal (not group). " +
	"Your job is to: (1) help users provide actionable feedback on the evaluation, and (2) answer questions about the website, the evaluation flow, indicators/DRGs (including brief overviews of any DRG 1-7), and Identity Valley. " +
	"Stay within those topics; if something is clearly out of scope, gently say so. " +
	"Ask at most one short clarifying question, and only when needed to help. " +
	"Keep answers brief (1-3 sentences), warm in tone, and avoid links."

// Request bounds for completion parameters
const (
	MinChatMaxTokens      = 32
	MaxChatMaxTokens      = 512
	MaxSystemPromptLength = 2000
)

// ChatSettings holds the default completion parameters
type ChatSettings struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultChatSettings returns the defaults used when the environment is silent
func DefaultChatSettings() ChatSettings {
	return ChatSettings{
		Model:       "gpt-4o-mini",
		Temperature: 0.2,
		MaxTokens:   256,
	}
}

// Clamp applies per-request overrides within the allowed bounds.
// Zero values fall back to the configured defaults.
func (s ChatSettings) Clamp(maxTokens int, temperature *float64, model string) ChatSettings {
	out := s
	if maxTokens != 0 {
		out.MaxTokens = maxTokens
	}
	if out.MaxTokens < MinChatMaxTokens {
		out.MaxTokens = MinChatMaxTokens
	}
	if out.MaxTokens > MaxChatMaxTokens {
		out.MaxTokens = MaxChatMaxTokens
	}

	if temperature != nil {
		out.Temperature = *temperature
	}
	if out.Temperature < 0 || math.IsNaN(out.Temperature) {
		out.Temperature = 0
	}
	if out.Temperature > 1 {
		out.Temperature = 1
	}

	if model != "" {
		out.Model = model
	}
	return out
}
