package domain

import (
	"strings"
	"time"
)

// Field caps for stored feedback
const (
	MaxFeedbackSessionIDLen = 128
	MaxFeedbackRouteLen     = 256
	MaxFeedbackMessageLen   = 6000

	DefaultFeedbackLimit = 100
	MaxFeedbackLimit     = 1000
)

// Feedback is a message left through the feedback widget
type Feedback struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"session_id"`
	Route            string    `json:"route"`
	IndicatorName    *string   `json:"indicator_name"`
	Category         *string   `json:"drg_short_code"`
	FeedbackType     string    `json:"feedback_type"`
	Message          string    `json:"message"`
	AssistantMessage *string   `json:"assistant_message"`
	Consent          bool      `json:"consent"`
	Device           *string   `json:"device"`
	ViewportWidth    *int      `json:"viewport_w"`
	CreatedAt        time.Time `json:"created_at"`
}

// FeedbackInput is the body posted by the widget
type FeedbackInput struct {
	SessionID        string `json:"session_id"`
	Route            string `json:"route"`
	IndicatorName    string `json:"indicator_name,omitempty"`
	Category         string `json:"drg_short_code,omitempty"`
	FeedbackType     string `json:"feedback_type,omitempty"`
	Message          string `json:"message"`
	AssistantMessage string `json:"assistant_message,omitempty"`
	Consent          bool   `json:"consent"`
	Device           string `json:"device,omitempty"`
	ViewportWidth    int    `json:"viewport_w,omitempty"`
}

// ToFeedback validates the input and applies field caps.
// session_id, route and message are required.
func (in FeedbackInput) ToFeedback() (*Feedback, error) {
	if in.SessionID == "" || in.Route == "" || in.Message == "" {
		return nil, ErrInvalidInput
	}

	fb := &Feedback{
		SessionID:        TruncateRunes(in.SessionID, MaxFeedbackSessionIDLen),
		Route:            TruncateRunes(in.Route, MaxFeedbackRouteLen),
		IndicatorName:    optionalString(in.IndicatorName),
		Category:         optionalString(in.Category),
		FeedbackType:     in.FeedbackType,
		Message:          TruncateRunes(in.Message, MaxFeedbackMessageLen),
		AssistantMessage: optionalString(TruncateRunes(in.AssistantMessage, MaxFeedbackMessageLen)),
		Consent:          in.Consent,
		Device:           optionalString(in.Device),
	}
	if fb.FeedbackType == "" {
		fb.FeedbackType = "general"
	}
	if in.ViewportWidth != 0 {
		w := in.ViewportWidth
		fb.ViewportWidth = &w
	}
	return fb, nil
}

// FeedbackFilter narrows a feedback listing
type FeedbackFilter struct {
	Limit         int
	Route         string
	IndicatorName string
}

// Normalize clamps the limit into [1, MaxFeedbackLimit]
func (f FeedbackFilter) Normalize() FeedbackFilter {
	if f.Limit == 0 {
		f.Limit = DefaultFeedbackLimit
	}
	if f.Limit < 1 {
		f.Limit = 1
	}
	if f.Limit > MaxFeedbackLimit {
		f.Limit = MaxFeedbackLimit
	}
	return f
}

// TruncateRunes cuts s to at most n characters. The cut is not word aware.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
