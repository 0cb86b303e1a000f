// Package chatcontext builds the message list handed to the completion
// provider for one chat turn.
//
// The list always starts with the persona. Background snippets follow in a
// fixed order, then the most recent conversation turns. Every piece of text
// has a character budget so the outbound request stays bounded.
package chatcontext

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/topics"
)

// Limits are character and count budgets. Character counts are runes.
type Limits struct {
	SiteBackground int
	ExtraContext   int
	TopicDetail    int
	TurnContent    int
	Turns          int
	// MaxSnippets bounds the snippets emitted after the persona
	MaxSnippets int
}

// DefaultLimits returns the production budgets
func DefaultLimits() Limits {
	return Limits{
		SiteBackground: 1200,
		ExtraContext:   1200,
		TopicDetail:    1500,
		TurnContent:    2000,
		Turns:          8,
		MaxSnippets:    6,
	}
}

// Fixed snippet texts
const (
	IndicatorNote    = "Indicator context is provided to help tailor your reply. Do not restrict or reprimand users; accept feedback about any part of the evaluation."
	FollowupReminder = "Do not ask any more follow-ups. Respond concisely."
	unknownRoute     = "unknown"
)

type snippetKind int

const (
	kindBackground snippetKind = iota
	kindIndicatorNote
	kindSummary
	kindExtraContext
	kindFacts
	kindFollowup
	kindTopic
)

// dropOrder lists what gives way first when the snippet budget is exceeded.
// The facts snippet is never dropped.
var dropOrder = []snippetKind{
	kindBackground,
	kindExtraContext,
	kindIndicatorNote,
	kindSummary,
	kindFollowup,
	kindTopic,
}

type snippet struct {
	kind    snippetKind
	content string
}

// Result is an assembled message list plus what was learned on the way
type Result struct {
	Messages []domain.ChatMessage
	// Detected is the category named in the latest user turn, if any
	Detected    domain.Category
	HasDetected bool
	// Snippets counts system messages after the persona
	Snippets int
}

// Assembler is safe for concurrent use; it holds no request state.
type Assembler struct {
	detector *topics.Detector
	limits   Limits
}

// NewAssembler creates an assembler. A nil detector uses topics.Default.
func NewAssembler(detector *topics.Detector, limits Limits) *Assembler {
	if detector == nil {
		detector = topics.Default()
	}
	return &Assembler{detector: detector, limits: limits}
}

// Default returns an assembler with the default detector and limits
func Default() *Assembler {
	return NewAssembler(nil, DefaultLimits())
}

// Assemble builds the message list for one turn.
// A nil ref uses the built-in persona and summaries.
func (a *Assembler) Assemble(ref *domain.ReferenceSnapshot, conversation []domain.ChatMessage, rc domain.ChatContext) Result {
	if ref == nil {
		ref = domain.DefaultReferenceSnapshot()
	}
	persona := ref.Persona
	if strings.TrimSpace(persona) == "" {
		persona = domain.DefaultPersona
	}

	var snippets []snippet
	add := func(kind snippetKind, content string) {
		snippets = append(snippets, snippet{kind: kind, content: content})
	}

	if strings.TrimSpace(ref.SiteBackground) != "" {
		add(kindBackground, "Site context (brief):\n"+domain.TruncateRunes(ref.SiteBackground, a.limits.SiteBackground))
	}

	route := strings.TrimSpace(rc.Route)
	if route == "" {
		route = unknownRoute
	}
	facts := []string{"route: " + route}

	if name := strings.TrimSpace(rc.IndicatorName); name != "" {
		facts = append(facts, "indicator: "+name)
		add(kindIndicatorNote, IndicatorNote)
	}

	var summarised domain.Category
	if raw := strings.TrimSpace(string(rc.Category)); raw != "" {
		facts = append(facts, "drg: "+raw)
		if c, ok := domain.ParseCategory(raw); ok {
			if sum, ok := ref.Summary(c); ok {
				add(kindSummary, "DRG summary: "+sum)
				summarised = c
			}
		}
	}

	if extra := strings.TrimSpace(rc.ExtraContext); extra != "" {
		add(kindExtraContext, domain.TruncateRunes(extra, a.limits.ExtraContext))
	}

	add(kindFacts, "Context: "+strings.Join(facts, "; "))

	if rc.AskedFollowup {
		add(kindFollowup, FollowupReminder)
	}

	window := a.window(conversation)

	res := Result{}
	if c, ok := a.detector.Detect(lastUserContent(window)); ok {
		res.Detected, res.HasDetected = c, true
		if c != summarised {
			if text, ok := a.topicSnippet(ref, c); ok {
				add(kindTopic, text)
			}
		}
	}

	snippets = a.enforceBudget(snippets)
	tail := a.capTurns(window)

	res.Messages = make([]domain.ChatMessage, 0, 1+len(snippets)+len(tail))
	res.Messages = append(res.Messages, domain.ChatMessage{Role: domain.ChatRoleSystem, Content: persona})
	for _, s := range snippets {
		res.Messages = append(res.Messages, domain.ChatMessage{Role: domain.ChatRoleSystem, Content: s.content})
	}
	res.Messages = append(res.Messages, tail...)
	res.Snippets = len(snippets)
	return res
}

func (a *Assembler) topicSnippet(ref *domain.ReferenceSnapshot, c domain.Category) (string, bool) {
	if detail, ok := ref.Detail(c); ok {
		return fmt.Sprintf("Detailed %s context:\n%s", c.Label(), domain.TruncateRunes(detail, a.limits.TopicDetail)), true
	}
	if sum, ok := ref.Summary(c); ok {
		return fmt.Sprintf("%s summary: %s", c.Label(), sum), true
	}
	return "", false
}

// window returns the most recent turns, uncapped
func (a *Assembler) window(conversation []domain.ChatMessage) []domain.ChatMessage {
	if a.limits.Turns >= 0 && len(conversation) > a.limits.Turns {
		return conversation[len(conversation)-a.limits.Turns:]
	}
	return conversation
}

// capTurns applies the per-turn budget. Any role other than user is sent as
// assistant so callers cannot inject system messages.
func (a *Assembler) capTurns(turns []domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(turns))
	for _, m := range turns {
		role := domain.ChatRoleAssistant
		if m.Role == domain.ChatRoleUser {
			role = domain.ChatRoleUser
		}
		out = append(out, domain.ChatMessage{
			Role:    role,
			Content: domain.TruncateRunes(m.Content, a.limits.TurnContent),
		})
	}
	return out
}

func (a *Assembler) enforceBudget(snippets []snippet) []snippet {
	for _, kind := range dropOrder {
		if len(snippets) <= a.limits.MaxSnippets {
			break
		}
		snippets = without(snippets, kind)
	}
	return snippets
}

func without(snippets []snippet, kind snippetKind) []snippet {
	out := snippets[:0:0]
	for _, s := range snippets {
		if s.kind != kind {
			out = append(out, s)
		}
	}
	return out
}

func lastUserContent(turns []domain.ChatMessage) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == domain.ChatRoleUser {
			return turns[i].Content
		}
	}
	return ""
}
