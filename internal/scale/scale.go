// Package scale turns an indicator's free-text scoring logic into the
// highest attainable level.
//
// Scoring logic is written as semicolon separated "<level>=<label>" clauses,
// e.g. "0=No policy; 1=Basic policy; 2=Comprehensive policy". The format is a
// convention rather than a grammar, so parsing is split into strategies that
// are tried in priority order. A description no strategy understands resolves
// to DefaultMax.
package scale

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultMax is used when no strategy can read a description
const DefaultMax = 5

// Result is the outcome of resolving one description
type Result struct {
	Max      int    // highest level, never negative
	OK       bool   // false when Max is the fallback
	Strategy string // name of the strategy that produced Max
}

// Strategy reads one scale notation
type Strategy interface {
	// Name identifies the strategy in results and logs
	Name() string

	// Priority orders strategies; higher runs first
	Priority() int

	// Parse returns the highest level, or false if the notation does not apply
	Parse(description string) (int, bool)
}

// Resolver tries strategies in priority order.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	strategies []Strategy
	fallback   int
}

// NewResolver creates a resolver over the given strategies.
// Ties in priority keep the order they were passed in.
func NewResolver(strategies ...Strategy) *Resolver {
	sorted := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	return &Resolver{strategies: sorted, fallback: DefaultMax}
}

// DefaultResolver understands "N=label" clauses and, failing that, "0-N" ranges.
func DefaultResolver() *Resolver {
	return NewResolver(ClauseStrategy{}, RangeStrategy{})
}

var defaultResolver = DefaultResolver()

// ResolveMax resolves a description with the default strategies
func ResolveMax(description string) int {
	return defaultResolver.MaxPoints(description)
}

// Resolve returns the highest level of a description.
// It never fails: unreadable input yields the fallback with OK=false.
func (r *Resolver) Resolve(description string) Result {
	for _, s := range r.strategies {
		if max, ok := s.Parse(description); ok && max >= 0 {
			return Result{Max: max, OK: true, Strategy: s.Name()}
		}
	}
	return Result{Max: r.fallback}
}

// MaxPoints is Resolve without the diagnostics
func (r *Resolver) MaxPoints(description string) int {
	return r.Resolve(description).Max
}

// Strategies lists strategy names in the order they are tried
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// ClauseStrategy reads "0=No; 1=Basic; 2=Full".
// Each clause contributes the digits left of its first "="; the largest wins.
// Clauses without "=" or without digits are ignored.
type ClauseStrategy struct{}

func (ClauseStrategy) Name() string  { return "clauses" }
func (ClauseStrategy) Priority() int { return 100 }

func (ClauseStrategy) Parse(description string) (int, bool) {
	max, found := 0, false

	for _, clause := range strings.Split(description, ";") {
		clause = strings.TrimSpace(clause)
		left, _, hasAssign := strings.Cut(clause, "=")
		if clause == "" || !hasAssign {
			continue
		}

		digits := keepDigits(left)
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			// overflow: not a level anyone meant
			continue
		}
		if !found || n > max {
			max, found = n, true
		}
	}

	return max, found
}

// rangePattern matches "0-3", "0 – 4", "1 to 5"
var rangePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:-|–|to)\s*(\d+)`)

// RangeStrategy reads range notations such as "Scale 0-3" or "1 to 5 points".
// It only runs when no clause notation was found.
type RangeStrategy struct{}

func (RangeStrategy) Name() string  { return "range" }
func (RangeStrategy) Priority() int { return 50 }

func (RangeStrategy) Parse(description string) (int, bool) {
	max, found := 0, false
	for _, m := range rangePattern.FindAllStringSubmatch(description, -1) {
		for _, g := range m[1:] {
			n, err := strconv.Atoi(g)
			if err != nil {
				continue
			}
			if !found || n > max {
				max, found = n, true
			}
		}
	}
	return max, found
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
