// Package normalisers cleans reference text files by format before they are
// split into prompt material.
package normalisers

import (
	"html"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry implements NormaliserRegistry with priority-based selection.
// When multiple normalisers match an extension, the highest priority one is used.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a new normaliser registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register registers a normaliser.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
}

// Get returns the best normaliser for a file path, or nil.
func (r *Registry) Get(path string) driven.Normaliser {
	matches := r.GetAll(path)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// GetAll returns every normaliser matching a path, highest priority first.
// Ties keep registration order.
func (r *Registry) GetAll(path string) []driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))

	var matches []driven.Normaliser
	for _, n := range r.normalisers {
		if matchesExtension(n.Extensions(), ext) {
			matches = append(matches, n)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})
	return matches
}

// List returns all registered extensions, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := make(map[string]struct{})
	for _, n := range r.normalisers {
		for _, e := range n.Extensions() {
			set[e] = struct{}{}
		}
	}

	exts := make([]string, 0, len(set))
	for e := range set {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// Normalise runs the best normaliser for path over content.
// Content is returned unchanged when nothing matches.
func (r *Registry) Normalise(path, content string) string {
	if n := r.Get(path); n != nil {
		return n.Normalise(content)
	}
	return content
}

func matchesExtension(supported []string, ext string) bool {
	for _, s := range supported {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "*" || s == ext {
			return true
		}
	}
	return false
}

// DefaultRegistry creates a registry with the built-in normalisers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&PlaintextNormaliser{})
	r.Register(&MarkdownNormaliser{})
	r.Register(&HTMLNormaliser{})
	return r
}

// PlaintextNormaliser unifies line endings. It accepts any file.
type PlaintextNormaliser struct{}

func (n *PlaintextNormaliser) Normalise(content string) string {
	return strings.TrimSpace(unifyNewlines(content))
}

func (n *PlaintextNormaliser) Extensions() []string {
	return []string{".txt", "*"}
}

func (n *PlaintextNormaliser) Priority() int {
	return 1
}

// MarkdownNormaliser keeps markup but drops runs of blank lines.
// Headings survive because section splitting relies on them.
type MarkdownNormaliser struct{}

func (n *MarkdownNormaliser) Normalise(content string) string {
	return strings.TrimSpace(collapseBlankLines(unifyNewlines(content)))
}

func (n *MarkdownNormaliser) Extensions() []string {
	return []string{".md", ".markdown"}
}

func (n *MarkdownNormaliser) Priority() int {
	return 50
}

// HTMLNormaliser extracts text from HTML exports of the site pages.
// Headings become "## " lines so DRG sections can still be found.
type HTMLNormaliser struct{}

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style)\b.*?</(script|style)\s*>`)
	headingRe     = regexp.MustCompile(`(?i)<h[1-6]\b[^>]*>`)
	blockRe       = regexp.MustCompile(`(?i)</?(p|div|br|li|ul|ol|tr|h[1-6]|section|article)\b[^>]*>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	spacesRe      = regexp.MustCompile(`[ \t]+`)
)

func (n *HTMLNormaliser) Normalise(content string) string {
	content = unifyNewlines(content)
	content = scriptStyleRe.ReplaceAllString(content, "")
	content = headingRe.ReplaceAllString(content, "\n## ")
	content = blockRe.ReplaceAllString(content, "\n")
	content = tagRe.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spacesRe.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(collapseBlankLines(strings.Join(lines, "\n")))
}

func (n *HTMLNormaliser) Extensions() []string {
	return []string{".html", ".htm"}
}

func (n *HTMLNormaliser) Priority() int {
	return 50
}

func unifyNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

var blankRunRe = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+\n`)

// collapseBlankLines turns any run of blank lines into a single blank line
func collapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}
