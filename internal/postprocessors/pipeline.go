// Package postprocessors turns a normalised reference document into keyed,
// size-capped sections.
package postprocessors

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SectionPipeline = (*Pipeline)(nil)

// Pipeline implements SectionPipeline.
type Pipeline struct {
	mu         sync.RWMutex
	processors []driven.SectionProcessor
	sorted     bool
}

// NewPipeline creates a pipeline with the given processors.
func NewPipeline(processors ...driven.SectionProcessor) *Pipeline {
	p := &Pipeline{}
	for _, proc := range processors {
		p.Add(proc)
	}
	return p
}

// Add adds a processor. Processors are sorted by Order() before processing.
func (p *Pipeline) Add(processor driven.SectionProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processors = append(p.processors, processor)
	p.sorted = false
}

func (p *Pipeline) ordered() []driven.SectionProcessor {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.sorted {
		sort.SliceStable(p.processors, func(i, j int) bool {
			return p.processors[i].Order() < p.processors[j].Order()
		})
		p.sorted = true
	}
	out := make([]driven.SectionProcessor, len(p.processors))
	copy(out, p.processors)
	return out
}

// Process runs every stage, starting from one keyless section holding the
// whole document.
func (p *Pipeline) Process(content string) []driven.Section {
	sections := []driven.Section{{Content: content}}
	for _, proc := range p.ordered() {
		sections = proc.Process(sections)
	}
	return sections
}

// List returns processor names in order.
func (p *Pipeline) List() []string {
	procs := p.ordered()
	names := make([]string, len(procs))
	for i, proc := range procs {
		names[i] = proc.Name()
	}
	return names
}

// Section caps applied to reference material
const (
	SiteBackgroundLimit = 5000
	CategoryDetailLimit = 4000
)

// SiteBackgroundPipeline keeps the whole document as one trimmed section.
func SiteBackgroundPipeline() *Pipeline {
	return NewPipeline(NewWhitespaceNormalizer(), NewTruncator(SiteBackgroundLimit))
}

// CategoryDetailPipeline splits "## DRG<n>" sections and caps each one.
func CategoryDetailPipeline() *Pipeline {
	return NewPipeline(NewCategorySplitter(), NewWhitespaceNormalizer(), NewTruncator(CategoryDetailLimit))
}

// categoryHeadingRe pulls the number out of "## DRG3", "## drg #3 Privacy", ...
var categoryHeadingRe = regexp.MustCompile(`(?i)drg\s*#?\s*(\d+)`)

// CategorySplitter cuts a document at "## DRG<n>" headings.
//
// Text before the first heading is dropped. A heading without a number
// keeps appending to the current section; a repeated number starts that
// section over, so the last occurrence wins.
type CategorySplitter struct{}

// Verify interface compliance
var _ driven.SectionProcessor = (*CategorySplitter)(nil)

// NewCategorySplitter creates a splitter.
func NewCategorySplitter() *CategorySplitter {
	return &CategorySplitter{}
}

// Process splits every input section.
func (c *CategorySplitter) Process(sections []driven.Section) []driven.Section {
	var out []driven.Section
	for _, s := range sections {
		out = append(out, c.split(s.Content)...)
	}
	for i := range out {
		out[i].Position = i
	}
	return out
}

func (c *CategorySplitter) split(content string) []driven.Section {
	var (
		order   []string
		bodies  = map[string][]string{}
		current string
	)

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "## drg") {
			if m := categoryHeadingRe.FindStringSubmatch(line); m != nil {
				current = m[1]
				if _, seen := bodies[current]; !seen {
					order = append(order, current)
				}
				bodies[current] = nil
			}
			continue
		}
		if current != "" {
			bodies[current] = append(bodies[current], line)
		}
	}

	out := make([]driven.Section, 0, len(order))
	for _, key := range order {
		out = append(out, driven.Section{Key: key, Content: strings.Join(bodies[key], "\n")})
	}
	return out
}

// Name returns the processor name.
func (c *CategorySplitter) Name() string {
	return "category-splitter"
}

// Order returns 0: splitting runs first.
func (c *CategorySplitter) Order() int {
	return 0
}

// WhitespaceNormalizer trims sections and collapses blank line runs.
// Empty sections are kept so a heading with no body still shows up.
type WhitespaceNormalizer struct{}

// Verify interface compliance
var _ driven.SectionProcessor = (*WhitespaceNormalizer)(nil)

// NewWhitespaceNormalizer creates a new whitespace normalizer.
func NewWhitespaceNormalizer() *WhitespaceNormalizer {
	return &WhitespaceNormalizer{}
}

// Process normalizes whitespace in sections.
func (w *WhitespaceNormalizer) Process(sections []driven.Section) []driven.Section {
	out := make([]driven.Section, len(sections))
	for i, s := range sections {
		lines := strings.Split(strings.ReplaceAll(s.Content, "\r\n", "\n"), "\n")
		for j, line := range lines {
			lines[j] = strings.TrimRight(line, " \t")
		}
		content := strings.Join(lines, "\n")
		for strings.Contains(content, "\n\n\n") {
			content = strings.ReplaceAll(content, "\n\n\n", "\n\n")
		}
		s.Content = strings.TrimSpace(content)
		out[i] = s
	}
	return out
}

// Name returns the processor name.
func (w *WhitespaceNormalizer) Name() string {
	return "whitespace-normalizer"
}

// Order returns 5: runs after splitting.
func (w *WhitespaceNormalizer) Order() int {
	return 5
}

// Truncator hard-cuts every section to a character budget.
type Truncator struct {
	limit int
}

// Verify interface compliance
var _ driven.SectionProcessor = (*Truncator)(nil)

// NewTruncator creates a truncator with a rune limit.
func NewTruncator(limit int) *Truncator {
	return &Truncator{limit: limit}
}

// Process truncates section contents.
func (t *Truncator) Process(sections []driven.Section) []driven.Section {
	out := make([]driven.Section, len(sections))
	for i, s := range sections {
		s.Content = domain.TruncateRunes(s.Content, t.limit)
		out[i] = s
	}
	return out
}

// Name returns the processor name.
func (t *Truncator) Name() string {
	return "truncator"
}

// Order returns 20: truncation runs last.
func (t *Truncator) Order() int {
	return 20
}
