package postprocessors

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

type tagProcessor struct {
	name  string
	order int
}

func (p tagProcessor) Process(sections []driven.Section) []driven.Section {
	for i := range sections {
		sections[i].Content += "|" + p.name
	}
	return sections
}
func (p tagProcessor) Name() string { return p.name }
func (p tagProcessor) Order() int   { return p.order }

func TestPipeline_OrdersByOrder(t *testing.T) {
	p := NewPipeline(tagProcessor{"late", 20}, tagProcessor{"early", 0})
	p.Add(tagProcessor{"middle", 5})

	if got := strings.Join(p.List(), ","); got != "early,middle,late" {
		t.Errorf("List() = %s", got)
	}

	out := p.Process("doc")
	if len(out) != 1 || out[0].Content != "doc|early|middle|late" {
		t.Errorf("unexpected output %+v", out)
	}
}

func TestPipeline_Empty(t *testing.T) {
	out := NewPipeline().Process("  text ")
	if len(out) != 1 || out[0].Content != "  text " || out[0].Key != "" {
		t.Errorf("expected passthrough, got %+v", out)
	}
}

func TestCategorySplitter(t *testing.T) {
	doc := strings.Join([]string{
		"Preamble that is dropped",
		"## DRG1",
		"Literacy body",
		"",
		"  ## drg #3 Privacy  ",
		"Privacy line one",
		"## DRG heading without number",
		"Privacy line two",
		"### DRG4 is not a level-two heading",
		"## DRG1",
		"Literacy replaced",
	}, "\n")

	out := NewCategorySplitter().Process([]driven.Section{{Content: doc}})
	if len(out) != 2 {
		t.Fatalf("expected 2 sections, got %+v", out)
	}

	if out[0].Key != "1" || out[0].Content != "Literacy replaced" || out[0].Position != 0 {
		t.Errorf("unexpected first section %+v", out[0])
	}
	want := "Privacy line one\nPrivacy line two\n### DRG4 is not a level-two heading"
	if out[1].Key != "3" || out[1].Content != want || out[1].Position != 1 {
		t.Errorf("unexpected second section %+v", out[1])
	}
}

func TestCategorySplitter_NoHeadings(t *testing.T) {
	if out := NewCategorySplitter().Process([]driven.Section{{Content: "plain text"}}); len(out) != 0 {
		t.Errorf("expected no sections, got %+v", out)
	}
}

func TestWhitespaceNormalizer(t *testing.T) {
	in := []driven.Section{
		{Key: "2", Content: "\r\n  line one  \r\n\r\n\r\n\r\nline two\t\n\n"},
		{Key: "5", Content: "   "},
	}
	out := NewWhitespaceNormalizer().Process(in)

	if out[0].Content != "line one\n\nline two" || out[0].Key != "2" {
		t.Errorf("unexpected %+v", out[0])
	}
	if len(out) != 2 || out[1].Content != "" {
		t.Errorf("expected empty section kept, got %+v", out)
	}
}

func TestTruncator(t *testing.T) {
	long := strings.Repeat("ä", 10)
	out := NewTruncator(4).Process([]driven.Section{{Content: long}, {Content: "ok"}})

	if out[0].Content != "ääää" || !utf8.ValidString(out[0].Content) {
		t.Errorf("expected rune cut, got %q", out[0].Content)
	}
	if out[1].Content != "ok" {
		t.Errorf("short content changed: %q", out[1].Content)
	}
}

func TestCategoryDetailPipeline(t *testing.T) {
	doc := "## DRG2\n\n" + strings.Repeat("x", CategoryDetailLimit+50) + "\n## DRG7\nAgency\n"
	out := CategoryDetailPipeline().Process(doc)

	if len(out) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(out))
	}
	if utf8.RuneCountInString(out[0].Content) != CategoryDetailLimit {
		t.Errorf("expected capped section, got %d runes", utf8.RuneCountInString(out[0].Content))
	}
	if out[1].Key != "7" || out[1].Content != "Agency" {
		t.Errorf("unexpected %+v", out[1])
	}
}

func TestSiteBackgroundPipeline(t *testing.T) {
	out := SiteBackgroundPipeline().Process("\n\n  About the index  \n" + strings.Repeat("y", SiteBackgroundLimit))
	if len(out) != 1 {
		t.Fatalf("expected one section, got %d", len(out))
	}
	if !strings.HasPrefix(out[0].Content, "About the index") {
		t.Errorf("expected trimmed start, got %q", out[0].Content[:20])
	}
	if utf8.RuneCountInString(out[0].Content) != SiteBackgroundLimit {
		t.Errorf("expected %d runes, got %d", SiteBackgroundLimit, utf8.RuneCountInString(out[0].Content))
	}
}
