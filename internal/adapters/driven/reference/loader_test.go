package reference

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_EmptyDirUsesBuiltins(t *testing.T) {
	snap, err := NewLoader(LoaderConfig{Dir: t.TempDir()}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultPersona, snap.Persona)
	assert.Equal(t, "", snap.SiteBackground)
	assert.Equal(t, domain.DefaultCategorySummaries(), snap.Summaries)
	assert.Empty(t, snap.Details)
}

func TestLoader_MissingDirIsNotAnError(t *testing.T) {
	snap, err := NewLoader(LoaderConfig{Dir: filepath.Join(t.TempDir(), "absent")}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPersona, snap.Persona)
}

func TestLoader_ReadsAllFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "persona.md", "\n  You are the index helper.  \n")
	write(t, dir, "site_context.md", "\r\nThe index rates organisations.\r\n\r\n\r\n\r\nIt has seven goals.\r\n")
	write(t, dir, "drg_context.md", "intro\n## DRG2\nCyber detail\n\n## DRG 9\nnot a category\n## drg #6\nOpen detail\n")
	write(t, dir, "categories.yaml", "summaries:\n  \"3\": \"Privacy, rewritten\"\n  DRG7: \"  Agency, rewritten \"\n  \"12\": \"ignored\"\n  \"4\": \"\"\n")

	snap, err := NewLoader(LoaderConfig{Dir: dir}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "You are the index helper.", snap.Persona)
	assert.Equal(t, "The index rates organisations.\n\nIt has seven goals.", snap.SiteBackground)
	assert.Equal(t, map[domain.Category]string{
		domain.CategoryCybersecurity: "Cyber detail",
		domain.CategoryTransparency:  "Open detail",
	}, snap.Details)

	assert.Equal(t, "Privacy, rewritten", snap.Summaries[domain.CategoryPrivacy])
	assert.Equal(t, "Agency, rewritten", snap.Summaries[domain.CategoryHumanAgency])
	assert.Equal(t, domain.DefaultCategorySummaries()[domain.CategoryDataFairness], snap.Summaries[domain.CategoryDataFairness])
	assert.Len(t, snap.Summaries, len(domain.Categories))
}

func TestLoader_PersonaOverrideWins(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "persona.md", "file persona")

	snap, err := NewLoader(LoaderConfig{Dir: dir, PersonaOverride: " env persona "}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env persona", snap.Persona)
}

func TestLoader_PersonaCapped(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "persona.txt", strings.Repeat("p", domain.MaxSystemPromptLength+10))

	snap, err := NewLoader(LoaderConfig{Dir: dir}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.MaxSystemPromptLength, utf8.RuneCountInString(snap.Persona))
}

func TestLoader_BackgroundCapAndHTML(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "site_context.html", "<html><body><p>"+strings.Repeat("é", 6000)+"</p></body></html>")
	write(t, dir, "drg_context.html", "<h2>DRG1 Literacy</h2><p>Skills &amp; access</p>")

	snap, err := NewLoader(LoaderConfig{Dir: dir}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5000, utf8.RuneCountInString(snap.SiteBackground))
	assert.Equal(t, "Skills & access", snap.Details[domain.CategoryDigitalLiteracy])
}

func TestLoader_MarkdownPreferredOverText(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "site_context.md", "from markdown")
	write(t, dir, "site_context.txt", "from text")

	snap, err := NewLoader(LoaderConfig{Dir: dir}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from markdown", snap.SiteBackground)
}

func TestLoader_BadYAML(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "categories.yaml", "summaries: [unclosed")

	_, err := NewLoader(LoaderConfig{Dir: dir}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories.yaml")
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(LoaderConfig{Dir: t.TempDir()}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsReferenceFile(t *testing.T) {
	tests := map[string]bool{
		"/ref/persona.md":       true,
		"/ref/site_context.txt": true,
		"/ref/drg_context.HTML": true,
		"/ref/categories.yaml":  true,
		"/ref/categories.yml":   false,
		"/ref/notes.md":         false,
		"/ref/persona.md.swp":   false,
		"/ref/drg_context.pdf":  false,
		"/ref/.persona.md.un~":  false,
		"/ref/sub/persona.md":   true,
	}
	for path, want := range tests {
		assert.Equal(t, want, IsReferenceFile(path), path)
	}
}
