// Package reference loads the static text the chat assistant draws from:
// persona, site background, category summaries and long-form category detail.
package reference

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
	"github.com/custodia-labs/dri-core/internal/normalisers"
	"github.com/custodia-labs/dri-core/internal/postprocessors"
)

// Verify interface compliance
var _ driven.ReferenceSource = (*Loader)(nil)

// Base names of the reference files. Each may carry any extension the
// normaliser registry knows; the first existing one in Extensions order wins.
const (
	PersonaFile    = "persona"
	BackgroundFile = "site_context"
	DetailFile     = "drg_context"
	CategoriesFile = "categories.yaml"
)

// Extensions are tried in order for each base name
var Extensions = []string{".md", ".txt", ".html"}

// Loader builds reference snapshots from a directory
type Loader struct {
	dir             string
	personaOverride string
	registry        *normalisers.Registry
	background      *postprocessors.Pipeline
	details         *postprocessors.Pipeline
	logger          *slog.Logger
}

// LoaderConfig configures a Loader
type LoaderConfig struct {
	Dir string

	// PersonaOverride replaces any persona file when non-empty
	PersonaOverride string

	Registry *normalisers.Registry
	Logger   *slog.Logger
}

// NewLoader creates a loader
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.Registry == nil {
		cfg.Registry = normalisers.DefaultRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Loader{
		dir:             cfg.Dir,
		personaOverride: strings.TrimSpace(cfg.PersonaOverride),
		registry:        cfg.Registry,
		background:      postprocessors.SiteBackgroundPipeline(),
		details:         postprocessors.CategoryDetailPipeline(),
		logger:          cfg.Logger,
	}
}

// Dir returns the watched directory
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads a fresh snapshot. Missing files are not errors; unreadable
// files and malformed categories.yaml are.
func (l *Loader) Load(ctx context.Context) (*domain.ReferenceSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	persona, err := l.persona()
	if err != nil {
		return nil, err
	}

	background := ""
	if text, ok, err := l.readNormalised(BackgroundFile); err != nil {
		return nil, err
	} else if ok {
		if sections := l.background.Process(text); len(sections) > 0 {
			background = sections[0].Content
		}
	}

	details := map[domain.Category]string{}
	if text, ok, err := l.readNormalised(DetailFile); err != nil {
		return nil, err
	} else if ok {
		for _, s := range l.details.Process(text) {
			c := domain.Category(s.Key)
			if !c.IsValid() {
				l.logger.Warn("ignoring detail section for unknown category", "key", s.Key)
				continue
			}
			details[c] = s.Content
		}
	}

	summaries := domain.DefaultCategorySummaries()
	overrides, err := l.summaryOverrides()
	if err != nil {
		return nil, err
	}
	for c, s := range overrides {
		summaries[c] = s
	}

	snap := domain.NewReferenceSnapshot(persona, background, summaries, details)
	l.logger.Info("reference material loaded",
		"dir", l.dir,
		"background_chars", len([]rune(background)),
		"details", len(details),
		"summary_overrides", len(overrides))
	return snap, nil
}

func (l *Loader) persona() (string, error) {
	if l.personaOverride != "" {
		return domain.TruncateRunes(l.personaOverride, domain.MaxSystemPromptLength), nil
	}
	text, ok, err := l.readNormalised(PersonaFile)
	if err != nil {
		return "", err
	}
	if !ok || text == "" {
		return domain.DefaultPersona, nil
	}
	return domain.TruncateRunes(text, domain.MaxSystemPromptLength), nil
}

// readNormalised finds base+ext in the directory and normalises it by extension
func (l *Loader) readNormalised(base string) (string, bool, error) {
	for _, ext := range Extensions {
		path := filepath.Join(l.dir, base+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("read %s: %w", path, err)
		}
		return l.registry.Normalise(path, string(data)), true, nil
	}
	return "", false, nil
}

// categoriesDoc is the layout of categories.yaml:
//
//	summaries:
//	  "1": "Digital Literacy: ..."
//	  DRG3: "Privacy: ..."
type categoriesDoc struct {
	Summaries map[string]string `yaml:"summaries"`
}

func (l *Loader) summaryOverrides() (map[domain.Category]string, error) {
	path := filepath.Join(l.dir, CategoriesFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc categoriesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make(map[domain.Category]string, len(doc.Summaries))
	for key, text := range doc.Summaries {
		c, ok := domain.ParseCategory(key)
		text = strings.TrimSpace(text)
		if !ok || text == "" {
			l.logger.Warn("ignoring category summary", "key", key)
			continue
		}
		out[c] = text
	}
	return out, nil
}

// IsReferenceFile reports whether a path names one of the loaded files
func IsReferenceFile(path string) bool {
	name := filepath.Base(path)
	if name == CategoriesFile {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return base == PersonaFile || base == BackgroundFile || base == DetailFile
		}
	}
	return false
}
