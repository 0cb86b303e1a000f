// Package catalogue loads the indicator catalogue from CSV exports of the
// indicator shortlist spreadsheet.
package catalogue

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CatalogueSource = (*CSVSource)(nil)

// Recognised header names
const (
	ColumnName      = "Criterion/Metric Name"
	ColumnShortCode = "DRG Short Code"
	ColumnCategory  = "DRG"
	ColumnScale     = "Scoring Logic"
	ColumnRationale = "Rationale"
	ColumnQuestion  = "Question"
	ColumnLegend    = "Legend"
)

// CSVSource tries each path in order. Missing files are skipped and the
// first file yielding at least one indicator wins. When none do, the
// built-in fallback catalogue is returned.
type CSVSource struct {
	paths  []string
	logger *slog.Logger
}

// NewCSVSource creates a source over candidate paths
func NewCSVSource(paths []string, logger *slog.Logger) *CSVSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVSource{paths: paths, logger: logger}
}

// Load reads the first usable candidate. A row without a name is an error,
// not a skip: the file is structurally broken.
func (s *CSVSource) Load(ctx context.Context) (*domain.Catalogue, error) {
	for _, path := range s.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		defs, err := readFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("catalogue candidate missing", "path", path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(defs) == 0 {
			s.logger.Warn("catalogue candidate has no indicators", "path", path)
			continue
		}

		cat, err := domain.NewCatalogue(defs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, d := range defs {
			if !d.Category.IsValid() {
				s.logger.Warn("indicator category outside the fixed set; counted in overall only",
					"name", d.Name, "code", string(d.Category))
			}
		}
		s.logger.Info("catalogue loaded", "path", path, "indicators", cat.Len())
		return cat, nil
	}

	s.logger.Warn("no catalogue file found, using built-in fallback", "candidates", s.paths)
	return domain.NewCatalogue(Fallback())
}

func readFile(path string) ([]domain.IndicatorDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads indicator rows from CSV with a header line.
// Unknown columns are ignored and missing optional columns read as empty.
func Parse(r io.Reader) ([]domain.IndicatorDefinition, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := cols[h]; !seen {
			cols[h] = i
		}
	}
	if _, ok := cols[ColumnName]; !ok {
		return nil, fmt.Errorf("%w: missing %q column", domain.ErrInvalidCatalogue, ColumnName)
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var defs []domain.IndicatorDefinition
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blank(rec) {
			continue
		}

		line, _ := reader.FieldPos(0)
		name := field(rec, ColumnName)
		if name == "" {
			return nil, fmt.Errorf("%w: line %d has no %q", domain.ErrInvalidCatalogue, line, ColumnName)
		}

		code := field(rec, ColumnShortCode)
		if code == "" {
			code = field(rec, ColumnCategory)
		}
		category, _ := domain.ParseCategory(code)

		defs = append(defs, domain.IndicatorDefinition{
			Name:          name,
			Category:      category,
			CategoryLabel: field(rec, ColumnCategory),
			Scale:         field(rec, ColumnScale),
			Rationale:     field(rec, ColumnRationale),
			Question:      field(rec, ColumnQuestion),
			Legend:        field(rec, ColumnLegend),
		})
	}
	return defs, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Fallback is the catalogue served when no CSV is available
func Fallback() []domain.IndicatorDefinition {
	return []domain.IndicatorDefinition{
		{
			Name:          "Digital Literacy Policy & Governance",
			Category:      domain.CategoryDigitalLiteracy,
			CategoryLabel: "1",
			Scale:         "0=No policy; 1=Basic policy; 2=Comprehensive policy with governance",
			Rationale:     "This evaluates whether the organization has established clear policies and governance structures for digital literacy.",
			Legend:        "No policy – Basic policy – Comprehensive policy with governance",
		},
		{
			Name:          "Incident response plan",
			Category:      domain.CategoryCybersecurity,
			CategoryLabel: "2",
			Scale:         "0=No plan; 1=Basic plan; 2=Comprehensive plan with testing",
			Rationale:     "This assesses whether the organization has a documented and tested incident response plan for cybersecurity incidents.",
			Legend:        "No plan – Basic plan – Comprehensive plan with testing",
		},
	}
}
