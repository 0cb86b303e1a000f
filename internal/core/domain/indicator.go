package domain

import "fmt"

// IndicatorDefinition is one evaluable criterion of the index
type IndicatorDefinition struct {
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	CategoryLabel string   `json:"category_label,omitempty"` // long DRG column, informational only
	Scale         string   `json:"scoring_logic"`            // e.g. "0=No; 1=Basic; 2=Full"
	Rationale     string   `json:"rationale,omitempty"`
	Question      string   `json:"question,omitempty"`
	Legend        string   `json:"legend,omitempty"`
}

// Catalogue is the ordered, immutable set of indicator definitions.
// It is built once at startup and shared read-only between requests.
type Catalogue struct {
	indicators []IndicatorDefinition
	byName     map[string]int
}

// NewCatalogue validates and freezes a list of definitions.
// Every definition needs a non-empty, unique name.
func NewCatalogue(defs []IndicatorDefinition) (*Catalogue, error) {
	c := &Catalogue{
		indicators: make([]IndicatorDefinition, 0, len(defs)),
		byName:     make(map[string]int, len(defs)),
	}

	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: indicator %d has no name", ErrInvalidCatalogue, i+1)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate indicator %q", ErrInvalidCatalogue, d.Name)
		}
		c.byName[d.Name] = len(c.indicators)
		c.indicators = append(c.indicators, d)
	}

	return c, nil
}

// Len returns the number of indicators
func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.indicators)
}

// Indicators returns a copy of the definitions in catalogue order
func (c *Catalogue) Indicators() []IndicatorDefinition {
	if c == nil {
		return nil
	}
	out := make([]IndicatorDefinition, len(c.indicators))
	copy(out, c.indicators)
	return out
}

// Get looks up an indicator by name
func (c *Catalogue) Get(name string) (IndicatorDefinition, bool) {
	if c == nil {
		return IndicatorDefinition{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return IndicatorDefinition{}, false
	}
	return c.indicators[i], true
}

// InCategory returns the indicators assigned to a category, in catalogue order
func (c *Catalogue) InCategory(cat Category) []IndicatorDefinition {
	if c == nil {
		return nil
	}
	var out []IndicatorDefinition
	for _, d := range c.indicators {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}
