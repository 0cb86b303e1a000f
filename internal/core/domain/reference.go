package domain

// ReferenceSnapshot is the static text the chat assistant draws from.
// A snapshot is never modified after construction; reloads build a new one.
type ReferenceSnapshot struct {
	Persona        string
	SiteBackground string
	Summaries      map[Category]string
	Details        map[Category]string
}

// NewReferenceSnapshot copies the maps so callers cannot mutate the snapshot
func NewReferenceSnapshot(persona, background string, summaries, details map[Category]string) *ReferenceSnapshot {
	return &ReferenceSnapshot{
		Persona:        persona,
		SiteBackground: background,
		Summaries:      copyCategoryText(summaries),
		Details:        copyCategoryText(details),
	}
}

// DefaultReferenceSnapshot returns the built-in persona and category summaries
func DefaultReferenceSnapshot() *ReferenceSnapshot {
	return NewReferenceSnapshot(DefaultPersona, "", DefaultCategorySummaries(), nil)
}

// Summary returns the one-line summary for a category
func (r *ReferenceSnapshot) Summary(c Category) (string, bool) {
	if r == nil {
		return "", false
	}
	s, ok := r.Summaries[c]
	return s, ok && s != ""
}

// Detail returns the long-form text for a category
func (r *ReferenceSnapshot) Detail(c Category) (string, bool) {
	if r == nil {
		return "", false
	}
	s, ok := r.Details[c]
	return s, ok && s != ""
}

// WithPersona returns a copy of the snapshot using a different persona.
// The category maps are shared since neither copy ever writes to them.
func (r *ReferenceSnapshot) WithPersona(persona string) *ReferenceSnapshot {
	if r == nil {
		r = DefaultReferenceSnapshot()
	}
	cp := *r
	cp.Persona = persona
	return &cp
}

func copyCategoryText(in map[Category]string) map[Category]string {
	out := make(map[Category]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
