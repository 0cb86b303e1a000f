package domain

import (
	"sort"
	"strings"
	"time"
)

// Company is an evaluated organisation
type Company struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Website     string               `json:"website"`
	Scores      RawScores            `json:"scores"`
	Evaluations []Evaluation         `json:"evaluations"`
	PerCategory map[Category]float64 `json:"drgScores"`
	Overall     float64              `json:"overallScore"`
	LastUpdated time.Time            `json:"lastUpdated"`
}

// Evaluation is a free-form note attached to a company by an evaluator
type Evaluation struct {
	Indicator string    `json:"indicator"`
	Evidence  string    `json:"evidence,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CompanyInput is the writable subset of a company
type CompanyInput struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Website     *string      `json:"website,omitempty"`
	Scores      RawScores    `json:"scores,omitempty"`
	Evaluations []Evaluation `json:"evaluations,omitempty"`
}

// Validate checks the input for creation
func (in *CompanyInput) Validate() error {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}

// Apply copies the non-nil fields onto the company
func (in *CompanyInput) Apply(c *Company) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Website != nil {
		c.Website = *in.Website
	}
	if in.Scores != nil {
		c.Scores = in.Scores
	}
	if in.Evaluations != nil {
		c.Evaluations = in.Evaluations
	}
}

// Snapshot returns a deep copy safe to aggregate while the original changes
func (c *Company) Snapshot() *Company {
	cp := *c
	cp.Scores = make(RawScores, len(c.Scores))
	for k, v := range c.Scores {
		cp.Scores[k] = v
	}
	cp.Evaluations = append([]Evaluation(nil), c.Evaluations...)
	cp.PerCategory = make(map[Category]float64, len(c.PerCategory))
	for k, v := range c.PerCategory {
		cp.PerCategory[k] = v
	}
	return &cp
}

// ApplyScores stores an aggregate result on the company
func (c *Company) ApplyScores(r ScoreResult) {
	c.PerCategory = r.PerCategory
	c.Overall = r.Overall
}

// Result returns the stored aggregate as a ScoreResult
func (c *Company) Result() ScoreResult {
	return ScoreResult{PerCategory: c.PerCategory, Overall: c.Overall}
}

// LeaderboardEntry is one ranked company
type LeaderboardEntry struct {
	CompanyID int64   `json:"company_id"`
	Name      string  `json:"name"`
	Overall   float64 `json:"overall"`
	Rank      int     `json:"rank"`
}

// SortLeaderboard orders entries best first, ties broken by name then ID,
// and assigns ranks starting at 1
func SortLeaderboard(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Overall != b.Overall {
			return a.Overall > b.Overall
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.CompanyID < b.CompanyID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// LeaderboardEntryFor returns the leaderboard view of a company
func LeaderboardEntryFor(c *Company) LeaderboardEntry {
	return LeaderboardEntry{CompanyID: c.ID, Name: c.Name, Overall: c.Overall}
}
