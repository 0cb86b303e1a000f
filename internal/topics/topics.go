// Package topics maps a free-text utterance to one of the seven categories.
package topics

import (
	"regexp"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

// Rule associates a pattern with a category. When Category is empty the
// first capture group of Pattern must hold the category number.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Category domain.Category
}

// Detector applies rules in order; the first match wins.
type Detector struct {
	rules []Rule
}

// NewDetector creates a detector. Rules without a pattern are dropped.
func NewDetector(rules []Rule) *Detector {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Pattern != nil {
			kept = append(kept, r)
		}
	}
	return &Detector{rules: kept}
}

// DefaultRules recognises an explicit "DRG n" reference first, then the
// category names. The cybersecurity rule anchors only one end of each
// alternative, so run-together forms such as "cybersecurityteam" match.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "numeric", Pattern: regexp.MustCompile(`(?i)\bdrg\s*#?\s*([1-7])\b`)},
		{Name: "digital-literacy", Pattern: regexp.MustCompile(`(?i)\bdigital\s+literacy\b`), Category: domain.CategoryDigitalLiteracy},
		{Name: "cybersecurity", Pattern: regexp.MustCompile(`(?i)\bcyber\s*security|cybersecurity\b`), Category: domain.CategoryCybersecurity},
		{Name: "privacy", Pattern: regexp.MustCompile(`(?i)\bprivacy\b`), Category: domain.CategoryPrivacy},
		{Name: "data-fairness", Pattern: regexp.MustCompile(`(?i)\bdata\s+fairness\b`), Category: domain.CategoryDataFairness},
		{Name: "trustworthy-algorithms", Pattern: regexp.MustCompile(`(?i)\btrustworthy\s+algorithms?\b`), Category: domain.CategoryAlgorithms},
		{Name: "transparency", Pattern: regexp.MustCompile(`(?i)\btransparency\b`), Category: domain.CategoryTransparency},
		{Name: "human-agency", Pattern: regexp.MustCompile(`(?i)\bhuman\s+agency(\s+and\s+identity)?\b`), Category: domain.CategoryHumanAgency},
	}
}

var defaultDetector = NewDetector(DefaultRules())

// Default returns the shared detector built from DefaultRules
func Default() *Detector {
	return defaultDetector
}

// Detect returns the category the utterance refers to, if any
func (d *Detector) Detect(utterance string) (domain.Category, bool) {
	if utterance == "" {
		return "", false
	}
	for _, r := range d.rules {
		m := r.Pattern.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		if r.Category != "" {
			return r.Category, true
		}
		if len(m) > 1 {
			if c, ok := domain.ParseCategory(m[1]); ok {
				return c, true
			}
		}
	}
	return "", false
}

// Rules lists rule names in evaluation order
func (d *Detector) Rules() []string {
	names := make([]string, len(d.rules))
	for i, r := range d.rules {
		names[i] = r.Name
	}
	return names
}
