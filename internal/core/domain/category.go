package domain

import (
	"strconv"
	"strings"
)

// Category identifies one of the seven Digital Responsibility Goals (DRGs).
// The set is closed: codes outside "1".."7" never form a category bucket.
type Category string

const (
	CategoryDigitalLiteracy Category = "1"
	CategoryCybersecurity   Category = "2"
	CategoryPrivacy         Category = "3"
	CategoryDataFairness    Category = "4"
	CategoryAlgorithms      Category = "5"
	CategoryTransparency    Category = "6"
	CategoryHumanAgency     Category = "7"
)

// Categories lists the fixed categories in code order.
var Categories = []Category{
	CategoryDigitalLiteracy,
	CategoryCybersecurity,
	CategoryPrivacy,
	CategoryDataFairness,
	CategoryAlgorithms,
	CategoryTransparency,
	CategoryHumanAgency,
}

var categoryNames = map[Category]string{
	CategoryDigitalLiteracy: "Digital Literacy",
	CategoryCybersecurity:   "Cybersecurity",
	CategoryPrivacy:         "Privacy",
	CategoryDataFairness:    "Data Fairness",
	CategoryAlgorithms:      "Trustworthy Algorithms",
	CategoryTransparency:    "Transparency",
	CategoryHumanAgency:     "Human Agency & Identity",
}

// IsValid returns true if the category is one of the seven fixed codes
func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Name returns the display name, or "" for unknown codes
func (c Category) Name() string {
	return categoryNames[c]
}

// Label returns the short "DRG<n>" form used in prompts and badges
func (c Category) Label() string {
	return "DRG" + string(c)
}

// ParseCategory normalises user or CSV supplied codes such as "3", " 3 ",
// "DRG3", "drg 3" or "DRG #3". The boolean is false when the result is not
// one of the fixed categories.
func ParseCategory(raw string) (Category, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "drg")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSpace(s)

	n, err := strconv.Atoi(s)
	if err != nil {
		return Category(strings.TrimSpace(raw)), false
	}
	c := Category(strconv.Itoa(n))
	return c, c.IsValid()
}

// DefaultCategorySummaries returns the built-in one-line summary per category.
// A fresh map is returned on every call.
func DefaultCategorySummaries() map[Category]string {
	return map[Category]string{
		CategoryDigitalLiteracy: "Digital Literacy: Prerequisite for sovereign, self-determined use of digital tech; competent access and skills.",
		CategoryCybersecurity:   "Cybersecurity: Protects systems and users/data across lifecycle; prerequisite for responsible operation.",
		CategoryPrivacy:         "Privacy: Human dignity and self-determination; purpose limitation and data minimization; control and accountability.",
		CategoryDataFairness:    "Data Fairness: Protect non-personal data, enable transfer/applicability; balanced cooperation in ecosystems.",
		CategoryAlgorithms:      "Trustworthy Algorithms: Data processing must be trustworthy from simple to autonomous systems.",
		CategoryTransparency:    "Transparency: Proactive transparency of principles, solutions, and components for all stakeholders.",
		CategoryHumanAgency:     "Human Agency & Identity: Protect identity, preserve human responsibility; human-centered, inclusive, ethical, sustainable.",
	}
}
