package domain

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw   string
		want  Category
		valid bool
	}{
		{"3", CategoryPrivacy, true},
		{" 3 ", CategoryPrivacy, true},
		{"DRG3", CategoryPrivacy, true},
		{"drg 7", CategoryHumanAgency, true},
		{"DRG #2", CategoryCybersecurity, true},
		{"03", CategoryPrivacy, true},
		{"8", Category("8"), false},
		{"0", Category("0"), false},
		{"", Category(""), false},
		{"privacy", Category("privacy"), false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseCategory(tt.raw)
			if got != tt.want || ok != tt.valid {
				t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.valid)
			}
		})
	}
}

func TestCategories_AreSevenAndValid(t *testing.T) {
	if len(Categories) != 7 {
		t.Fatalf("expected 7 categories, got %d", len(Categories))
	}
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("category %s should be valid", c)
		}
		if c.Name() == "" {
			t.Errorf("category %s should have a name", c)
		}
	}
	if CategoryPrivacy.Label() != "DRG3" {
		t.Errorf("unexpected label %s", CategoryPrivacy.Label())
	}
}

func TestDefaultCategorySummaries(t *testing.T) {
	a := DefaultCategorySummaries()
	if len(a) != 7 {
		t.Fatalf("expected 7 summaries, got %d", len(a))
	}
	a[CategoryPrivacy] = "changed"
	if DefaultCategorySummaries()[CategoryPrivacy] == "changed" {
		t.Error("expected a fresh map per call")
	}
}
