package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Structure(t *testing.T) {
	tax := Default()

	wantCategories := []string{
		CategoryContentWarning, CategoryViolation, CategoryQuality, CategorySafety,
	}
	if len(tax.Categories) != len(wantCategories) {
		t.Fatalf("expected %d categories, got %d", len(wantCategories), len(tax.Categories))
	}
	for i, name := range wantCategories {
		if tax.Categories[i].Name != name {
			t.Errorf("category %d: expected %s, got %s", i, name, tax.Categories[i].Name)
		}
	}

	wantTags := map[string][]string{
		CategoryContentWarning: {"NSFW", "Violence", "Sensitive", "Spoiler"},
		CategoryViolation:      {"Harassment", "Hate Speech", "Misinformation"},
		CategoryQuality:        {"Spam", "Low Quality"},
		CategorySafety:         {"Self Harm", "Doxxing"},
	}
	for _, cat := range tax.Categories {
		want := wantTags[cat.Name]
		if len(cat.Tags) != len(want) {
			t.Fatalf("category %s: expected %d tags, got %d", cat.Name, len(want), len(cat.Tags))
		}
		for i, tagName := range want {
			if cat.Tags[i].Name != tagName {
				t.Errorf("category %s tag %d: expected %s, got %s", cat.Name, i, tagName, cat.Tags[i].Name)
			}
			if len(cat.Tags[i].Rules) == 0 {
				t.Errorf("tag %s has no rules", tagName)
			}
		}
	}
}

func TestRepeatRule(t *testing.T) {
	rule := repeatRule{minRun: 11}

	tests := []struct {
		text string
		want bool
	}{
		{"aaaaaaaaaaa", true},       // exactly 11
		{"aaaaaaaaaa", false},       // 10 is below the threshold
		{"hello aaaaaaaaaaa!", true},
		{"abababababababab", false}, // alternating, no run
		{"", false},
	}

	for _, tt := range tests {
		if got := rule.Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCompileRule_CaseInsensitive(t *testing.T) {
	rule, err := CompileRule(`\bhello\b`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rule.Matches("well HELLO there") {
		t.Error("expected case-insensitive match")
	}
}

func TestCompileRule_Malformed(t *testing.T) {
	if _, err := CompileRule(`([`); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestLoadPacks_MergesIntoBase(t *testing.T) {
	dir := t.TempDir()
	pack := `name: extra
version: "0.1"
categories:
  - name: Quality
    tags:
      - name: Clickbait
        patterns:
          - "you won'?t believe"
  - name: Regional
    tags:
      - name: Blocked Terms
        patterns:
          - "\\bfoobar\\b"
`
	if err := os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(pack), 0600); err != nil {
		t.Fatal(err)
	}

	tax, infos, err := LoadPacks(dir, Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(infos) != 1 || infos[0].Name != "extra" || !infos[0].Enabled {
		t.Fatalf("unexpected pack infos: %+v", infos)
	}

	var quality *Category
	for i := range tax.Categories {
		if tax.Categories[i].Name == CategoryQuality {
			quality = &tax.Categories[i]
		}
	}
	if quality == nil {
		t.Fatal("Quality category missing")
	}
	if got := quality.Tags[len(quality.Tags)-1].Name; got != "Clickbait" {
		t.Errorf("expected Clickbait appended to Quality, got %s", got)
	}

	last := tax.Categories[len(tax.Categories)-1]
	if last.Name != "Regional" {
		t.Errorf("expected new category Regional appended, got %s", last.Name)
	}
}

func TestLoadPacks_DisabledPack(t *testing.T) {
	dir := t.TempDir()
	pack := `name: off
categories:
  - name: Quality
    tags:
      - name: Extra
        patterns: ["extra"]
`
	if err := os.WriteFile(filepath.Join(dir, "_off.yaml"), []byte(pack), 0600); err != nil {
		t.Fatal(err)
	}

	base := Default()
	baseQualityTags := len(base.Categories[2].Tags)

	tax, infos, err := LoadPacks(dir, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 1 || infos[0].Enabled {
		t.Fatalf("expected one disabled pack, got %+v", infos)
	}
	if got := len(tax.Categories[2].Tags); got != baseQualityTags {
		t.Errorf("disabled pack must not merge: expected %d tags, got %d", baseQualityTags, got)
	}
}

func TestLoadPacks_MalformedPatternIsFatal(t *testing.T) {
	dir := t.TempDir()
	pack := `name: broken
categories:
  - name: Quality
    tags:
      - name: Bad
        patterns: ["(["]
`
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(pack), 0600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadPacks(dir, Default()); err == nil {
		t.Error("expected error for malformed pack pattern")
	}
}

func TestLoadPacks_MissingDir(t *testing.T) {
	base := Default()
	tax, infos, err := LoadPacks(filepath.Join(t.TempDir(), "nope"), base)
	if err != nil {
		t.Fatalf("missing packs dir must not be an error: %v", err)
	}
	if tax != base || infos != nil {
		t.Error("expected base taxonomy unchanged")
	}
}

func TestLoadPacks_DoesNotMutateBase(t *testing.T) {
	dir := t.TempDir()
	pack := `categories:
  - name: Quality
    tags:
      - name: Extra
        patterns: ["extra"]
`
	if err := os.WriteFile(filepath.Join(dir, "p.yaml"), []byte(pack), 0600); err != nil {
		t.Fatal(err)
	}

	base := Default()
	before := len(base.Categories[2].Tags)

	if _, _, err := LoadPacks(dir, base); err != nil {
		t.Fatal(err)
	}
	if got := len(base.Categories[2].Tags); got != before {
		t.Errorf("base taxonomy mutated: %d tags, want %d", got, before)
	}
}
