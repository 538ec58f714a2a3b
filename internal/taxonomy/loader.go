package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PackFile is the YAML schema for a taxonomy pack: extra tags and rules
// layered on top of the default taxonomy.
type PackFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Version     string         `yaml:"version"`
	Categories  []CategorySpec `yaml:"categories"`
}

type CategorySpec struct {
	Name string    `yaml:"name"`
	Tags []TagSpec `yaml:"tags"`
}

type TagSpec struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// PackInfo is a summary of a loaded pack for listing.
type PackInfo struct {
	Name        string
	Description string
	Version     string
	Enabled     bool
	Path        string
	TagCount    int
}

// LoadPacks reads all .yaml files from the packs directory and merges them
// into the base taxonomy. Pack tags are appended after the base tags of the
// same category; unknown categories are appended after the base categories.
// Files prefixed with underscore are disabled. A malformed pattern is fatal:
// the taxonomy must be fully compiled before the first request is served.
func LoadPacks(packsDir string, base *Taxonomy) (*Taxonomy, []PackInfo, error) {
	entries, err := os.ReadDir(packsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil, nil
		}
		return nil, nil, err
	}

	result := clone(base)
	var infos []PackInfo

	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}

		path := filepath.Join(packsDir, entry.Name())
		baseName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		enabled := !strings.HasPrefix(baseName, "_")

		pack, err := loadPack(path)
		if err != nil {
			return nil, nil, err
		}

		info := PackInfo{
			Name:        pack.Name,
			Description: pack.Description,
			Version:     pack.Version,
			Enabled:     enabled,
			Path:        path,
		}
		if info.Name == "" {
			info.Name = baseName
		}
		for _, c := range pack.Categories {
			info.TagCount += len(c.Tags)
		}
		infos = append(infos, info)

		if !enabled {
			continue
		}

		if err := mergePackInto(result, pack); err != nil {
			return nil, nil, fmt.Errorf("pack %s: %w", path, err)
		}
	}

	return result, infos, nil
}

func loadPack(path string) (*PackFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pack PackFile
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack %s: %w", path, err)
	}
	return &pack, nil
}

func mergePackInto(t *Taxonomy, pack *PackFile) error {
	for _, cs := range pack.Categories {
		tags := make([]Tag, 0, len(cs.Tags))
		for _, ts := range cs.Tags {
			if len(ts.Patterns) == 0 {
				return fmt.Errorf("tag %q has no patterns", ts.Name)
			}
			rules := make([]Rule, 0, len(ts.Patterns))
			for _, p := range ts.Patterns {
				rule, err := CompileRule(p)
				if err != nil {
					return fmt.Errorf("tag %q: %w", ts.Name, err)
				}
				rules = append(rules, rule)
			}
			tags = append(tags, Tag{Name: ts.Name, Rules: rules})
		}

		merged := false
		for i := range t.Categories {
			if t.Categories[i].Name == cs.Name {
				t.Categories[i].Tags = append(t.Categories[i].Tags, tags...)
				merged = true
				break
			}
		}
		if !merged {
			t.Categories = append(t.Categories, Category{Name: cs.Name, Tags: tags})
		}
	}
	return nil
}

func clone(t *Taxonomy) *Taxonomy {
	out := &Taxonomy{Categories: make([]Category, len(t.Categories))}
	for i, c := range t.Categories {
		tags := make([]Tag, len(c.Tags))
		copy(tags, c.Tags)
		out.Categories[i] = Category{Name: c.Name, Tags: tags}
	}
	return out
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
