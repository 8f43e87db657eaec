package lesson

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/lessons.yaml
var defaultLessonsYAML []byte

// Catalog is an ordered set of lessons keyed by ID.
type Catalog struct {
	lessons []Content
	byID    map[string]int
}

type catalogFile struct {
	Lessons []Content `yaml:"lessons"`
}

// NewCatalog builds a catalog, rejecting invalid lessons and duplicate IDs.
func NewCatalog(lessons ...Content) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(lessons))}
	for _, l := range lessons {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalid, l.ID)
		}
		c.byID[l.ID] = len(c.lessons)
		c.lessons = append(c.lessons, l)
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("lesson: cannot parse catalog: %w", err)
	}
	return NewCatalog(f.Lessons...)
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultLessonsYAML)
	if err != nil {
		panic(fmt.Sprintf("lesson: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load loads the lesson catalog.
// Search order: customPath -> ~/.liberty/lessons.yaml -> ./configs/lessons.yaml -> embedded default
func Load(customPath string) (*Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("lesson: failed to read catalog %s: %w", customPath, err)
		}
		return Parse(data)
	}

	if home, err := os.UserHomeDir(); err == nil {
		if data, err := os.ReadFile(filepath.Join(home, ".liberty", "lessons.yaml")); err == nil {
			if c, err := Parse(data); err == nil {
				return c, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "lessons.yaml")); err == nil {
		if c, err := Parse(data); err == nil {
			return c, nil
		}
	}

	return Default(), nil
}

// Lookup returns the lesson with the given ID.
func (c *Catalog) Lookup(id string) (Content, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Content{}, false
	}
	return c.lessons[i], true
}

// List returns the lessons in catalog order.
func (c *Catalog) List() []Content {
	out := make([]Content, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}
