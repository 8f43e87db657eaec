// Package lesson describes the educational content units the app presents.
//
// Content records are plain data. The frame loop only ever sees a lesson's
// ID, as the activity identifier in simulation state; everything else is
// carried for whoever displays the lesson.
package lesson

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("lesson: invalid content")

// ElementType is the kind of an interactive element.
type ElementType int

const (
	ElementText ElementType = iota
	ElementImage
	ElementButton
	ElementQuiz
	ElementVideo
)

var elementNames = [...]string{"text", "image", "button", "quiz", "video"}

// String returns the lower-case name used in YAML.
func (t ElementType) String() string {
	if t < 0 || int(t) >= len(elementNames) {
		return fmt.Sprintf("element(%d)", int(t))
	}
	return elementNames[t]
}

// ParseElementType parses a name case-insensitively.
func ParseElementType(s string) (ElementType, error) {
	for i, name := range elementNames {
		if strings.EqualFold(s, name) {
			return ElementType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown element type %q", ErrInvalid, s)
}

// MarshalYAML writes the type by name.
func (t ElementType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML reads the type by name.
func (t *ElementType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseElementType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Position is a point in viewport coordinates.
type Position struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Element is one interactive piece of a lesson.
type Element struct {
	Type     ElementType `yaml:"type"`
	Position Position    `yaml:"position"`
	Data     string      `yaml:"data"`
}

// Criteria decides when a lesson counts as complete.
type Criteria struct {
	RequiredInteractions uint32   `yaml:"required_interactions"`
	TimeSpentMinimum     float32  `yaml:"time_spent_minimum"`             // seconds
	QuizScoreThreshold   *float32 `yaml:"quiz_score_threshold,omitempty"` // 0.0 - 1.0
}

// Content is a single lesson.
type Content struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Media       []string  `yaml:"media,omitempty"`
	Elements    []Element `yaml:"elements,omitempty"`
	Completion  Criteria  `yaml:"completion"`
}

// New creates a lesson with no media, no elements and zero criteria.
func New(id, title, description string) Content {
	return Content{
		ID:          id,
		Title:       title,
		Description: description,
	}
}

// AddMedia appends an asset path.
func (c *Content) AddMedia(path string) {
	c.Media = append(c.Media, path)
}

// AddElement appends an interactive element.
func (c *Content) AddElement(e Element) {
	c.Elements = append(c.Elements, e)
}

// Validate checks the lesson can be used as an activity.
func (c Content) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalid)
	}
	if c.Completion.TimeSpentMinimum < 0 {
		return fmt.Errorf("%w: %s: negative time_spent_minimum %v", ErrInvalid, c.ID, c.Completion.TimeSpentMinimum)
	}
	if q := c.Completion.QuizScoreThreshold; q != nil && (*q < 0 || *q > 1) {
		return fmt.Errorf("%w: %s: quiz_score_threshold %v outside [0, 1]", ErrInvalid, c.ID, *q)
	}
	for i, e := range c.Elements {
		if e.Type < ElementText || e.Type > ElementVideo {
			return fmt.Errorf("%w: %s: element %d has type %v", ErrInvalid, c.ID, i, e.Type)
		}
	}
	return nil
}
