package lessonplan

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPlan is matched by every plan validation failure.
var ErrInvalidPlan = errors.New("invalid lesson plan")

// ValidationError describes the first check a plan failed.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidPlan }

// Validator inspects a plan and reports the first problem it finds.
type Validator interface {
	Name() string
	Validate(p *LessonPlan) *ValidationError
}

// DefaultValidators returns the standard chain. Order matters: later
// validators assume the earlier structural checks passed.
func DefaultValidators() []Validator {
	return []Validator{
		&StructureValidator{},
		&ThemeValidator{},
		&QuizValidator{},
		&ChronologyValidator{},
		&ConceptValidator{},
		&SlideValidator{},
	}
}

// Validate runs the default validator chain and returns the first failure.
func Validate(p *LessonPlan) error {
	return ValidateWith(p, DefaultValidators())
}

// ValidateWith runs validators in order, stopping at the first failure.
func ValidateWith(p *LessonPlan, validators []Validator) error {
	if p == nil {
		return &ValidationError{Validator: "structure", Message: "plan is nil"}
	}
	for _, v := range validators {
		if verr := v.Validate(p); verr != nil {
			return verr
		}
	}
	return nil
}

// StructureValidator rejects plans missing a topic or any quiz questions.
type StructureValidator struct{}

func (v *StructureValidator) Name() string { return "structure" }

func (v *StructureValidator) Validate(p *LessonPlan) *ValidationError {
	if p.Topic == "" {
		return &ValidationError{Validator: v.Name(), Message: "topic is empty"}
	}
	if len(p.Quiz.Questions) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "quiz has no questions"}
	}
	return nil
}

// ThemeValidator requires a point name and a non-empty title table.
type ThemeValidator struct{}

func (v *ThemeValidator) Name() string { return "theme" }

func (v *ThemeValidator) Validate(p *LessonPlan) *ValidationError {
	if p.Theme.PointName == "" {
		return &ValidationError{Validator: v.Name(), Message: "theme.pointName is empty"}
	}
	if len(p.Theme.Titles) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "theme.titles is empty"}
	}
	for i, t := range p.Theme.Titles {
		if t.Name == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("title %d has no name", i)}
		}
	}
	return nil
}

// QuizValidator checks every question has distinct, non-empty options and a
// correct answer among them.
type QuizValidator struct{}

func (v *QuizValidator) Name() string { return "quiz" }

func (v *QuizValidator) Validate(p *LessonPlan) *ValidationError {
	for i, q := range p.Quiz.Questions {
		if q.Question == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d has no text", i)}
		}
		if len(q.Options) < 2 {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d has fewer than 2 options", i)}
		}
		seen := make(map[string]bool, len(q.Options))
		for j, o := range q.Options {
			if o == "" {
				return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d: option %d is empty", i, j)}
			}
			if seen[o] {
				return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d: duplicate option %q", i, o)}
			}
			seen[o] = true
		}
		if !seen[q.CorrectAnswer] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: correctAnswer %q is not one of the options", i, q.CorrectAnswer),
			}
		}
	}
	return nil
}

// ChronologyValidator requires at least one item and unique ids.
type ChronologyValidator struct{}

func (v *ChronologyValidator) Name() string { return "chronology" }

func (v *ChronologyValidator) Validate(p *LessonPlan) *ValidationError {
	if len(p.Chronology.Items) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "chronology has no items"}
	}
	seen := make(map[int]bool, len(p.Chronology.Items))
	for _, it := range p.Chronology.Items {
		if seen[it.ID] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate item id %d", it.ID)}
		}
		seen[it.ID] = true
	}
	return nil
}

// ConceptValidator checks concept ids are unique and each concept has keywords.
// Fewer than three concepts is allowed; the game skips that activity.
type ConceptValidator struct{}

func (v *ConceptValidator) Name() string { return "fastest-finger" }

func (v *ConceptValidator) Validate(p *LessonPlan) *ValidationError {
	seen := make(map[int]bool, len(p.FastestFinger.Concepts))
	for _, c := range p.FastestFinger.Concepts {
		if seen[c.ID] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate concept id %d", c.ID)}
		}
		seen[c.ID] = true
		if c.Name == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("concept %d has no name", c.ID)}
		}
		if len(c.Keywords) == 0 {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("concept %d has no keywords", c.ID)}
		}
	}
	return nil
}

// SlideValidator requires the two info slides the flow consumes.
type SlideValidator struct{}

func (v *SlideValidator) Name() string { return "slides" }

func (v *SlideValidator) Validate(p *LessonPlan) *ValidationError {
	if len(p.InfoSlides) < RequiredSlides {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("need %d info slides, got %d", RequiredSlides, len(p.InfoSlides)),
		}
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHexColor reports whether s is a #RRGGBB color.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}
