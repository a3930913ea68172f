package lessongen

import (
	"maps"
	"slices"

	"github.com/abhisek/lessonarcade/internal/llm"
)

// LessonPlanSchema is the structured output contract for a generated plan.
// Every object lists all of its properties as required and forbids extras so
// the same definition works with strict structured-output modes.
var LessonPlanSchema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A themed, game-based lesson plan with chronology, quiz, fastest finger and info slides",
	Definition: object(map[string]any{
		"topic": str("The lesson topic"),
		"theme": object(map[string]any{
			"pointName": str("A creative single-word name for points that fits the topic"),
			"titles": array(object(map[string]any{
				"threshold": number("Score needed for this rank: 0, 1000, 2000, 3000 or 4000"),
				"name":      str("Thematic rank name"),
			}), 1, 0),
			"colorScheme": object(map[string]any{
				"primary":    str("Hex color, e.g. #1E3A8A"),
				"secondary":  str("Hex color"),
				"accent":     str("Hex color"),
				"background": str("Dark hex background color"),
				"text":       str("Hex text color readable on the background"),
			}),
			"fonts": object(map[string]any{
				"display": str("Heading font family"),
				"body":    str("Body text font family"),
			}),
		}),
		"chronology": object(map[string]any{
			"items": array(object(map[string]any{
				"id":   integer("Position of the event in the correct order, starting at 1"),
				"text": str("Short description of the event"),
			}), 1, 0),
		}),
		"quiz": object(map[string]any{
			"questions": array(object(map[string]any{
				"question":      str("The question text"),
				"options":       array(str(""), 2, 0),
				"correctAnswer": str("Must exactly match one of the options"),
			}), 1, 0),
		}),
		"fastestFinger": object(map[string]any{
			"concepts": array(object(map[string]any{
				"id":       integer("Unique concept id"),
				"name":     str("Person, idea or thing from the content"),
				"keywords": array(str(""), 1, 0),
			}), 0, 0),
		}),
		"infoSlides": array(object(map[string]any{
			"title":      str("Slide heading"),
			"paragraphs": array(str(""), 1, 0),
		}), 2, 0),
	}),
}

// PostedPlanSchema type-checks a plan document supplied by a client. It is
// LessonPlanSchema without required, additionalProperties or item bounds;
// the content rules live in lessonplan.Validate so every host agrees.
var PostedPlanSchema = &llm.Schema{
	Name:        "posted-lesson-plan",
	Description: LessonPlanSchema.Description,
	Definition:  relax(LessonPlanSchema.Definition),
}

func relax(schema map[string]any) map[string]any {
	out := make(map[string]any, len(schema))
	for k, v := range schema {
		switch k {
		case "required", "additionalProperties", "minItems", "maxItems":
		case "properties":
			props := make(map[string]any)
			for name, p := range v.(map[string]any) {
				props[name] = relax(p.(map[string]any))
			}
			out[k] = props
		case "items":
			out[k] = relax(v.(map[string]any))
		default:
			out[k] = v
		}
	}
	return out
}

func object(props map[string]any) map[string]any {
	required := make([]any, 0, len(props))
	for _, name := range slices.Sorted(maps.Keys(props)) {
		required = append(required, name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func array(items map[string]any, minItems, maxItems int) map[string]any {
	a := map[string]any{
		"type":  "array",
		"items": items,
	}
	if minItems > 0 {
		a["minItems"] = minItems
	}
	if maxItems > 0 {
		a["maxItems"] = maxItems
	}
	return a
}

func str(description string) map[string]any {
	s := map[string]any{"type": "string"}
	if description != "" {
		s["description"] = description
	}
	return s
}

func number(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func integer(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}
