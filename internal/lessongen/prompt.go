package lessongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert instructional designer creating an interactive, game-based learning module. You answer with a single JSON object and nothing else.`

func buildUserMessage(r Request) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %q\n", r.Topic))
	b.WriteString(fmt.Sprintf("Grade Level: %q\n", r.GradeLevel))
	b.WriteString("Content:\n---\n")
	b.WriteString(r.Content)
	b.WriteString("\n---\n")

	b.WriteString(`
Instructions:
1. Base everything strictly on the content above. Do not add outside information.
2. Theme:
   - pointName: a creative single-word name for points that fits the topic (e.g. "Denarius" for Romans).
   - titles: exactly 5 thematic rank titles from lowest to highest, with thresholds 0, 1000, 2000, 3000 and 4000.
   - colorScheme: hex codes (#RRGGBB) for primary, secondary, accent, background and text. The background must be dark and the text must stay readable on it.
   - fonts: a display font and a body font. Prefer widely available, web-safe families.
3. Chronology: extract 5-7 key events in the order they happened. Number the ids 1, 2, 3 ... in that order.
4. Quiz: write 3-5 multiple-choice questions in language suited to the grade level. Give each exactly 4 options and vary the length of correct and incorrect options so length does not give the answer away. correctAnswer must match one option exactly.
5. Fastest Finger: identify 4-6 core concepts (people, ideas, places). Give each a unique id and 4-5 keywords that clearly belong to it and to no other concept.
6. Info slides: write exactly 2 short slides. The first introduces the chronology activity, the second introduces the quiz. Each has a title and one or more paragraphs.`)

	return b.String()
}
