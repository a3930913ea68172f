package lessonplan

import (
	_ "embed"
	"encoding/json"
)

//go:embed sample.json
var sampleJSON []byte

// SampleJSON returns the raw embedded demonstration plan.
func SampleJSON() []byte {
	out := make([]byte, len(sampleJSON))
	copy(out, sampleJSON)
	return out
}

// Sample returns a fresh copy of the embedded demonstration plan.
func Sample() *LessonPlan {
	var p LessonPlan
	if err := json.Unmarshal(sampleJSON, &p); err != nil {
		panic("lessonplan: embedded sample is invalid: " + err.Error())
	}
	return &p
}
