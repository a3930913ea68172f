package lessongen

import "strings"

// Request is what the learner types into the setup form.
type Request struct {
	Topic      string `json:"topic"`
	Content    string `json:"content"`
	GradeLevel string `json:"gradeLevel"`
}

// Validate reports ErrInvalidInput when any field is blank.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" ||
		strings.TrimSpace(r.Content) == "" ||
		strings.TrimSpace(r.GradeLevel) == "" {
		return ErrInvalidInput
	}
	return nil
}

func (r Request) trimmed() Request {
	return Request{
		Topic:      strings.TrimSpace(r.Topic),
		Content:    strings.TrimSpace(r.Content),
		GradeLevel: strings.TrimSpace(r.GradeLevel),
	}
}
