package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt. Every backend (Gemini,
// OpenAI, Anthropic, OpenRouter, mock) and every decorator implements it.
type Provider interface {
	// Generate sends req and returns the model output. With a Schema set,
	// Content is JSON that validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is one prompt. Lesson generation sends a system prompt plus a
// single user message describing the topic and source material.
type Request struct {
	System   string
	Messages []Message

	// Schema selects the backend's structured output mode. Without it the
	// raw text is returned as a JSON string.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero means deterministic.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is the JSON shape expected back, e.g. the lesson plan.
type Schema struct {
	// Name is kebab-case ("lesson-plan"). Anthropic uses it as the tool
	// name and OpenAI as the schema name.
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that actually served the request
	StopReason string // StopEnd or StopMaxTokens
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
