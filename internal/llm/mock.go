package llm

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. It returns canned responses in
// FIFO order, then Fallback forever if set, and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Fallback  *MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewSampleProvider always answers with the embedded demonstration lesson
// plan. It backs the "mock" provider so the game runs without an API key.
func NewSampleProvider() *MockProvider {
	return &MockProvider{Fallback: &MockResponse{Content: lessonplan.SampleJSON()}}
}

// Generate returns the next canned response, or ErrProviderUnavailable once
// the queue is drained and there is no fallback.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Fallback != nil:
		resp = *m.Fallback
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
