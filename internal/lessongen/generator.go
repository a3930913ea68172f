package lessongen

import (
	"context"
	"fmt"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
	"github.com/abhisek/lessonarcade/internal/llm"
	"github.com/abhisek/lessonarcade/internal/logger"
)

// Purpose tags generation requests in the LLM request log.
const Purpose = "lesson-plan"

// Generator turns a Request into a validated lesson plan.
type Generator struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewGenerator creates a Generator. A nil logger discards output.
func NewGenerator(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{provider: provider, cfg: cfg, log: log}
}

// Generate asks the model for a plan and ingests it. Incomplete input yields
// ErrInvalidInput without a model call. Every other failure is reported as a
// *GenerationError carrying only the generic message.
func (g *Generator) Generate(ctx context.Context, r Request) (*lessonplan.LessonPlan, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r = r.trimmed()

	plan, err := g.generate(ctx, r)
	if err != nil {
		g.log.Error("lesson plan generation failed",
			"topic", r.Topic,
			"grade", r.GradeLevel,
			"model", g.provider.ModelID(),
			"error", err,
		)
		return nil, failed(err)
	}

	g.log.Info("lesson plan generated",
		"topic", plan.Topic,
		"events", len(plan.Chronology.Items),
		"questions", len(plan.Quiz.Questions),
		"concepts", len(plan.FastestFinger.Concepts),
	)
	return plan, nil
}

func (g *Generator) generate(ctx context.Context, r Request) (*lessonplan.LessonPlan, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(r)},
		},
		Schema:      LessonPlanSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson plan generation: %w", err)
	}

	plan, err := lessonplan.Ingest(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("ingest lesson plan: %w", err)
	}
	return plan, nil
}
