package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("event not found")

// LLMRequestEventData is the metadata recorded for one LLM call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	CreatedAt time.Time
	LLMRequestEventData
}

// LLMUsage aggregates calls per model.
type LLMUsage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int64
	OutputTokens int64
}

// QueryOpts filters and pages event queries. Zero values disable a filter.
type QueryOpts struct {
	Limit   int       // max results
	After   int       // id > After
	Before  int       // id < Before
	From    time.Time // created_at >= From
	To      time.Time // created_at <= To
	Purpose string
}

// EventRepo records and reads LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	// QueryLLMEvents returns matching events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	// LLMUsageByModel totals calls and tokens per model, busiest first.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

type eventRepo struct {
	db  *sql.DB
	now func() time.Time
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

var eventSelectColumns = []string{
	"id", "created_at", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now().UTC()
	}
	return time.Now().UTC()
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := builder().Insert(llmEventsTable).
		Columns("created_at", "provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message").
		Values(r.clock(), data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := builder().Select(eventSelectColumns...).From(entsql.Table(llmEventsTable))
	if opts.After > 0 {
		sel.Where(entsql.GT("id", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("id", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UTC()))
	}
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	sel.OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	query, args := builder().Select(eventSelectColumns...).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	ev, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event #%d: %w", id, ErrNotFound)
	}
	return ev, err
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	query, args := builder().Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("success"), "successes"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(entsql.Table(llmEventsTable)).
		GroupBy("model").
		OrderBy(entsql.Desc("calls"), "model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		var successes, in, outTok sql.NullInt64
		if err := rows.Scan(&u.Model, &u.Calls, &successes, &in, &outTok); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		u.Failures = u.Calls - int(successes.Int64)
		u.InputTokens = in.Int64
		u.OutputTokens = outTok.Int64
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*LLMRequestEvent, error) {
	var ev LLMRequestEvent
	err := s.Scan(
		&ev.ID, &ev.CreatedAt, &ev.Provider, &ev.Model, &ev.Purpose,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &ev.Success, &ev.ErrorMessage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	return &ev, nil
}
