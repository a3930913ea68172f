package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const llmEventsTable = "llm_request_events"

var (
	llmEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}

	llmEventsSchema = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_created_at", Columns: []*schema.Column{llmEventColumns[1]}},
			{Name: "llmrequestevent_model", Columns: []*schema.Column{llmEventColumns[3]}},
		},
	}

	tables = []*schema.Table{llmEventsSchema}
)
