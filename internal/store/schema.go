package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableItemSettings = "item_settings"
	tableExplanations = "explanations"
	tableLLMRequests  = "llm_request_events"
)

var (
	itemSettingsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "position", Type: field.TypeInt},
		{Name: "enabled", Type: field.TypeBool, Default: true},
		{Name: "times", Type: field.TypeInt, Default: 0},
		{Name: "right_count", Type: field.TypeInt, Default: 0},
		{Name: "wrong_count", Type: field.TypeInt, Default: 0},
		{Name: "updated_at", Type: field.TypeTime},
	}
	itemSettingsTable = &schema.Table{
		Name:       tableItemSettings,
		Columns:    itemSettingsColumns,
		PrimaryKey: []*schema.Column{itemSettingsColumns[0]},
	}

	explanationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "element_id", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "explanation", Type: field.TypeString, Size: 2147483647},
		{Name: "mnemonic", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	explanationsTable = &schema.Table{
		Name:       tableExplanations,
		Columns:    explanationsColumns,
		PrimaryKey: []*schema.Column{explanationsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "explanation_element_id_model",
				Unique:  true,
				Columns: []*schema.Column{explanationsColumns[1], explanationsColumns[2]},
			},
		},
	}

	llmRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	llmRequestsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    llmRequestsColumns,
		PrimaryKey: []*schema.Column{llmRequestsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequest_model", Columns: []*schema.Column{llmRequestsColumns[4]}},
		},
	}

	// Tables is the full schema, in creation order.
	Tables = []*schema.Table{
		itemSettingsTable,
		explanationsTable,
		llmRequestsTable,
	}
)
