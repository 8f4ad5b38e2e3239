package entities

import (
	"time"
)

// SearchAction is the logical action an analytics event records.
// Autocomplete calls are never recorded.
type SearchAction string

const (
	ActionSearchExecuted SearchAction = "search_executed"
	ActionPartClicked    SearchAction = "part_clicked"
	ActionOrderConverted SearchAction = "order_converted"
)

// SearchEvent is an append-only search analytics fact. Written once,
// never read back by the engine; consumed only by offline analysis.
type SearchEvent struct {
	ID             string       `json:"id" db:"id"`
	Action         SearchAction `json:"action" db:"action"`
	QueryText      string       `json:"query_text" db:"query_text"`
	MachineTypeID  *string      `json:"machine_type_id,omitempty" db:"machine_type_id"`
	ManufacturerID *string      `json:"manufacturer_id,omitempty" db:"manufacturer_id"`
	MachineModelID *string      `json:"machine_model_id,omitempty" db:"machine_model_id"`
	SymptomID      *string      `json:"symptom_id,omitempty" db:"symptom_id"`
	CategoryID     *string      `json:"category_id,omitempty" db:"category_id"`
	ResultsCount   int          `json:"results_count" db:"results_count"`
	ClickedPartID  *string      `json:"clicked_part_id,omitempty" db:"clicked_part_id"`
	Converted      bool         `json:"converted" db:"converted"`
	SessionID      string       `json:"session_id,omitempty" db:"session_id"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}
