package entities

import (
	"encoding/json"
	"time"
)

// SavedSearch is a named snapshot of a search session or raw
// structured query, owned by a customer. Created on explicit save,
// deleted by the owner, never auto-expired.
type SavedSearch struct {
	ID         string          `json:"id" db:"id"`
	CustomerID string          `json:"customer_id" db:"customer_id"`
	Name       string          `json:"name,omitempty" db:"name"`
	Query      json.RawMessage `json:"query" db:"query"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
