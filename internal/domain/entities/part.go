package entities

// Part is a read-only projection of a replacement part owned by the
// commerce store.
type Part struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	CategoryID string   `json:"category_id" db:"category_id"`
	OEMNumbers []string `json:"oem_numbers,omitempty" db:"-"`
	IsActive   bool     `json:"is_active" db:"is_active"`
}
