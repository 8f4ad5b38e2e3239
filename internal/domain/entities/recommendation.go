package entities

// AnchorKind identifies what a recommendation list is computed
// relative to: a part or a machine model.
type AnchorKind string

const (
	AnchorPart  AnchorKind = "part"
	AnchorModel AnchorKind = "model"
)

// Valid reports whether k is a known anchor kind.
func (k AnchorKind) Valid() bool {
	return k == AnchorPart || k == AnchorModel
}

// FrequentlyBoughtTogether is a directional co-purchase fact. The
// frequency score is an externally maintained aggregate the engine
// treats as opaque.
type FrequentlyBoughtTogether struct {
	AnchorID       string     `json:"anchor_id" db:"anchor_id"`
	AnchorKind     AnchorKind `json:"anchor_kind" db:"anchor_kind"`
	RelatedID      string     `json:"related_id" db:"related_part_id"`
	FrequencyScore float64    `json:"frequency_score" db:"frequency_score"`
}

// Recommendation is a ranked co-purchase candidate with a templated
// human-readable reason.
type Recommendation struct {
	Part           *Part   `json:"part"`
	FrequencyScore float64 `json:"frequency_score"`
	Reason         string  `json:"reason"`
}
