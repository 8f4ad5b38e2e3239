package entities

// CompatibilityLevel is the graded verdict of fitment between a
// machine model and a part.
type CompatibilityLevel string

const (
	LevelPerfect       CompatibilityLevel = "perfect"
	LevelCompatible    CompatibilityLevel = "compatible"
	LevelCheckSpecs    CompatibilityLevel = "check_specs"
	LevelNotCompatible CompatibilityLevel = "not_compatible"
)

// Fits reports whether the level counts as a usable fit.
func (l CompatibilityLevel) Fits() bool {
	return l == LevelPerfect || l == LevelCompatible
}

// Valid reports whether l is one of the known levels.
func (l CompatibilityLevel) Valid() bool {
	switch l {
	case LevelPerfect, LevelCompatible, LevelCheckSpecs, LevelNotCompatible:
		return true
	}
	return false
}

// CompatibilityEntry is a row of the compatibility matrix. At most one
// entry exists per (machine model, part) key; entries are curated by
// an external process and never mutated mid-request.
type CompatibilityEntry struct {
	MachineModelID  string             `json:"machine_model_id" db:"machine_model_id"`
	PartID          string             `json:"part_id" db:"part_id"`
	Level           CompatibilityLevel `json:"level" db:"compatibility_level"`
	ConfidenceScore int                `json:"confidence_score" db:"confidence_score"`
	IsOriginal      bool               `json:"is_original" db:"is_original"`
	Notes           string             `json:"notes,omitempty" db:"notes"`
}

// Verdict is the explainable answer to "is part P compatible with
// model M". Reason is derived text for humans; it must never be parsed
// as a machine-readable signal.
type Verdict struct {
	Compatible bool               `json:"compatible"`
	Level      CompatibilityLevel `json:"level"`
	Confidence int                `json:"confidence"`
	IsOriginal bool               `json:"is_original"`
	Reason     string             `json:"reason"`
}

// CompatiblePart is a suggestion row: a part joined with its
// compatibility attributes for a given model.
type CompatiblePart struct {
	Part       Part               `json:"part"`
	Level      CompatibilityLevel `json:"level"`
	Confidence int                `json:"confidence"`
	IsOriginal bool               `json:"is_original"`
	Notes      string             `json:"notes,omitempty"`
}
