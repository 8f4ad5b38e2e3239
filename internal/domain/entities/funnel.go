package entities

// FunnelStep is one of the five fixed guided-search steps, in order.
type FunnelStep int

const (
	StepMachineType FunnelStep = iota + 1
	StepManufacturer
	StepModel
	StepSymptom
	StepCategory
)

// Valid reports whether s is a defined funnel step.
func (s FunnelStep) Valid() bool {
	return s >= StepMachineType && s <= StepCategory
}

func (s FunnelStep) String() string {
	switch s {
	case StepMachineType:
		return "machine_type"
	case StepManufacturer:
		return "manufacturer"
	case StepModel:
		return "model"
	case StepSymptom:
		return "symptom"
	case StepCategory:
		return "category"
	}
	return "unknown"
}

// ScopeGlobal marks a candidate visible under any scope at its step,
// like a manufacturer not tied to one machine type.
const ScopeGlobal = "_global"

// Candidate is a single autocomplete suggestion for a funnel step.
// ScopeID is the parent dimension that narrows the candidate: the
// machine type for manufacturers, the manufacturer for models. Empty
// means globally visible at its step.
type Candidate struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	LocalizedName   string     `json:"localized_name,omitempty"`
	PopularityScore float64    `json:"popularity_score"`
	Step            FunnelStep `json:"step"`
	ScopeID         string     `json:"scope_id,omitempty"`
}

// ParsedIntent is the structured interpretation of a free-text query.
// Absent dimensions are nil; Confidence is the fixed weighted sum of
// the resolved dimensions (0..80).
type ParsedIntent struct {
	MachineType  *MachineType    `json:"machine_type,omitempty"`
	Manufacturer *Manufacturer   `json:"manufacturer,omitempty"`
	Symptom      *SymptomMapping `json:"symptom,omitempty"`
	Confidence   int             `json:"confidence"`
}

// SearchSession is the caller-held record of resolved funnel steps.
// The engine never persists it; it only travels inside saved searches
// and analytics events.
type SearchSession struct {
	MachineTypeID  *string `json:"machine_type_id,omitempty"`
	ManufacturerID *string `json:"manufacturer_id,omitempty"`
	MachineModelID *string `json:"machine_model_id,omitempty"`
	SymptomID      *string `json:"symptom_id,omitempty"`
	CategoryID     *string `json:"category_id,omitempty"`
}
