package entities

// MachineType is the root of the machine taxonomy. Reference data,
// loaded by an external admin process and read-only for this engine.
type MachineType struct {
	ID              string  `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	LocalizedName   string  `json:"localized_name,omitempty" db:"localized_name"`
	PopularityScore float64 `json:"popularity_score" db:"popularity_score"`
}

// Manufacturer represents a machine manufacturer. A nil MachineTypeID
// means the manufacturer is global rather than scoped to one type.
type Manufacturer struct {
	ID              string  `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	Region          string  `json:"region,omitempty" db:"region"`
	MachineTypeID   *string `json:"machine_type_id,omitempty" db:"machine_type_id"`
	PopularityScore float64 `json:"popularity_score" db:"popularity_score"`
}

// MachineModel represents a concrete machine model. The validity
// window (YearFrom..YearTo) is explanatory only and is never applied
// as a hard filter unless the caller supplies a year.
type MachineModel struct {
	ID              string  `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	ManufacturerID  string  `json:"manufacturer_id" db:"manufacturer_id"`
	YearFrom        *int    `json:"year_from,omitempty" db:"year_from"`
	YearTo          *int    `json:"year_to,omitempty" db:"year_to"`
	Power           string  `json:"power,omitempty" db:"power"`
	Weight          string  `json:"weight,omitempty" db:"weight"`
	Specs           string  `json:"specs,omitempty" db:"specs"`
	PopularityScore float64 `json:"popularity_score" db:"popularity_score"`
}

// SymptomMapping bridges a plain-language complaint ("leaking oil")
// to a part category.
type SymptomMapping struct {
	ID              string  `json:"id" db:"id"`
	SymptomText     string  `json:"symptom_text" db:"symptom_text"`
	LocalizedText   string  `json:"localized_text,omitempty" db:"localized_text"`
	Category        string  `json:"category" db:"category"`
	Subcategory     string  `json:"subcategory,omitempty" db:"subcategory"`
	ConfidenceScore float64 `json:"confidence_score" db:"confidence_score"`
}

// PartCategory is a node in the part category tree. Only root
// categories (nil ParentID) are offered at the category funnel step.
type PartCategory struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	LocalizedName string  `json:"localized_name,omitempty" db:"localized_name"`
	ParentID      *string `json:"parent_id,omitempty" db:"parent_id"`
	Icon          string  `json:"icon,omitempty" db:"icon"`
}
