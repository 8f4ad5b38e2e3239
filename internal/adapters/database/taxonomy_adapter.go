package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/clients/postgres"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// TaxonomyAdapter implements TaxonomyRepository against Postgres.
type TaxonomyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTaxonomyAdapter creates a new taxonomy adapter
func NewTaxonomyAdapter(client *postgres.Client) repositories.TaxonomyRepository {
	return &TaxonomyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Suggest returns autocomplete candidates for a funnel step, ordered
// by popularity descending then name ascending.
func (a *TaxonomyAdapter) Suggest(ctx context.Context, step entities.FunnelStep, query, scopeID string, limit int) ([]*entities.Candidate, error) {
	switch step {
	case entities.StepMachineType:
		return a.suggestMachineTypes(ctx, query, limit)
	case entities.StepManufacturer:
		return a.suggestManufacturers(ctx, query, scopeID, limit)
	case entities.StepModel:
		return a.suggestModels(ctx, query, scopeID, limit)
	case entities.StepSymptom:
		return a.suggestSymptoms(ctx, query, limit)
	case entities.StepCategory:
		return a.suggestCategories(ctx, query, limit)
	}
	return nil, apperrors.NewValidationError(fmt.Sprintf("undefined funnel step %d", step))
}

func containsPattern(query string) string {
	return "%" + query + "%"
}

func (a *TaxonomyAdapter) suggestMachineTypes(ctx context.Context, query string, limit int) ([]*entities.Candidate, error) {
	ds := a.db.Select("id", "name", "localized_name", "popularity_score").
		From("machine_types")

	if query != "" {
		pattern := containsPattern(query)
		ds = ds.Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("localized_name").ILike(pattern),
		))
	}

	ds = ds.Order(goqu.I("popularity_score").Desc(), goqu.I("name").Asc()).
		Limit(uint(limit))

	return a.scanCandidates(ctx, ds, entities.StepMachineType)
}

func (a *TaxonomyAdapter) suggestManufacturers(ctx context.Context, query, machineTypeID string, limit int) ([]*entities.Candidate, error) {
	ds := a.db.Select("id", "name", goqu.V(nil).As("localized_name"), "popularity_score").
		From("manufacturers")

	if query != "" {
		ds = ds.Where(goqu.I("name").ILike(containsPattern(query)))
	}

	// Global manufacturers (no machine type scope) always qualify.
	if machineTypeID != "" {
		ds = ds.Where(goqu.Or(
			goqu.I("machine_type_id").Eq(machineTypeID),
			goqu.I("machine_type_id").IsNull(),
		))
	}

	ds = ds.Order(goqu.I("popularity_score").Desc(), goqu.I("name").Asc()).
		Limit(uint(limit))

	return a.scanCandidates(ctx, ds, entities.StepManufacturer)
}

func (a *TaxonomyAdapter) suggestModels(ctx context.Context, query, manufacturerID string, limit int) ([]*entities.Candidate, error) {
	ds := a.db.Select("id", "name", goqu.V(nil).As("localized_name"), "popularity_score").
		From("machine_models")

	if query != "" {
		ds = ds.Where(goqu.I("name").ILike(containsPattern(query)))
	}
	if manufacturerID != "" {
		ds = ds.Where(goqu.I("manufacturer_id").Eq(manufacturerID))
	}

	ds = ds.Order(goqu.I("popularity_score").Desc(), goqu.I("name").Asc()).
		Limit(uint(limit))

	return a.scanCandidates(ctx, ds, entities.StepModel)
}

func (a *TaxonomyAdapter) suggestSymptoms(ctx context.Context, query string, limit int) ([]*entities.Candidate, error) {
	// Symptoms rank by curation confidence, which plays the popularity role.
	ds := a.db.Select(
		"id",
		goqu.I("symptom_text").As("name"),
		goqu.I("localized_text").As("localized_name"),
		goqu.I("confidence_score").As("popularity_score"),
	).From("symptom_mappings")

	if query != "" {
		pattern := containsPattern(query)
		ds = ds.Where(goqu.Or(
			goqu.I("symptom_text").ILike(pattern),
			goqu.I("localized_text").ILike(pattern),
		))
	}

	ds = ds.Order(goqu.I("confidence_score").Desc(), goqu.I("symptom_text").Asc()).
		Limit(uint(limit))

	return a.scanCandidates(ctx, ds, entities.StepSymptom)
}

func (a *TaxonomyAdapter) suggestCategories(ctx context.Context, query string, limit int) ([]*entities.Candidate, error) {
	// Only root categories are offered at the category step.
	ds := a.db.Select("id", "name", "localized_name", goqu.V(0).As("popularity_score")).
		From("part_categories").
		Where(goqu.I("parent_id").IsNull())

	if query != "" {
		pattern := containsPattern(query)
		ds = ds.Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("localized_name").ILike(pattern),
		))
	}

	ds = ds.Order(goqu.I("name").Asc()).
		Limit(uint(limit))

	return a.scanCandidates(ctx, ds, entities.StepCategory)
}

func (a *TaxonomyAdapter) scanCandidates(ctx context.Context, ds *goqu.SelectDataset, step entities.FunnelStep) ([]*entities.Candidate, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build suggest query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to query taxonomy candidates", err)
	}
	defer rows.Close()

	candidates := []*entities.Candidate{}
	for rows.Next() {
		c := &entities.Candidate{Step: step}
		var localized sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &localized, &c.PopularityScore); err != nil {
			return nil, apperrors.NewInternalError("failed to scan candidate", err)
		}
		c.LocalizedName = localized.String
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating candidates", err)
	}

	return candidates, nil
}

// ListMachineTypes returns the full machine type dimension.
func (a *TaxonomyAdapter) ListMachineTypes(ctx context.Context) ([]*entities.MachineType, error) {
	query, args, err := a.db.Select("id", "name", "localized_name", "popularity_score").
		From("machine_types").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build machine types query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list machine types", err)
	}
	defer rows.Close()

	var types []*entities.MachineType
	for rows.Next() {
		mt := &entities.MachineType{}
		var localized sql.NullString
		if err := rows.Scan(&mt.ID, &mt.Name, &localized, &mt.PopularityScore); err != nil {
			return nil, apperrors.NewInternalError("failed to scan machine type", err)
		}
		mt.LocalizedName = localized.String
		types = append(types, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating machine types", err)
	}

	return types, nil
}

// ListManufacturers returns the full manufacturer dimension.
func (a *TaxonomyAdapter) ListManufacturers(ctx context.Context) ([]*entities.Manufacturer, error) {
	query, args, err := a.db.Select("id", "name", "region", "machine_type_id", "popularity_score").
		From("manufacturers").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build manufacturers query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list manufacturers", err)
	}
	defer rows.Close()

	var manufacturers []*entities.Manufacturer
	for rows.Next() {
		m := &entities.Manufacturer{}
		var region, machineTypeID sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &region, &machineTypeID, &m.PopularityScore); err != nil {
			return nil, apperrors.NewInternalError("failed to scan manufacturer", err)
		}
		m.Region = region.String
		if machineTypeID.Valid {
			m.MachineTypeID = &machineTypeID.String
		}
		manufacturers = append(manufacturers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating manufacturers", err)
	}

	return manufacturers, nil
}

// ListSymptomMappings returns the full symptom vocabulary.
func (a *TaxonomyAdapter) ListSymptomMappings(ctx context.Context) ([]*entities.SymptomMapping, error) {
	query, args, err := a.db.Select("id", "symptom_text", "localized_text", "category", "subcategory", "confidence_score").
		From("symptom_mappings").
		Order(goqu.I("symptom_text").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build symptoms query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list symptom mappings", err)
	}
	defer rows.Close()

	var symptoms []*entities.SymptomMapping
	for rows.Next() {
		s := &entities.SymptomMapping{}
		var localized, subcategory sql.NullString
		if err := rows.Scan(&s.ID, &s.SymptomText, &localized, &s.Category, &subcategory, &s.ConfidenceScore); err != nil {
			return nil, apperrors.NewInternalError("failed to scan symptom mapping", err)
		}
		s.LocalizedText = localized.String
		s.Subcategory = subcategory.String
		symptoms = append(symptoms, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating symptom mappings", err)
	}

	return symptoms, nil
}

// ListMachineModels returns all machine models.
func (a *TaxonomyAdapter) ListMachineModels(ctx context.Context) ([]*entities.MachineModel, error) {
	query, args, err := a.db.Select(
		"id", "name", "manufacturer_id", "year_from", "year_to",
		"power", "weight", "specs", "popularity_score",
	).From("machine_models").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build models query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list machine models", err)
	}
	defer rows.Close()

	var models []*entities.MachineModel
	for rows.Next() {
		m := &entities.MachineModel{}
		var yearFrom, yearTo sql.NullInt64
		var power, weight, specs sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.ManufacturerID, &yearFrom, &yearTo, &power, &weight, &specs, &m.PopularityScore); err != nil {
			return nil, apperrors.NewInternalError("failed to scan machine model", err)
		}
		if yearFrom.Valid {
			y := int(yearFrom.Int64)
			m.YearFrom = &y
		}
		if yearTo.Valid {
			y := int(yearTo.Int64)
			m.YearTo = &y
		}
		m.Power = power.String
		m.Weight = weight.String
		m.Specs = specs.String
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating machine models", err)
	}

	return models, nil
}

// ListRootCategories returns part categories with no parent.
func (a *TaxonomyAdapter) ListRootCategories(ctx context.Context) ([]*entities.PartCategory, error) {
	query, args, err := a.db.Select("id", "name", "localized_name", "parent_id", "icon").
		From("part_categories").
		Where(goqu.I("parent_id").IsNull()).
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build categories query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list root categories", err)
	}
	defer rows.Close()

	var categories []*entities.PartCategory
	for rows.Next() {
		c := &entities.PartCategory{}
		var localized, parentID, icon sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &localized, &parentID, &icon); err != nil {
			return nil, apperrors.NewInternalError("failed to scan part category", err)
		}
		c.LocalizedName = localized.String
		if parentID.Valid {
			c.ParentID = &parentID.String
		}
		c.Icon = icon.String
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating part categories", err)
	}

	return categories, nil
}
