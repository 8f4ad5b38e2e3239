package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/clients/postgres"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// CompatibilityAdapter implements CompatibilityRepository against Postgres.
type CompatibilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCompatibilityAdapter creates a new compatibility adapter
func NewCompatibilityAdapter(client *postgres.Client) repositories.CompatibilityRepository {
	return &CompatibilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetEntry retrieves the compatibility row for a model/part pair.
// A missing row comes back as a NotFound error; callers that treat
// absence as a verdict of its own check for that type.
func (a *CompatibilityAdapter) GetEntry(ctx context.Context, machineModelID, partID string) (*entities.CompatibilityEntry, error) {
	query, args, err := a.db.Select(
		"machine_model_id", "part_id", "compatibility_level",
		"confidence_score", "is_original", "notes",
	).From("compatibility_entries").
		Where(goqu.Ex{
			"machine_model_id": machineModelID,
			"part_id":          partID,
		}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build compatibility query", err)
	}

	entry := &entities.CompatibilityEntry{}
	var notes sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&entry.MachineModelID,
		&entry.PartID,
		&entry.Level,
		&entry.ConfidenceScore,
		&entry.IsOriginal,
		&notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no compatibility entry for model %s and part %s", machineModelID, partID))
		}
		return nil, apperrors.NewUpstreamError("failed to get compatibility entry", err)
	}
	entry.Notes = notes.String

	return entry, nil
}

// ListCompatibleParts returns active parts that fit the model, joined
// with their compatibility rows, best matches first.
func (a *CompatibilityAdapter) ListCompatibleParts(ctx context.Context, machineModelID, categoryID string, limit int) ([]*entities.CompatiblePart, error) {
	ds := a.db.Select(
		goqu.I("p.id"),
		goqu.I("p.name"),
		goqu.I("p.category_id"),
		goqu.I("p.oem_numbers"),
		goqu.I("p.is_active"),
		goqu.I("ce.compatibility_level"),
		goqu.I("ce.confidence_score"),
		goqu.I("ce.is_original"),
		goqu.I("ce.notes"),
	).From(goqu.T("compatibility_entries").As("ce")).
		InnerJoin(
			goqu.T("parts").As("p"),
			goqu.On(goqu.I("ce.part_id").Eq(goqu.I("p.id"))),
		).
		Where(
			goqu.I("ce.machine_model_id").Eq(machineModelID),
			goqu.I("ce.compatibility_level").In(
				string(entities.LevelPerfect),
				string(entities.LevelCompatible),
			),
			goqu.I("p.is_active").IsTrue(),
		)

	if categoryID != "" {
		ds = ds.Where(goqu.I("p.category_id").Eq(categoryID))
	}

	ds = ds.Order(
		goqu.I("ce.confidence_score").Desc(),
		goqu.I("ce.is_original").Desc(),
	).Limit(uint(limit))

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build compatible parts query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list compatible parts", err)
	}
	defer rows.Close()

	parts := []*entities.CompatiblePart{}
	for rows.Next() {
		cp := &entities.CompatiblePart{}
		var notes sql.NullString
		var oemNumbers pq.StringArray
		if err := rows.Scan(
			&cp.Part.ID,
			&cp.Part.Name,
			&cp.Part.CategoryID,
			&oemNumbers,
			&cp.Part.IsActive,
			&cp.Level,
			&cp.Confidence,
			&cp.IsOriginal,
			&notes,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan compatible part", err)
		}
		cp.Part.OEMNumbers = oemNumbers
		cp.Notes = notes.String
		parts = append(parts, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating compatible parts", err)
	}

	return parts, nil
}
