package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/clients/postgres"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// PartAdapter implements PartRepository against Postgres.
type PartAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPartAdapter creates a new part adapter
func NewPartAdapter(client *postgres.Client) repositories.PartRepository {
	return &PartAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByIDs retrieves parts by their IDs. Unknown IDs are silently
// omitted from the result; callers tolerate partial hydration.
func (a *PartAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Part, error) {
	if len(ids) == 0 {
		return []*entities.Part{}, nil
	}

	query, args, err := a.db.Select("id", "name", "category_id", "oem_numbers", "is_active").
		From("parts").
		Where(goqu.I("id").In(ids)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build parts query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to get parts", err)
	}
	defer rows.Close()

	parts := []*entities.Part{}
	for rows.Next() {
		p := &entities.Part{}
		var oemNumbers pq.StringArray
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &oemNumbers, &p.IsActive); err != nil {
			return nil, apperrors.NewInternalError("failed to scan part", err)
		}
		p.OEMNumbers = oemNumbers
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating parts", err)
	}

	return parts, nil
}
