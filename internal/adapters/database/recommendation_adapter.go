package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/clients/postgres"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// RecommendationAdapter implements RecommendationRepository against
// the frequently_bought_together co-purchase table.
type RecommendationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRecommendationAdapter creates a new recommendation adapter
func NewRecommendationAdapter(client *postgres.Client) repositories.RecommendationRepository {
	return &RecommendationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByAnchor returns co-purchase rows for an anchor, strongest first.
func (a *RecommendationAdapter) ListByAnchor(ctx context.Context, anchorID string, kind entities.AnchorKind, limit int) ([]*entities.FrequentlyBoughtTogether, error) {
	query, args, err := a.db.Select(
		"anchor_id", "anchor_kind", "related_part_id", "frequency_score",
	).From("frequently_bought_together").
		Where(goqu.Ex{
			"anchor_id":   anchorID,
			"anchor_kind": string(kind),
		}).
		Order(goqu.I("frequency_score").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build recommendations query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list recommendations", err)
	}
	defer rows.Close()

	recs := []*entities.FrequentlyBoughtTogether{}
	for rows.Next() {
		fbt := &entities.FrequentlyBoughtTogether{}
		if err := rows.Scan(&fbt.AnchorID, &fbt.AnchorKind, &fbt.RelatedID, &fbt.FrequencyScore); err != nil {
			return nil, apperrors.NewInternalError("failed to scan recommendation", err)
		}
		recs = append(recs, fbt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating recommendations", err)
	}

	return recs, nil
}
