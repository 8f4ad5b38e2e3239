package loaders

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
)

// Loaders contains the dataloaders for the application. The part
// loader batches the per-ID hydration fanned out by recommendations
// and compatible-part listings into single GetByIDs calls.
type Loaders struct {
	PartLoader *dataloader.Loader[string, *entities.Part]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(partRepo repositories.PartRepository) *Loaders {
	return &Loaders{
		PartLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Part] {
			results := make([]*dataloader.Result[*entities.Part], len(keys))
			parts, err := partRepo.GetByIDs(ctx, keys)

			partMap := make(map[string]*entities.Part)
			if err == nil {
				for _, p := range parts {
					partMap[p.ID] = p
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Part]{Error: err}
				} else if p, ok := partMap[key]; ok {
					results[i] = &dataloader.Result[*entities.Part]{Data: p}
				} else {
					results[i] = &dataloader.Result[*entities.Part]{Error: fmt.Errorf("part %s not found", key)}
				}
			}
			return results
		}),
	}
}

// LoadParts fetches parts for the given IDs through the batching
// loader. IDs that resolve to no part are dropped, preserving order
// for the rest.
func (l *Loaders) LoadParts(ctx context.Context, ids []string) ([]*entities.Part, error) {
	if len(ids) == 0 {
		return []*entities.Part{}, nil
	}

	thunk := l.PartLoader.LoadMany(ctx, ids)
	parts, errs := thunk()

	result := make([]*entities.Part, 0, len(parts))
	for i, p := range parts {
		if i < len(errs) && errs[i] != nil {
			continue
		}
		if p != nil {
			result = append(result, p)
		}
	}
	return result, nil
}
