package bootstrap

import (
	"context"
	"errors"

	workshopStorage "workshops/internal/adapters/storage/workshop"
	"workshops/internal/application/orchestrators"
	domain "workshops/internal/domain/workshop"
)

// seedingDetails serves details from the database and stores placeholder
// details for workshops added after startup on their first fetch.
type seedingDetails struct {
	store *workshopStorage.SQLiteStore
}

func (d seedingDetails) FetchWorkshop(ctx context.Context, base domain.BaseWorkshop) (domain.Workshop[domain.Content], error) {
	full, err := d.store.FetchWorkshop(ctx, base)
	if !errors.Is(err, domain.ErrNotFound) {
		return full, err
	}
	deps := orchestrators.SeedWorkshopDetailsDeps{DetailStore: d.store}
	if _, err := orchestrators.ExecuteSeedWorkshopDetails(ctx, deps, []domain.BaseWorkshop{base}); err != nil {
		return domain.Workshop[domain.Content]{}, err
	}
	return d.store.FetchWorkshop(ctx, base)
}
