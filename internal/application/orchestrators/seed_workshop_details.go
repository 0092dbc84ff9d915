package orchestrators

import (
	"context"
	"log/slog"

	"workshops/internal/application/workshopstore"
	domain "workshops/internal/domain/workshop"
)

// WorkshopDetailStoreForSeed defines the store interface needed by SeedWorkshopDetails.
type WorkshopDetailStoreForSeed interface {
	SaveWorkshop(ctx context.Context, w domain.Workshop[domain.ProblemStatementContent]) error
	Exists(ctx context.Context, id int) (bool, error)
}

// SeedWorkshopDetailsDeps holds dependencies for SeedWorkshopDetails.
type SeedWorkshopDetailsDeps struct {
	DetailStore WorkshopDetailStoreForSeed
}

// ExecuteSeedWorkshopDetails stores placeholder details for each workshop that has none.
// It is idempotent - existing details are never overwritten.
// PRE: deps.DetailStore is non-nil
// POST: Every workshop in list has a stored detail; returns the number newly written
func ExecuteSeedWorkshopDetails(ctx context.Context, deps SeedWorkshopDetailsDeps, list []domain.BaseWorkshop) (int, error) {
	created := 0
	for _, base := range list {
		exists, err := deps.DetailStore.Exists(ctx, base.ID)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		detail := domain.Workshop[domain.ProblemStatementContent]{
			BaseWorkshop: base,
			Facilitators: append([]string(nil), workshopstore.PlaceholderFacilitators...),
			Visibility:   domain.VisibilityPublic,
			Content:      workshopstore.PlaceholderContent(),
		}
		if err := deps.DetailStore.SaveWorkshop(ctx, detail); err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		slog.Info("workshop_details_seeded", "count", created)
	}
	return created, nil
}
