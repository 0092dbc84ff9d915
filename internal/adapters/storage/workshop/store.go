package workshop

import (
	"context"

	domain "workshops/internal/domain/workshop"
)

// Store persists the detail part of workshops (facilitators, visibility, content).
// List fields live with the caller and are merged in on fetch.
type Store interface {
	FetchWorkshop(ctx context.Context, base domain.BaseWorkshop) (domain.Workshop[domain.Content], error)
	SaveWorkshop(ctx context.Context, w domain.Workshop[domain.ProblemStatementContent]) error
	Exists(ctx context.Context, id int) (bool, error)
}
