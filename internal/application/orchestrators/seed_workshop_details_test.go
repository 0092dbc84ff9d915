package orchestrators

import (
	"context"
	"errors"
	"testing"

	"workshops/internal/application/workshopstore"
	domain "workshops/internal/domain/workshop"
)

type mockDetailStore struct {
	saved   map[int]domain.Workshop[domain.ProblemStatementContent]
	saveErr error
}

// SaveWorkshop records the detail in memory or returns saveErr.
// PRE: none
// POST: w is stored under w.ID unless saveErr is set
func (m *mockDetailStore) SaveWorkshop(_ context.Context, w domain.Workshop[domain.ProblemStatementContent]) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.saved == nil {
		m.saved = make(map[int]domain.Workshop[domain.ProblemStatementContent])
	}
	m.saved[w.ID] = w
	return nil
}

// Exists reports whether a detail was saved for id.
// PRE: none
// POST: Returns true if SaveWorkshop stored id
func (m *mockDetailStore) Exists(_ context.Context, id int) (bool, error) {
	_, ok := m.saved[id]
	return ok, nil
}

// TestExecuteSeedWorkshopDetails_Idempotent verifies a second run writes nothing.
func TestExecuteSeedWorkshopDetails_Idempotent(t *testing.T) {
	store := &mockDetailStore{}
	deps := SeedWorkshopDetailsDeps{DetailStore: store}
	list := workshopstore.TestWorkshops()

	n, err := ExecuteSeedWorkshopDetails(context.Background(), deps, list)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if n != len(list) {
		t.Fatalf("created = %d, want %d", n, len(list))
	}

	n, err = ExecuteSeedWorkshopDetails(context.Background(), deps, list)
	if err != nil || n != 0 {
		t.Fatalf("second run = %d, %v; want 0, nil", n, err)
	}

	detail := store.saved[24]
	if detail.Visibility != domain.VisibilityPublic || len(detail.Content.ProblemStatements) != 3 {
		t.Fatalf("seeded detail = %+v", detail)
	}
}

// TestExecuteSeedWorkshopDetails_SaveError stops at the first failure.
func TestExecuteSeedWorkshopDetails_SaveError(t *testing.T) {
	boom := errors.New("disk full")
	deps := SeedWorkshopDetailsDeps{DetailStore: &mockDetailStore{saveErr: boom}}

	n, err := ExecuteSeedWorkshopDetails(context.Background(), deps, workshopstore.TestWorkshops())
	if !errors.Is(err, boom) || n != 0 {
		t.Fatalf("got %d, %v; want 0, %v", n, err, boom)
	}
}
