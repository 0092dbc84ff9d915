package bootstrap

import (
	"context"
	"testing"

	"workshops/internal/config"
	domain "workshops/internal/domain/workshop"
)

// TestSetup_Placeholder builds a seeded store without a database.
func TestSetup_Placeholder(t *testing.T) {
	cfg := config.Default()
	cfg.TimeZone = "UTC"

	rt, err := Setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer rt.Close()

	if n := len(rt.Store.Workshops()); n != 5 {
		t.Fatalf("workshops = %d, want 5", n)
	}
	ok, err := rt.Store.SelectWorkshop(context.Background(), 24)
	if err != nil || !ok {
		t.Fatalf("SelectWorkshop = %v, %v", ok, err)
	}
}

// TestSetup_SQLite serves details from the seeded database and times its queries.
func TestSetup_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.DetailSource = config.DetailSourceSQLite
	cfg.DBPath = ":memory:"
	cfg.TimeZone = "UTC"

	rt, err := Setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer rt.Close()

	ok, err := rt.Store.SelectWorkshop(context.Background(), 93)
	if err != nil || !ok {
		t.Fatalf("SelectWorkshop = %v, %v", ok, err)
	}
	sel, err := rt.Store.SelectedWorkshop()
	if err != nil {
		t.Fatalf("SelectedWorkshop: %v", err)
	}
	content, isPS := sel.Content.(domain.ProblemStatementContent)
	if !isPS || len(content.ProblemStatements) != 3 {
		t.Fatalf("content = %#v", sel.Content)
	}
	if sel.Facilitators[0] != "Anna" || sel.Visibility != domain.VisibilityPublic {
		t.Errorf("detail = %+v", sel)
	}
	if rt.Collector.TotalRecorded() == 0 {
		t.Error("expected timed queries to be recorded")
	}
}

// TestSetup_NoTestData starts with an empty list.
func TestSetup_NoTestData(t *testing.T) {
	cfg := config.Default()
	cfg.SeedTestData = false

	rt, err := Setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer rt.Close()

	if n := len(rt.Store.Workshops()); n != 0 {
		t.Fatalf("workshops = %d, want 0", n)
	}
}

// TestSetup_SQLiteSelectsAddedWorkshop selects a workshop listed after startup.
func TestSetup_SQLiteSelectsAddedWorkshop(t *testing.T) {
	cfg := config.Default()
	cfg.DetailSource = config.DetailSourceSQLite
	cfg.DBPath = ":memory:"
	cfg.TimeZone = "UTC"

	rt, err := Setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer rt.Close()

	rt.Store.AddWorkshop(domain.BaseWorkshop{ID: 500, Type: "Retro", Place: domain.Place{Name: "Köln"}})
	ok, err := rt.Store.SelectWorkshop(context.Background(), 500)
	if err != nil || !ok {
		t.Fatalf("SelectWorkshop(500) = %v, %v", ok, err)
	}
	sel, err := rt.Store.SelectedWorkshop()
	if err != nil {
		t.Fatalf("SelectedWorkshop: %v", err)
	}
	if sel.ID != 500 || sel.Place.Name != "Köln" || sel.Visibility != domain.VisibilityPublic {
		t.Errorf("selected = %+v", sel)
	}

	ok, err = rt.Store.SelectWorkshop(context.Background(), 4711)
	if err != nil || ok {
		t.Fatalf("unlisted id = %v, %v; want false, nil", ok, err)
	}
}
