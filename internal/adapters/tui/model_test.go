package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"workshops/internal/application/workshopstore"
	domain "workshops/internal/domain/workshop"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	s := workshopstore.New(workshopstore.Deps{Location: time.UTC})
	s.CreateTestData()
	return New(s)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func pressKey(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: k})
}

func listIDs(m Model) []int {
	ids := make([]int, len(m.list))
	for i, w := range m.list {
		ids[i] = w.ID
	}
	return ids
}

// TestModel_TypingShowsSuggestions refreshes suggestions on every keystroke.
func TestModel_TypingShowsSuggestions(t *testing.T) {
	m := typeText(t, newTestModel(t), "hj")
	want := []string{"hjk", "uhjoj", "jiuhjiu"}
	if strings.Join(m.suggestions, ",") != strings.Join(want, ",") {
		t.Fatalf("suggestions = %v, want %v", m.suggestions, want)
	}
}

// TestModel_EnterAddsTerm narrows the list and clears the input.
func TestModel_EnterAddsTerm(t *testing.T) {
	m := typeText(t, newTestModel(t), "Idea")
	m, _ = pressKey(t, m, tea.KeyEnter)

	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty", m.input.Value())
	}
	if got := listIDs(m); len(got) != 3 {
		t.Fatalf("list = %v, want the three Idea workshops", got)
	}
	if f := m.store.Filter(); len(f) != 1 || f[0] != domain.TextTerm("Idea") {
		t.Fatalf("filter = %v", f)
	}
}

// TestModel_MonthTerm parses month:YYYY-MM into a month filter.
func TestModel_MonthTerm(t *testing.T) {
	m := typeText(t, newTestModel(t), "month:2020-06")
	m, _ = pressKey(t, m, tea.KeyEnter)

	if got := listIDs(m); len(got) != 3 || got[0] != 24 || got[1] != 1 || got[2] != 33 {
		t.Fatalf("list = %v, want [24 1 33]", got)
	}
}

// TestModel_InvalidMonth shows the parse error and keeps the input.
func TestModel_InvalidMonth(t *testing.T) {
	m := typeText(t, newTestModel(t), "month:2020-13")
	m, _ = pressKey(t, m, tea.KeyEnter)

	if m.err == nil {
		t.Fatal("expected an error")
	}
	if m.input.Value() != "month:2020-13" || len(m.store.Filter()) != 0 {
		t.Fatalf("input = %q, filter = %v", m.input.Value(), m.store.Filter())
	}
}

// TestModel_TabCompletes takes the first suggestion.
func TestModel_TabCompletes(t *testing.T) {
	m := typeText(t, newTestModel(t), "ber")
	m, _ = pressKey(t, m, tea.KeyTab)
	if m.input.Value() != "Berlin" {
		t.Fatalf("input = %q, want Berlin", m.input.Value())
	}
}

// TestModel_BackspaceOnEmptyRemovesLastTerm drops terms newest first.
func TestModel_BackspaceOnEmptyRemovesLastTerm(t *testing.T) {
	m := typeText(t, newTestModel(t), "Berlin")
	m, _ = pressKey(t, m, tea.KeyEnter)
	m = typeText(t, m, "hjk")
	m, _ = pressKey(t, m, tea.KeyEnter)

	m, _ = pressKey(t, m, tea.KeyBackspace)
	if f := m.store.Filter(); len(f) != 1 || f[0] != domain.TextTerm("Berlin") {
		t.Fatalf("filter = %v, want [Berlin]", f)
	}
	if got := listIDs(m); len(got) != 4 {
		t.Fatalf("list = %v", got)
	}
}

// TestModel_ClearFilter resets the filter from the list.
func TestModel_ClearFilter(t *testing.T) {
	m := typeText(t, newTestModel(t), "Hamburg")
	m, _ = pressKey(t, m, tea.KeyEnter)
	m, _ = pressKey(t, m, tea.KeyEsc)
	if m.focus != focusList {
		t.Fatal("esc should move focus to the list")
	}

	m = typeText(t, m, "c")
	if len(m.store.Filter()) != 0 || len(m.list) != 5 {
		t.Fatalf("filter = %v, list = %v", m.store.Filter(), listIDs(m))
	}
}

// TestModel_SelectOpensDetail runs the select command and shows the pane.
func TestModel_SelectOpensDetail(t *testing.T) {
	m, _ := pressKey(t, newTestModel(t), tea.KeyDown)
	m, _ = pressKey(t, m, tea.KeyDown)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	m, cmd := pressKey(t, m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a select command")
	}
	m, _ = send(t, m, cmd())

	if m.detail == nil || m.detail.ID != 1 {
		t.Fatalf("detail = %+v, want workshop 1", m.detail)
	}
	if !strings.Contains(m.View(), "Facilitators: Anna, Paul") {
		t.Error("detail pane missing facilitators")
	}

	m, _ = pressKey(t, m, tea.KeyEsc)
	if m.detail != nil {
		t.Error("esc should close the detail pane")
	}
}

// TestModel_SelectMiss leaves the detail pane closed.
func TestModel_SelectMiss(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, selectedMsg{id: 4711, ok: false})
	if m.detail != nil || m.status == "" {
		t.Fatalf("detail = %+v, status = %q", m.detail, m.status)
	}
}

// TestModel_SelectMissClearsError replaces an earlier fetch error with the miss status.
func TestModel_SelectMissClearsError(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, selectedMsg{id: 24, err: errors.New("database locked")})
	if m.err == nil {
		t.Fatal("fetch error should be shown")
	}
	m, _ = send(t, m, selectedMsg{id: 4711, ok: false})
	if m.err != nil {
		t.Fatalf("err = %v, want cleared after a miss", m.err)
	}
	if m.status != "no details for this workshop" {
		t.Errorf("status = %q", m.status)
	}
	if strings.Contains(m.View(), "database locked") {
		t.Error("view still shows the stale error")
	}
}

// TestModel_ViewShowsTerms renders active terms with their labels.
func TestModel_ViewShowsTerms(t *testing.T) {
	m := typeText(t, newTestModel(t), "month:2020-06")
	m, _ = pressKey(t, m, tea.KeyEnter)
	if !strings.Contains(m.View(), "month:2020-06") {
		t.Error("view missing month label")
	}
}

func TestWrap(t *testing.T) {
	got := wrap("aa bb cc dd", 5)
	if got != "aa bb\ncc dd" {
		t.Fatalf("wrap = %q", got)
	}
}
