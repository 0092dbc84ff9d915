// Package tui is a terminal browser over the workshop store.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"workshops/internal/application/workshopstore"
	domain "workshops/internal/domain/workshop"
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// selectedMsg reports the outcome of a SelectWorkshop call.
type selectedMsg struct {
	id  int
	ok  bool
	err error
}

// Model is the Bubble Tea model for browsing workshops.
type Model struct {
	store *workshopstore.Store
	keys  keyMap

	input       textinput.Model
	focus       focus
	suggestions []string
	list        []domain.BaseWorkshop
	cursor      int

	detail *domain.Workshop[domain.Content]
	status string
	err    error

	width  int
	height int
}

// New creates a model over store with the filter input focused.
func New(store *workshopstore.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter by type, place, tag or month:YYYY-MM"
	ti.CharLimit = 128
	ti.Width = 50
	ti.Focus()

	m := Model{store: store, keys: defaultKeyMap, input: ti}
	m.refresh()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case selectedMsg:
		return m.applySelection(msg), nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.addTerm()
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if len(m.suggestions) > 0 {
			m.input.SetValue(m.suggestions[0])
			m.input.CursorEnd()
			m.suggestions = m.store.MatchingQueries(m.input.Value())
		}
		return m, nil

	case key.Matches(msg, m.keys.RemoveLast) && m.input.Value() == "":
		if terms := m.store.Filter(); len(terms) > 0 {
			m.store.RemoveFilter(terms[len(terms)-1])
			m.refresh()
		}
		return m, nil

	case msg.Type == tea.KeyDown || msg.Type == tea.KeyEsc:
		m.focusList()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.updateSuggestions()
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.detail != nil {
			m.detail = nil
			return m, nil
		}
		return m, m.focusInput()

	case key.Matches(msg, m.keys.Search):
		return m, m.focusInput()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.ClearFilter):
		m.store.SetFilter(nil)
		m.refresh()

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.list) {
			return m, selectCmd(m.store, m.list[m.cursor].ID)
		}
	}
	return m, nil
}

// addTerm parses the input as a filter term and adds it.
func (m *Model) addTerm() {
	term, err := domain.ParseFilterTerm(m.input.Value(), m.store.Location())
	if errors.Is(err, domain.ErrEmptyTerm) {
		return
	}
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.store.AddFilter(term)
	m.input.Reset()
	m.suggestions = nil
	m.refresh()
}

func (m *Model) updateSuggestions() {
	if m.input.Value() == "" {
		m.suggestions = nil
		return
	}
	m.suggestions = m.store.MatchingQueries(m.input.Value())
}

// refresh reloads the filtered list and keeps the cursor in range.
func (m *Model) refresh() {
	m.list = m.store.FilteredWorkshops()
	if m.cursor >= len(m.list) {
		m.cursor = len(m.list) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	m.detail = nil
	return m.input.Focus()
}

func (m Model) applySelection(msg selectedMsg) Model {
	switch {
	case msg.err != nil:
		m.err = msg.err
	case !msg.ok:
		m.err = nil
		m.status = "no details for this workshop"
	default:
		sel, err := m.store.SelectedWorkshop()
		if err != nil {
			m.err = err
			return m
		}
		m.err = nil
		m.status = ""
		m.detail = &sel
	}
	return m
}

func selectCmd(store *workshopstore.Store, id int) tea.Cmd {
	return func() tea.Msg {
		ok, err := store.SelectWorkshop(context.Background(), id)
		return selectedMsg{id: id, ok: ok, err: err}
	}
}
