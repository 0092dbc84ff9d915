package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	domain "workshops/internal/domain/workshop"
)

const maxSuggestions = 5

// View renders the filter bar, the workshop list and the detail pane.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Workshops"))
	b.WriteString("\n\n")

	loc := m.store.Location()
	if terms := m.store.Filter(); len(terms) > 0 {
		labels := make([]string, len(terms))
		for i, t := range terms {
			labels[i] = termStyle.Render(t.Label(loc))
		}
		b.WriteString(strings.Join(labels, " "))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.focus == focusInput && len(m.suggestions) > 0 {
		shown := m.suggestions
		if len(shown) > maxSuggestions {
			shown = shown[:maxSuggestions]
		}
		b.WriteString(suggestionStyle.Render("  " + strings.Join(shown, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	list := m.renderList()
	if m.detail != nil {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.renderDetail()))
	} else {
		b.WriteString(list)
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderList() string {
	if len(m.list) == 0 {
		return mutedStyle.Render("No workshops match the filter.")
	}
	loc := m.store.Location()
	lines := make([]string, len(m.list))
	for i, w := range m.list {
		line := fmt.Sprintf("%-14s %-10s %s  ▲%d", w.Type, w.Place.Name, w.Time(loc).Format("2006-01-02"), w.Upvotes)
		if m.focus == focusList && i == m.cursor {
			lines[i] = cursorStyle.Render("> " + line)
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetail() string {
	d := m.detail
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(d.Type))
	fmt.Fprintf(&b, "%s · %s\n", d.Place.Name, d.Time(m.store.Location()).Format("2006-01-02 15:04"))
	if d.Place.MapURL != "" {
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render(d.Place.MapURL))
	}
	fmt.Fprintf(&b, "Facilitators: %s\n", strings.Join(d.Facilitators, ", "))
	fmt.Fprintf(&b, "Visibility: %s\n", d.Visibility)
	if len(d.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(d.Tags, ", "))
	}
	b.WriteString("\n")
	b.WriteString(wrap(d.Teaser, 48))
	b.WriteString("\n")

	if content, ok := d.Content.(domain.ProblemStatementContent); ok {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Problem statements"))
		for _, ps := range content.ProblemStatements {
			fmt.Fprintf(&b, "\n#%d %s (%s %d)\n   %s / %s / %s",
				ps.ID, ps.TitlePhrase, ps.OwnerRole, ps.OwnerID, ps.CounterPhrase, ps.ReasonPhrase, ps.EmotionPhrase)
		}
	}
	return detailStyle.Width(56).Render(b.String())
}

func (m Model) helpLine() string {
	k := m.keys
	if m.focus == focusInput {
		return fmt.Sprintf("%s  %s  %s  esc list  ctrl+c quit",
			k.Select.Help().Key+" add", k.Complete.Help().Key+" complete", k.RemoveLast.Help().Key+" drop last")
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s",
		k.Up.Help().Key, k.Up.Help().Desc,
		k.Down.Help().Key, k.Down.Help().Desc,
		k.Select.Help().Key, "open",
		k.ClearFilter.Help().Key, k.ClearFilter.Help().Desc,
		k.Quit.Help().Key, k.Quit.Help().Desc)
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) string {
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
