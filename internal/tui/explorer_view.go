package tui

import (
	"fmt"
	"strings"

	"github.com/Ziv1972/Catering-services-ai-pro-sub000/internal/catering"
)

// View renders the explorer (Bubble Tea interface).
func (m ExplorerModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.levelTitle()))
	b.WriteString("\n")
	b.WriteString(BreadcrumbStyle.Render(m.hierarchy.Breadcrumb(m.nav.Context)))
	b.WriteString("\n\n")

	if m.promptYear {
		b.WriteString("Year: " + m.yearInput.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderBody())
	b.WriteString("\n")

	if status := m.renderStatus(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m ExplorerModel) renderBody() string {
	if m.nav.Loading {
		return m.loading.View() + "\n"
	}

	var b strings.Builder
	if m.nav.Err != nil {
		b.WriteString(ErrorStyle.Render("Failed to load: " + m.nav.Err.Error()))
		b.WriteString("\n")
	}

	data, ok := m.nav.Data.(*catering.Table)
	if !ok || data.Empty() {
		b.WriteString(HelpStyle.Render("No data for this view."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	if len(data.Footer) > 0 {
		b.WriteString(m.renderFooter(data))
		b.WriteString("\n")
	}
	return b.String()
}

// renderFooter aligns the totals row under the table columns. Bubble's
// table pads each cell with one space on both sides, so the footer
// mirrors that to line up.
func (m ExplorerModel) renderFooter(data *catering.Table) string {
	var b strings.Builder
	for i, cell := range data.Footer {
		if i >= len(data.Columns) {
			break
		}
		col := data.Columns[i]
		width := col.Width
		if m.nav.Level == m.hierarchy.MultiSelect && i == 0 {
			width += len(selectedMark)
		}
		text := cell
		if col.Align == catering.AlignRight {
			text = padLeft(cell, width)
		} else {
			text = padRight(cell, width)
		}
		b.WriteString(" " + text + " ")
	}
	return FooterStyle.Render(b.String())
}

func padRight(s string, width int) string {
	if gap := width - len([]rune(s)); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// renderStatus renders the selection counter and transient notices.
func (m ExplorerModel) renderStatus() string {
	var parts []string
	if m.hierarchy.MultiSelect != "" && m.nav.Level == m.hierarchy.MultiSelect && !m.nav.Loading {
		parts = append(parts, SelectionStyle.Render(fmt.Sprintf("%d selected", len(m.selection))))
	}
	if m.notice != "" {
		parts = append(parts, NoticeStyle.Render(m.notice))
	}
	return strings.Join(parts, "  ")
}

// helpLine lists the key bindings live at the current level.
func (m ExplorerModel) helpLine() string {
	if m.promptYear {
		return "enter: Apply | esc: Cancel"
	}

	spec := m.hierarchy.Spec(m.nav.Level)
	shortcuts := []string{"↑/↓: Move"}
	if spec.Next != "" {
		shortcuts = append(shortcuts, "enter: Drill in")
	}
	if spec.Trend != "" {
		shortcuts = append(shortcuts, "t: Trend")
	}
	if m.hierarchy.MultiSelect != "" && m.nav.Level == m.hierarchy.MultiSelect {
		shortcuts = append(shortcuts, "space: Select", "c: Compare")
	}
	if m.depth > 0 {
		shortcuts = append(shortcuts, "esc: Back")
	} else {
		shortcuts = append(shortcuts, "esc: Exit")
	}
	shortcuts = append(shortcuts, "y: Year", "q: Quit")
	return strings.Join(shortcuts, " | ")
}
