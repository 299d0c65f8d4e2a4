package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/binkit/pkg/rows"
	"github.com/joshuapare/binkit/pkg/types"
)

// View renders the entire UI
func (m Model) View() string {
	background := NewMainViewModel(&m)

	// Modals are composed over the main view; recreated each render so the
	// background reflects the latest state.
	var modal string
	switch {
	case m.showHelp:
		modal = modalStyle.Render(m.helpText)
	case m.inputMode != NormalMode:
		modal = m.renderPrompt()
	default:
		return background.View()
	}

	return overlay.New(
		staticView(modal),
		background,
		overlay.Center, // horizontal position
		overlay.Center, // vertical position
		0,
		0,
	).View()
}

// renderHeader renders the title and the comparison summary
func (m Model) renderHeader() string {
	a, b := m.sess.Buffer(types.SideA), m.sess.Buffer(types.SideB)

	files := fmt.Sprintf("A: %s (%s)", a.DisplayName(), humanize.Bytes(uint64(a.Len())))
	if b != nil {
		files += fmt.Sprintf("  B: %s (%s)", b.DisplayName(), humanize.Bytes(uint64(b.Len())))
	}
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("Binary Explorer"),
		"  ",
		pathStyle.Render(files),
	)

	var summary string
	switch sum := m.sess.Summary(); {
	case b == nil:
		summary = "Single file view"
	case sum.Total == 0:
		summary = "Files are identical"
	default:
		summary = fmt.Sprintf("%s differences (%s value, %s past end of A, %s past end of B)",
			humanize.Comma(int64(sum.Total)),
			humanize.Comma(int64(sum.Values)),
			humanize.Comma(int64(sum.AExhausted)),
			humanize.Comma(int64(sum.BExhausted)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, summary)
}

// renderContent renders the two panes side by side
func (m Model) renderContent() string {
	paneWidth := max(m.width/2, 20)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderPane(types.SideA, paneWidth),
		m.renderPane(types.SideB, paneWidth),
	)
}

func (m Model) renderPane(sd types.Side, width int) string {
	buf := m.sess.Buffer(sd)

	title := "Side " + sd.String()
	if buf != nil {
		title += ": " + buf.DisplayName()
	}
	title = paneTitleStyle.Render(title)
	if m.sess.Modified(sd) {
		title += " " + modifiedStyle.Render("[modified]")
	}

	lines := make([]string, 0, m.visibleRows()+1)
	lines = append(lines, title)

	rs := m.sess.Rows(sd)
	switch {
	case buf == nil:
		lines = append(lines, addressStyle.Render("(no file)"))
	case len(rs) == 0:
		lines = append(lines, addressStyle.Render("(empty file)"))
	}
	for i := m.top; i < m.top+m.visibleRows() && i <= m.lastRow(); i++ {
		if i >= len(rs) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, m.renderRow(sd, i, rs[i]))
	}

	style := paneStyle
	if sd == m.active {
		style = activePaneStyle
	}
	return style.MaxWidth(width).Render(strings.Join(lines, "\n"))
}

// renderRow renders one row: cursor and selection markers, address,
// segments with difference and highlight styling, then the preview.
func (m Model) renderRow(sd types.Side, i int, r rows.Row) string {
	var sb strings.Builder

	if i == m.cursor {
		sb.WriteString("▶")
	} else {
		sb.WriteString(" ")
	}
	if sd == m.active && m.selected[i] {
		sb.WriteString(selectedMarkStyle.Render("●"))
	} else {
		sb.WriteString(" ")
	}
	sb.WriteString(" ")

	if i == m.cursor {
		sb.WriteString(cursorRowStyle.Render(r.Address()))
	} else {
		sb.WriteString(addressStyle.Render(r.Address()))
	}
	sb.WriteString("  ")

	for j, seg := range r.Segments {
		if j > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case seg.IsHighlighted:
			sb.WriteString(highlightByteStyle.Render(seg.Text))
		case seg.IsDifference:
			sb.WriteString(diffByteStyle.Render(seg.Text))
		default:
			sb.WriteString(seg.Text)
		}
	}

	// Pad short rows so previews line up
	if missing := m.sess.Width() - r.Len(); missing > 0 {
		sb.WriteString(strings.Repeat(" ", missing*(m.sess.Mode().TokenLen()+1)))
	}
	sb.WriteString("  ")
	sb.WriteString(previewStyle.Render(r.ASCII))
	return sb.String()
}

// renderStatus renders the status bar
func (m Model) renderStatus() string {
	position := statusCountStyle.Render(fmt.Sprintf("row %d/%d", m.cursor+1, max(m.sess.RowCount(), 1)))
	view := fmt.Sprintf("%s · %d B/row · side %s", m.sess.Mode(), m.sess.Width(), m.active)
	if n := len(m.selected); n > 0 {
		view += fmt.Sprintf(" · %d selected", n)
	}

	// Show status message if set (takes priority over normal help)
	if m.statusMessage != "" {
		return statusStyle.Width(m.width).Render(
			statusMessageStyle.Render(m.statusMessage) + "  " + position,
		)
	}

	var help strings.Builder
	for i, b := range m.keys.ShortHelp() {
		if i > 0 {
			help.WriteString(" │ ")
		}
		help.WriteString(helpStyle.Render(b.Help().Key + ": " + b.Help().Desc))
	}
	return statusStyle.Width(m.width).Render(position + "  " + view + "  " + help.String())
}

// renderPrompt renders the edit or export modal
func (m Model) renderPrompt() string {
	var title, hint string
	switch m.inputMode {
	case EditMode:
		title = fmt.Sprintf("Edit %s of side %s", describeRows(m.editRows), m.active)
		hint = fmt.Sprintf("%s values separated by spaces", m.sess.Mode())
	case ExportMode:
		title = "Export report"
		hint = "a .json name writes JSON, anything else text"
	}

	parts := []string{
		modalTitleStyle.Render(title),
		m.input.View(),
		"",
		addressStyle.Render(hint + "  ·  enter: apply  esc: cancel"),
	}
	if m.promptErr != "" {
		parts = append(parts, errorStyle.Render(truncate(m.promptErr, max(m.width-10, 20))))
	}
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func describeRows(idx []int) string {
	switch len(idx) {
	case 0:
		return "no rows"
	case 1:
		return fmt.Sprintf("row %d", idx[0])
	default:
		return fmt.Sprintf("rows %d-%d", idx[0], idx[len(idx)-1])
	}
}
