package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/joshuapare/binkit/internal/logger"
	"github.com/joshuapare/binkit/pkg/report"
	"github.com/joshuapare/binkit/pkg/rows"
	"github.com/joshuapare/binkit/pkg/types"
)

const statusTimeout = 3 * time.Second

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.helpText = ""
		m.input.Width = max(msg.Width/2, 20)
		m.setCursor(m.cursor)
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil

	case clearHighlightMsg:
		if msg.seq == m.highlightSeq {
			m.sess.ClearHighlights()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other textinput internals
	if m.inputMode != NormalMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If help is showing, any of esc/?/q closes it
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.inputMode != NormalMode {
		return m.handleInputMode(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		if (m.sess.Modified(types.SideA) || m.sess.Modified(types.SideB)) && !m.quitArmed {
			m.quitArmed = true
			cmd := m.setStatus("Unsaved changes: press q again to quit")
			return m, cmd
		}
		return m, tea.Quit
	}
	m.quitArmed = false

	switch {
	// Navigation
	case key.Matches(msg, m.keys.Up):
		m.setCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.setCursor(m.cursor + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.setCursor(m.cursor - m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.setCursor(m.cursor + m.visibleRows())
	case key.Matches(msg, m.keys.Home):
		m.setCursor(0)
	case key.Matches(msg, m.keys.End):
		m.setCursor(m.lastRow())
	case key.Matches(msg, m.keys.NextDiff):
		row, ok := m.sess.NextDifference(m.cursor)
		if !ok {
			cmd := m.setStatus("No more differences")
			return m, cmd
		}
		m.setCursor(row)
	case key.Matches(msg, m.keys.PrevDiff):
		row, ok := m.sess.PrevDifference(m.cursor)
		if !ok {
			cmd := m.setStatus("No earlier differences")
			return m, cmd
		}
		m.setCursor(row)

	// View
	case key.Matches(msg, m.keys.ToggleMode):
		mode := m.sess.ToggleMode()
		cmd := m.setStatus("Mode: " + mode.String())
		return m, cmd
	case key.Matches(msg, m.keys.CycleWidth):
		return m.cycleWidth()
	case key.Matches(msg, m.keys.Tab):
		m.active = m.active.Other()
		m.clearSelection()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		if m.helpText == "" {
			m.helpText = renderHelp(m.keys, m.width)
		}

	// Editing
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.sess.Rows(m.active)) {
			if m.selected[m.cursor] {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = true
			}
		}
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.CopyToB):
		return m.copyRows(types.SideA)
	case key.Matches(msg, m.keys.CopyToA):
		return m.copyRows(types.SideB)
	case key.Matches(msg, m.keys.Revert):
		if err := m.sess.Revert(m.active); err != nil {
			cmd := m.setStatus(err.Error())
			return m, cmd
		}
		m.clearSelection()
		cmd := m.setStatus("Reverted side " + m.active.String())
		return m, cmd
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Export):
		if !m.sess.Loaded(types.SideB) {
			cmd := m.setStatus("Load two files to export a report")
			return m, cmd
		}
		m.inputMode = ExportMode
		m.promptErr = ""
		m.input.SetValue("binkit-report.txt")
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Clipboard):
		rs := m.sess.Rows(m.active)
		if m.cursor >= len(rs) {
			return m, nil
		}
		if err := writeClipboard(rs[m.cursor].Text()); err != nil {
			logger.Warn("clipboard write failed", "error", err)
			cmd := m.setStatus("Clipboard unavailable: " + err.Error())
			return m, cmd
		}
		cmd := m.setStatus(fmt.Sprintf("Copied row %s of %s", rs[m.cursor].Address(), m.active))
		return m, cmd
	}

	return m, nil
}

// handleInputMode routes keys to the edit or export prompt
func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		switch m.inputMode {
		case EditMode:
			return m.applyEdit()
		case ExportMode:
			return m.export()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.inputMode = NormalMode
	m.input.Blur()
	m.input.SetValue("")
	m.editRows = nil
	m.promptErr = ""
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	idx := m.selection()
	text, err := m.sess.EditText(m.active, idx)
	if err != nil {
		cmd := m.setStatus(err.Error())
		return m, cmd
	}

	m.inputMode = EditMode
	m.editRows = idx
	m.promptErr = ""
	m.input.SetValue(strings.Join(strings.Fields(text), " "))
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) applyEdit() (tea.Model, tea.Cmd) {
	if err := m.sess.Edit(m.active, m.editRows, m.input.Value()); err != nil {
		// Keep the prompt open so the input can be corrected
		m.promptErr = err.Error()
		return m, nil
	}
	n := len(m.editRows)
	m.closePrompt()
	m.clearSelection()
	statusCmd := m.setStatus(fmt.Sprintf("Edited %d row(s) of %s", n, m.active))
	highlightCmd := m.scheduleHighlightClear()
	return m, tea.Batch(statusCmd, highlightCmd)
}

func (m Model) export() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.input.Value())
	if path == "" {
		m.promptErr = "enter a file name"
		return m, nil
	}
	format := report.FormatText
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = report.FormatJSON
	}
	if err := m.sess.ExportTo(path, format); err != nil {
		m.promptErr = err.Error()
		return m, nil
	}
	m.closePrompt()
	cmd := m.setStatus(fmt.Sprintf("Report written to %s (%d differences)", path, len(m.sess.Differences())))
	return m, cmd
}

func (m Model) copyRows(from types.Side) (tea.Model, tea.Cmd) {
	res, err := m.sess.CopyRows(from, m.selection())
	if err != nil {
		cmd := m.setStatus(err.Error())
		return m, cmd
	}
	m.clearSelection()

	text := fmt.Sprintf("Copied %d row(s) %s→%s", res.Copied, from, from.Other())
	if res.Skipped > 0 {
		text += fmt.Sprintf(" (%d skipped)", res.Skipped)
	}
	if res.Copied == 0 {
		cmd := m.setStatus(text)
		return m, cmd
	}
	statusCmd := m.setStatus(text)
	highlightCmd := m.scheduleHighlightClear()
	return m, tea.Batch(statusCmd, highlightCmd)
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if err := m.sess.Save(m.active); err != nil {
		cmd := m.setStatus(err.Error())
		return m, cmd
	}
	b := m.sess.Buffer(m.active)
	cmd := m.setStatus(fmt.Sprintf("Saved %s (%s)", b.DisplayName(), humanize.Bytes(uint64(b.Len()))))
	return m, cmd
}

func (m Model) cycleWidth() (tea.Model, tea.Cmd) {
	old := m.sess.Width()
	next := rows.NextWidth(old)
	if err := m.sess.SetWidth(next); err != nil {
		cmd := m.setStatus(err.Error())
		return m, cmd
	}
	// Keep the cursor on the same byte offset.
	m.clearSelection()
	m.setCursor(m.cursor * old / next)
	cmd := m.setStatus(fmt.Sprintf("Width: %d bytes", next))
	return m, cmd
}

// setStatus shows text in the status bar until it times out or is replaced.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.statusMessage = text
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// scheduleHighlightClear drops highlights after the configured delay.
func (m *Model) scheduleHighlightClear() tea.Cmd {
	m.highlightSeq++
	seq := m.highlightSeq
	return tea.Tick(m.highlightDelay, func(time.Time) tea.Msg {
		return clearHighlightMsg{seq: seq}
	})
}
