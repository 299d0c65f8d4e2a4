package main

import (
	"maps"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/binkit/internal/config"
	"github.com/joshuapare/binkit/internal/logger"
	"github.com/joshuapare/binkit/pkg/session"
	"github.com/joshuapare/binkit/pkg/types"
)

// Layout constants
const (
	HeaderHeight = 2 // title line + summary line
	StatusHeight = 1
	PaneChrome   = 3 // top and bottom border + pane title
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	EditMode
	ExportMode
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Model is the main application model
type Model struct {
	sess *session.Session
	keys KeyMap

	highlightDelay time.Duration

	active   types.Side
	cursor   int // row index shared by both panes
	top      int // first visible row
	selected map[int]bool

	width  int
	height int

	// Prompt state for edit and export
	inputMode InputMode
	input     textinput.Model
	editRows  []int
	promptErr string

	showHelp  bool
	quitArmed bool   // set after q with unsaved changes
	helpText  string // rendered once per width

	// Status message for temporary feedback
	statusMessage string
	statusSeq     int

	// highlightSeq invalidates pending highlight clears after a newer edit
	highlightSeq int
}

// NewModel loads pathA and, when given, pathB into a new session.
func NewModel(pathA, pathB string, cfg *config.Config) (Model, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	sess, err := session.New(session.Options{
		Width:   cfg.View.Width,
		Mode:    cfg.Mode(),
		Preview: cfg.Preview(),
	})
	if err != nil {
		return Model{}, err
	}
	if err := sess.Load(types.SideA, pathA); err != nil {
		return Model{}, err
	}
	if pathB != "" {
		if err := sess.Load(types.SideB, pathB); err != nil {
			return Model{}, err
		}
	}
	return newModelFromSession(sess, cfg.HighlightDelay()), nil
}

func newModelFromSession(sess *session.Session, delay time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0

	logger.Info("explorer session", "id", sess.ID(),
		"a", sess.Buffer(types.SideA).DisplayName(),
		"b", sess.Buffer(types.SideB).DisplayName())

	return Model{
		sess:           sess,
		keys:           DefaultKeyMap(),
		highlightDelay: delay,
		active:         types.SideA,
		selected:       make(map[int]bool),
		inputMode:      NormalMode,
		input:          ti,
		width:          120,
		height:         30,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Messages

type clearStatusMsg struct{ seq int }

type clearHighlightMsg struct{ seq int }

// visibleRows is how many rows fit in a pane.
func (m Model) visibleRows() int {
	return max(m.height-HeaderHeight-StatusHeight-PaneChrome, 1)
}

// lastRow is the highest valid cursor position.
func (m Model) lastRow() int {
	return max(m.sess.RowCount()-1, 0)
}

// setCursor clamps row and scrolls it into view.
func (m *Model) setCursor(row int) {
	row = min(max(row, 0), m.lastRow())
	m.cursor = row

	page := m.visibleRows()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+page {
		m.top = m.cursor - page + 1
	}
	m.top = min(max(m.top, 0), max(m.lastRow()-page+1, 0))
}

// selection returns the selected rows, or the cursor row when none are.
func (m Model) selection() []int {
	if len(m.selected) == 0 {
		return []int{m.cursor}
	}
	return slices.Sorted(maps.Keys(m.selected))
}

func (m *Model) clearSelection() {
	clear(m.selected)
}

// GetSession returns the underlying session (for testing)
func (m *Model) GetSession() *session.Session {
	return m.sess
}
