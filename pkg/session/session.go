package session

import (
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/joshuapare/binkit/internal/logger"
	"github.com/joshuapare/binkit/internal/writer"
	"github.com/joshuapare/binkit/pkg/buffer"
	"github.com/joshuapare/binkit/pkg/diff"
	"github.com/joshuapare/binkit/pkg/edit"
	"github.com/joshuapare/binkit/pkg/report"
	"github.com/joshuapare/binkit/pkg/rows"
	"github.com/joshuapare/binkit/pkg/types"
)

// Options configures a Session. Zero values pick the defaults.
type Options struct {
	Width   int // default rows.DefaultWidth
	Mode    rows.Mode
	Preview rows.Preview

	Loader Loader       // default FileLoader
	Saver  writer.Saver // default writer.FileWriter
}

type side struct {
	buf      *buffer.Buffer
	original []byte
	modified bool
	rows     []rows.Row
}

// Session is the comparison state for one A/B pair.
type Session struct {
	id      string
	width   int
	mode    rows.Mode
	preview rows.Preview

	loader Loader
	saver  writer.Saver
	log    *slog.Logger

	sides [2]side
	diffs []diff.Difference
}

// New creates an empty session.
func New(opts Options) (*Session, error) {
	if opts.Width == 0 {
		opts.Width = rows.DefaultWidth
	}
	if err := rows.ValidateWidth(opts.Width); err != nil {
		return nil, err
	}
	if opts.Loader == nil {
		opts.Loader = FileLoader{}
	}
	if opts.Saver == nil {
		opts.Saver = writer.FileWriter{}
	}

	id := uuid.NewString()
	return &Session{
		id:      id,
		width:   opts.Width,
		mode:    opts.Mode,
		preview: opts.Preview,
		loader:  opts.Loader,
		saver:   opts.Saver,
		log:     logger.L.With("session", id),
	}, nil
}

// ID returns the session's log correlation id.
func (s *Session) ID() string { return s.id }

// Width returns the bytes-per-row setting.
func (s *Session) Width() int { return s.width }

// Mode returns the display mode.
func (s *Session) Mode() rows.Mode { return s.mode }

// Preview returns the character column charset.
func (s *Session) Preview() rows.Preview { return s.preview }

// Loaded reports whether side has a buffer.
func (s *Session) Loaded(sd types.Side) bool { return s.sides[sd].buf != nil }

// Buffer returns side's buffer, or nil.
func (s *Session) Buffer(sd types.Side) *buffer.Buffer { return s.sides[sd].buf }

// Modified reports whether side differs from what was loaded or last saved.
func (s *Session) Modified(sd types.Side) bool { return s.sides[sd].modified }

// Rows returns side's current rows. The slice is replaced on every refresh.
func (s *Session) Rows(sd types.Side) []rows.Row { return s.sides[sd].rows }

// Differences returns the current difference list, ordered by offset.
func (s *Session) Differences() []diff.Difference { return s.diffs }

// Summary tallies the current differences.
func (s *Session) Summary() diff.Summary { return diff.Summarize(s.diffs) }

// RowCount returns the number of rows of the longer side.
func (s *Session) RowCount() int {
	return max(len(s.sides[types.SideA].rows), len(s.sides[types.SideB].rows))
}

// Load reads path into side. On failure the session is unchanged.
func (s *Session) Load(sd types.Side, path string) error {
	buf, err := s.loader.Load(path)
	if err != nil {
		s.log.Warn("load failed", "side", sd.String(), "path", path, "error", err)
		return types.WrapIO(err, "load %s", path)
	}
	s.log.Info("loaded", "side", sd.String(), "path", path, "bytes", buf.Len())
	s.SetBuffer(sd, buf)
	return nil
}

// SetBuffer installs buf as side's contents and remembers it for Revert.
func (s *Session) SetBuffer(sd types.Side, buf *buffer.Buffer) {
	st := &s.sides[sd]
	st.buf = buf
	st.original = cloneBytes(buf.Bytes())
	st.modified = false
	s.Refresh()
}

// Clear drops both buffers and all derived state.
func (s *Session) Clear() {
	s.sides = [2]side{}
	s.diffs = nil
	s.log.Info("cleared")
}

// Refresh recomputes the differences and re-renders both sides.
func (s *Session) Refresh() {
	a, b := &s.sides[types.SideA], &s.sides[types.SideB]
	opts := rows.Options{Width: s.width, Mode: s.mode, Preview: s.preview}

	a.rows = rows.RenderWith(a.buf.Bytes(), opts)
	b.rows = rows.RenderWith(b.buf.Bytes(), opts)

	s.diffs = nil
	if a.buf == nil || b.buf == nil {
		return
	}
	s.diffs = diff.Compare(a.buf.Bytes(), b.buf.Bytes())
	rows.Mark(a.rows, b.rows, s.diffs, s.width)
	s.log.Debug("compared", "a_bytes", a.buf.Len(), "b_bytes", b.buf.Len(), "differences", len(s.diffs))
}

// SetWidth changes the bytes-per-row setting and re-renders.
func (s *Session) SetWidth(w int) error {
	if err := rows.ValidateWidth(w); err != nil {
		return err
	}
	s.width = w
	s.Refresh()
	return nil
}

// SetMode changes the display mode and re-renders.
func (s *Session) SetMode(m rows.Mode) {
	s.mode = m
	s.Refresh()
}

// ToggleMode flips between hex and binary.
func (s *Session) ToggleMode() rows.Mode {
	s.SetMode(s.mode.Toggle())
	return s.mode
}

// SetPreview changes the character column charset and re-renders.
func (s *Session) SetPreview(p rows.Preview) {
	s.preview = p
	s.Refresh()
}

// SelectRows returns side's rows at the given indices.
func (s *Session) SelectRows(sd types.Side, idx []int) ([]rows.Row, error) {
	rs := s.sides[sd].rows
	out := make([]rows.Row, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(rs) {
			return nil, types.Rangef("row %d out of range (side %s has %d rows)", i, sd, len(rs))
		}
		out = append(out, rs[i])
	}
	return out, nil
}

// EditText returns the editable text for side's rows at idx.
func (s *Session) EditText(sd types.Side, idx []int) (string, error) {
	sel, err := s.SelectRows(sd, idx)
	if err != nil {
		return "", err
	}
	return edit.FormatTokens(sel), nil
}

// Edit overwrites the selected rows of side with the bytes parsed from text
// (in the current mode). The selection must be contiguous and text must
// carry exactly as many bytes as the rows hold.
func (s *Session) Edit(sd types.Side, idx []int, text string) error {
	st := &s.sides[sd]
	if st.buf == nil {
		return types.Validationf("side %s has no file loaded", sd)
	}
	sel, err := s.SelectRows(sd, idx)
	if err != nil {
		return err
	}
	off, data, err := edit.Prepare(sel, s.width, s.mode, text)
	if err != nil {
		return err
	}
	out, err := edit.Apply(st.buf.Bytes(), off, data)
	if err != nil {
		return err
	}

	st.buf.Replace(out)
	st.modified = true
	s.Refresh()
	rows.Highlight(st.rows, idx...)
	s.log.Info("edited", "side", sd.String(), "offset", off, "bytes", len(data))
	return nil
}

// CopyRows copies the rows at idx from side from into the other side at
// the same offsets. Rows that do not exist on the source or do not fit the
// target are skipped and counted.
func (s *Session) CopyRows(from types.Side, idx []int) (edit.CopyResult, error) {
	src, dst := &s.sides[from], &s.sides[from.Other()]
	if src.buf == nil || dst.buf == nil {
		return edit.CopyResult{}, types.Validationf("both files must be loaded to copy")
	}

	var (
		spans    []edit.Span
		copied   []int
		outOfSrc int
	)
	for _, i := range idx {
		if i < 0 || i >= len(src.rows) {
			outOfSrc++
			continue
		}
		r := src.rows[i]
		spans = append(spans, edit.Span{Start: r.Start, Len: r.Len()})
		if r.End() <= int64(dst.buf.Len()) {
			copied = append(copied, i)
		}
	}

	out, res := edit.CrossCopy(src.buf.Bytes(), dst.buf.Bytes(), spans)
	res.Skipped += outOfSrc

	if res.Copied > 0 {
		dst.buf.Replace(out)
		dst.modified = true
		s.Refresh()
		rows.Highlight(dst.rows, copied...)
	}
	s.log.Info("copied rows", "from", from.String(), "copied", res.Copied, "skipped", res.Skipped, "bytes", res.Bytes)
	return res, nil
}

// CopyAll copies every row of side from into the other side.
func (s *Session) CopyAll(from types.Side) (edit.CopyResult, error) {
	idx := make([]int, len(s.sides[from].rows))
	for i := range idx {
		idx[i] = i
	}
	return s.CopyRows(from, idx)
}

// Revert restores side to what was loaded or last saved.
func (s *Session) Revert(sd types.Side) error {
	st := &s.sides[sd]
	if st.buf == nil {
		return types.Validationf("side %s has no file loaded", sd)
	}
	st.buf.Replace(cloneBytes(st.original))
	st.modified = false
	s.Refresh()
	s.log.Info("reverted", "side", sd.String())
	return nil
}

// Save writes side back to its path.
func (s *Session) Save(sd types.Side) error {
	st := &s.sides[sd]
	if st.buf == nil {
		return types.Validationf("side %s has no file loaded", sd)
	}
	if st.buf.Path == "" {
		return types.Validationf("side %s has no path; use SaveAs", sd)
	}
	return s.SaveAs(sd, st.buf.Path)
}

// SaveAs writes side to path and adopts path as the side's identity.
// On failure nothing changes.
func (s *Session) SaveAs(sd types.Side, path string) error {
	st := &s.sides[sd]
	if st.buf == nil {
		return types.Validationf("side %s has no file loaded", sd)
	}
	if err := s.saver.Save(path, st.buf.Bytes()); err != nil {
		s.log.Warn("save failed", "side", sd.String(), "path", path, "error", err)
		return types.WrapIO(err, "save %s", path)
	}

	st.buf.Path, st.buf.Name = path, filepath.Base(path)
	st.original = cloneBytes(st.buf.Bytes())
	st.modified = false
	s.log.Info("saved", "side", sd.String(), "path", path, "bytes", st.buf.Len())
	return nil
}

// Report renders the current differences.
func (s *Session) Report(format report.Format) (string, error) {
	return report.Render(s.diffs, s.sides[types.SideA].buf.DisplayName(), s.sides[types.SideB].buf.DisplayName(), format)
}

// ExportTo renders the report and saves it to path.
func (s *Session) ExportTo(path string, format report.Format) error {
	text, err := s.Report(format)
	if err != nil {
		return err
	}
	if err := s.saver.Save(path, []byte(text)); err != nil {
		return types.WrapIO(err, "export %s", path)
	}
	s.log.Info("exported report", "path", path, "differences", len(s.diffs))
	return nil
}

// NextDifference returns the row index of the first difference after row.
func (s *Session) NextDifference(row int) (int, bool) {
	i := diff.Next(s.diffs, int64(row+1)*int64(s.width)-1)
	if i < 0 {
		return 0, false
	}
	return s.diffs[i].Row(s.width), true
}

// PrevDifference returns the row index of the last difference before row.
func (s *Session) PrevDifference(row int) (int, bool) {
	i := diff.Prev(s.diffs, int64(row)*int64(s.width))
	if i < 0 {
		return 0, false
	}
	return s.diffs[i].Row(s.width), true
}

// ClearHighlights drops every highlight flag on both sides.
func (s *Session) ClearHighlights() {
	rows.ClearHighlights(s.sides[types.SideA].rows, s.sides[types.SideB].rows)
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
