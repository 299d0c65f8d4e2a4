package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/binkit/internal/writer"
	"github.com/joshuapare/binkit/pkg/buffer"
	"github.com/joshuapare/binkit/pkg/diff"
	"github.com/joshuapare/binkit/pkg/report"
	"github.com/joshuapare/binkit/pkg/rows"
	"github.com/joshuapare/binkit/pkg/types"
)

// memFiles is an in-memory Loader.
type memFiles map[string][]byte

func (m memFiles) Load(path string) (*buffer.Buffer, error) {
	data, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return buffer.New(path, append([]byte(nil), data...)), nil
}

func newTestSession(t *testing.T, width int, files memFiles) (*Session, *writer.MemWriter) {
	t.Helper()
	saver := &writer.MemWriter{}
	s, err := New(Options{Width: width, Loader: files, Saver: saver})
	require.NoError(t, err)
	return s, saver
}

func loadPair(t *testing.T, s *Session, a, b string) {
	t.Helper()
	require.NoError(t, s.Load(types.SideA, a))
	require.NoError(t, s.Load(types.SideB, b))
}

func TestNewValidatesWidth(t *testing.T) {
	_, err := New(Options{Width: 12})
	assert.True(t, types.IsValidation(err))

	s, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, rows.DefaultWidth, s.Width())
	assert.NotEmpty(t, s.ID())
}

func TestLoadComparesWhenBothSidesPresent(t *testing.T) {
	files := memFiles{
		"a.bin": {0x00, 0x01, 0x02, 0x03},
		"b.bin": {0x00, 0xFF, 0x02, 0x03},
	}
	s, _ := newTestSession(t, 8, files)

	require.NoError(t, s.Load(types.SideA, "a.bin"))
	assert.Empty(t, s.Differences())
	assert.Len(t, s.Rows(types.SideA), 1)
	assert.Empty(t, s.Rows(types.SideB))

	require.NoError(t, s.Load(types.SideB, "b.bin"))
	require.Len(t, s.Differences(), 1)
	assert.Equal(t, int64(1), s.Differences()[0].Offset)
	assert.True(t, s.Rows(types.SideA)[0].Segments[1].IsDifference)
	assert.True(t, s.Rows(types.SideB)[0].Segments[1].IsDifference)
}

func TestLoadFailureLeavesSessionUnchanged(t *testing.T) {
	s, _ := newTestSession(t, 8, memFiles{"a.bin": {1}})
	require.NoError(t, s.Load(types.SideA, "a.bin"))

	err := s.Load(types.SideA, "missing.bin")
	require.Error(t, err)
	assert.True(t, types.IsIO(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "a.bin", s.Buffer(types.SideA).Name)
}

func TestEmptyFileCountsAsLoaded(t *testing.T) {
	s, _ := newTestSession(t, 8, memFiles{"empty": {}, "b": {0x41}})
	loadPair(t, s, "empty", "b")
	assert.True(t, s.Loaded(types.SideA))
	require.Len(t, s.Differences(), 1)
	assert.Equal(t, diff.KindAExhausted, s.Differences()[0].Kind)
}

func TestEditRecomputes(t *testing.T) {
	files := memFiles{
		"a": make([]byte, 16),
		"b": make([]byte, 16),
	}
	s, _ := newTestSession(t, 8, files)
	loadPair(t, s, "a", "b")
	require.Empty(t, s.Differences())

	text, err := s.EditText(types.SideA, []int{1})
	require.NoError(t, err)
	assert.Equal(t, "00 00 00 00 00 00 00 00", text)

	require.NoError(t, s.Edit(types.SideA, []int{1}, "00 00 AB 00 00 00 00 00"))
	assert.True(t, s.Modified(types.SideA))
	assert.False(t, s.Modified(types.SideB))
	assert.Equal(t, 16, s.Buffer(types.SideA).Len())

	require.Len(t, s.Differences(), 1)
	assert.Equal(t, int64(10), s.Differences()[0].Offset)
	assert.True(t, s.Rows(types.SideA)[1].HasDifference)
	assert.True(t, s.Rows(types.SideA)[1].Highlighted())
	assert.False(t, s.Rows(types.SideA)[0].Highlighted())

	s.ClearHighlights()
	assert.False(t, s.Rows(types.SideA)[1].Highlighted())
}

func TestEditRejectionsKeepBuffer(t *testing.T) {
	files := memFiles{"a": {1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, "b": {1}}
	s, _ := newTestSession(t, 8, files)
	loadPair(t, s, "a", "b")
	before := append([]byte(nil), s.Buffer(types.SideA).Bytes()...)

	tests := []struct {
		name  string
		idx   []int
		text  string
		check func(error) bool
	}{
		{"bad token", []int{0}, "ZZ 00 00 00 00 00 00 00", types.IsValidation},
		{"wrong count", []int{0}, "00", types.IsValidation},
		{"row out of range", []int{5}, "00", types.IsRange},
		{"empty selection", nil, "00", types.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Edit(types.SideA, tt.idx, tt.text)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.Equal(t, before, s.Buffer(types.SideA).Bytes())
			assert.False(t, s.Modified(types.SideA))
		})
	}
}

func TestEditNonContiguous(t *testing.T) {
	s, _ := newTestSession(t, 8, memFiles{"a": make([]byte, 24), "b": make([]byte, 24)})
	loadPair(t, s, "a", "b")

	text, err := s.EditText(types.SideA, []int{0, 2})
	require.NoError(t, err)
	err = s.Edit(types.SideA, []int{0, 2}, text)
	assert.True(t, types.IsValidation(err))
}

func TestEditBinaryMode(t *testing.T) {
	s, _ := newTestSession(t, 8, memFiles{"a": {0, 0}, "b": {0, 0}})
	loadPair(t, s, "a", "b")
	s.SetMode(rows.Binary)

	require.NoError(t, s.Edit(types.SideB, []int{0}, "00000000 10000001"))
	assert.Equal(t, []byte{0x00, 0x81}, s.Buffer(types.SideB).Bytes())
	require.Len(t, s.Differences(), 1)
}

func TestEditWithoutBuffer(t *testing.T) {
	s, _ := newTestSession(t, 8, nil)
	assert.True(t, types.IsValidation(s.Edit(types.SideA, []int{0}, "00")))
	assert.True(t, types.IsValidation(s.Revert(types.SideA)))
	assert.True(t, types.IsValidation(s.Save(types.SideB)))
	_, err := s.CopyRows(types.SideA, []int{0})
	assert.True(t, types.IsValidation(err))
}

func TestCopyRows(t *testing.T) {
	files := memFiles{
		"a": []byte("AAAAAAAABBBBBBBBCCCC"),
		"b": []byte("xxxxxxxxyyyyyyyy"),
	}
	s, _ := newTestSession(t, 8, files)
	loadPair(t, s, "a", "b")

	res, err := s.CopyRows(types.SideA, []int{0, 2, 9})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Copied)
	assert.Equal(t, 2, res.Skipped, "row 2 does not fit B, row 9 does not exist")
	assert.Equal(t, []byte("AAAAAAAAyyyyyyyy"), s.Buffer(types.SideB).Bytes())
	assert.True(t, s.Modified(types.SideB))
	assert.False(t, s.Modified(types.SideA))
	assert.True(t, s.Rows(types.SideB)[0].Highlighted())
	assert.False(t, s.Rows(types.SideA)[0].HasDifference)
	assert.True(t, s.Rows(types.SideA)[1].HasDifference)
}

func TestCopyAllThenEqual(t *testing.T) {
	files := memFiles{"a": []byte("0123456789abcdef"), "b": []byte("fedcba9876543210")}
	s, _ := newTestSession(t, 8, files)
	loadPair(t, s, "a", "b")

	res, err := s.CopyAll(types.SideB)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Copied)
	assert.Empty(t, s.Differences())
	assert.Equal(t, []byte("fedcba9876543210"), s.Buffer(types.SideA).Bytes())
}

func TestCopyNothingLeavesUnmodified(t *testing.T) {
	s, _ := newTestSession(t, 8, memFiles{"a": make([]byte, 16), "b": make([]byte, 4)})
	loadPair(t, s, "a", "b")

	res, err := s.CopyRows(types.SideA, []int{1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Copied)
	assert.False(t, s.Modified(types.SideB))
}

func TestRevert(t *testing.T) {
	s, _ := newTestSession(t, 8, memFiles{"a": {1, 2, 3}, "b": {1, 2, 3}})
	loadPair(t, s, "a", "b")

	require.NoError(t, s.Edit(types.SideA, []int{0}, "09 09 09"))
	require.Len(t, s.Differences(), 3)

	require.NoError(t, s.Revert(types.SideA))
	assert.False(t, s.Modified(types.SideA))
	assert.Equal(t, []byte{1, 2, 3}, s.Buffer(types.SideA).Bytes())
	assert.Empty(t, s.Differences())
}

func TestSaveAndSaveAs(t *testing.T) {
	s, saver := newTestSession(t, 8, memFiles{"dir/a.bin": {1, 2}, "b.bin": {1, 2}})
	loadPair(t, s, "dir/a.bin", "b.bin")
	require.NoError(t, s.Edit(types.SideA, []int{0}, "01 FF"))

	require.NoError(t, s.Save(types.SideA))
	assert.False(t, s.Modified(types.SideA))
	saved, err := saver.File("dir/a.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0xFF}, saved)

	// Revert now goes back to the saved state, not the loaded one.
	require.NoError(t, s.Revert(types.SideA))
	assert.Equal(t, []byte{1, 0xFF}, s.Buffer(types.SideA).Bytes())

	require.NoError(t, s.SaveAs(types.SideB, "copy/b2.bin"))
	assert.Equal(t, "b2.bin", s.Buffer(types.SideB).Name)
	assert.Equal(t, "copy/b2.bin", s.Buffer(types.SideB).Path)
}

func TestSaveFailureKeepsModified(t *testing.T) {
	s, saver := newTestSession(t, 8, memFiles{"a": {1}, "b": {1}})
	loadPair(t, s, "a", "b")
	require.NoError(t, s.Edit(types.SideA, []int{0}, "02"))

	saver.Err = errors.New("read-only filesystem")
	err := s.Save(types.SideA)
	require.Error(t, err)
	assert.True(t, types.IsIO(err))
	assert.True(t, s.Modified(types.SideA))
	assert.Equal(t, "a", s.Buffer(types.SideA).Path)
}

func TestWidthAndModeChangesRerender(t *testing.T) {
	s, _ := newTestSession(t, 8, memFiles{"a": make([]byte, 40), "b": make([]byte, 41)})
	loadPair(t, s, "a", "b")
	assert.Len(t, s.Rows(types.SideA), 5)
	assert.Equal(t, 6, s.RowCount())

	require.NoError(t, s.SetWidth(32))
	assert.Len(t, s.Rows(types.SideA), 2)
	assert.True(t, s.Rows(types.SideB)[1].HasDifference)

	assert.Error(t, s.SetWidth(7))
	assert.Equal(t, 32, s.Width())

	assert.Equal(t, rows.Binary, s.ToggleMode())
	assert.Len(t, s.Rows(types.SideA)[0].Segments[0].Text, 8)

	s.SetPreview(rows.PreviewLatin1)
	assert.Equal(t, rows.PreviewLatin1, s.Preview())
}

func TestNavigation(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	b[3], b[20], b[21], b[60] = 1, 1, 1, 1
	s, _ := newTestSession(t, 8, memFiles{"a": a, "b": b})
	loadPair(t, s, "a", "b")

	row, ok := s.NextDifference(-1)
	require.True(t, ok)
	assert.Equal(t, 0, row)

	row, ok = s.NextDifference(0)
	require.True(t, ok)
	assert.Equal(t, 2, row)

	row, ok = s.NextDifference(2)
	require.True(t, ok)
	assert.Equal(t, 7, row)

	_, ok = s.NextDifference(7)
	assert.False(t, ok)

	row, ok = s.PrevDifference(7)
	require.True(t, ok)
	assert.Equal(t, 2, row)

	_, ok = s.PrevDifference(0)
	assert.False(t, ok)
}

func TestReportAndExport(t *testing.T) {
	s, saver := newTestSession(t, 8, memFiles{
		"a.bin": {0x00, 0x01, 0x02, 0x03},
		"b.bin": {0x00, 0xFF, 0x02, 0x03},
	})
	loadPair(t, s, "a.bin", "b.bin")

	text, err := s.Report(report.FormatText)
	require.NoError(t, err)
	assert.Contains(t, text, "File A: a.bin\n")
	assert.Contains(t, text, "Address: 0x00000001 | Type: value differs | A: 01 | B: FF")

	require.NoError(t, s.ExportTo("out.txt", report.FormatText))
	saved, err := saver.File("out.txt")
	require.NoError(t, err)
	assert.Equal(t, text, string(saved))

	js, err := s.Report(report.FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(js, "{"))
}

func TestClear(t *testing.T) {
	s, _ := newTestSession(t, 8, memFiles{"a": {1}, "b": {2}})
	loadPair(t, s, "a", "b")
	s.Clear()
	assert.False(t, s.Loaded(types.SideA))
	assert.Empty(t, s.Differences())
	assert.Empty(t, s.Rows(types.SideB))
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xCA, 0xFE}, 0o644))

	buf, err := FileLoader{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "disk.bin", buf.Name)
	assert.Equal(t, []byte{0xCA, 0xFE}, buf.Bytes())

	_, err = FileLoader{}.Load(filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)
}
