package rows

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/binkit/pkg/diff"
	"github.com/joshuapare/binkit/pkg/types"
)

// Per-byte text tables, built once.
var (
	hexText    [256]string
	binaryText [256]string
	latin1Rune [256]rune
)

func init() {
	for i := 0; i < 256; i++ {
		hexText[i] = fmt.Sprintf("%02X", i)
		binaryText[i] = fmt.Sprintf("%08b", i)

		r := charmap.Windows1252.DecodeByte(byte(i))
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			r = '.'
		}
		latin1Rune[i] = r
	}
}

// Options controls rendering.
type Options struct {
	Width   int
	Mode    Mode
	Base    int64 // offset added to every row's Start
	Preview Preview
}

// Render splits data into rows of width bytes. The last row may be short.
// A non-positive width yields no rows.
func Render(data []byte, width int, mode Mode) []Row {
	return RenderWith(data, Options{Width: width, Mode: mode})
}

// RenderChecked is Render with the width reported as a range error instead
// of silently producing nothing.
func RenderChecked(data []byte, opts Options) ([]Row, error) {
	if opts.Width <= 0 {
		return nil, types.Rangef("row width must be positive, got %d", opts.Width)
	}
	return RenderWith(data, opts), nil
}

// RenderWith renders data using opts.
func RenderWith(data []byte, opts Options) []Row {
	width := opts.Width
	if width <= 0 || len(data) == 0 {
		return nil
	}

	table := &hexText
	if opts.Mode == Binary {
		table = &binaryText
	}

	out := make([]Row, 0, (len(data)+width-1)/width)
	for off := 0; off < len(data); off += width {
		end := min(off+width, len(data))
		chunk := data[off:end]

		segs := make([]Segment, len(chunk))
		for i, b := range chunk {
			segs[i] = Segment{Text: table[b], Value: b}
		}

		out = append(out, Row{
			Start:    opts.Base + int64(off),
			Segments: segs,
			ASCII:    preview(chunk, opts.Preview),
		})
	}
	return out
}

func preview(chunk []byte, p Preview) string {
	var b strings.Builder
	b.Grow(len(chunk))
	for _, c := range chunk {
		switch {
		case p == PreviewLatin1:
			b.WriteRune(latin1Rune[c])
		case c >= 0x20 && c <= 0x7E:
			b.WriteByte(c)
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Mark overlays diffs onto both sides' rows. Rows or segments a difference
// points past are skipped silently; this happens when one side is shorter.
// Flags are only ever set, so marking twice without ResetMarks duplicates
// DiffIndices entries.
func Mark(rowsA, rowsB []Row, diffs []diff.Difference, width int) {
	if width <= 0 {
		return
	}
	for _, d := range diffs {
		row, col := d.Row(width), d.Column(width)
		markOne(rowsA, row, col)
		markOne(rowsB, row, col)
	}
}

func markOne(rs []Row, row, col int) {
	if row < 0 || row >= len(rs) {
		return
	}
	r := &rs[row]
	r.HasDifference = true
	r.DiffIndices = append(r.DiffIndices, col)
	if col < len(r.Segments) {
		r.Segments[col].IsDifference = true
	}
}

// ResetMarks clears every difference flag so rows can be marked again.
func ResetMarks(rs []Row) {
	for i := range rs {
		rs[i].HasDifference = false
		rs[i].DiffIndices = nil
		for j := range rs[i].Segments {
			rs[i].Segments[j].IsDifference = false
		}
	}
}

// Highlight flags every segment of the rows at the given indices.
// Out-of-range indices are ignored.
func Highlight(rs []Row, indices ...int) {
	for _, idx := range indices {
		if idx < 0 || idx >= len(rs) {
			continue
		}
		for j := range rs[idx].Segments {
			rs[idx].Segments[j].IsHighlighted = true
		}
	}
}

// ClearHighlights drops the highlight flag on both sides.
func ClearHighlights(rowsA, rowsB []Row) {
	for _, rs := range [][]Row{rowsA, rowsB} {
		for i := range rs {
			for j := range rs[i].Segments {
				rs[i].Segments[j].IsHighlighted = false
			}
		}
	}
}
