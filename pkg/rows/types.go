package rows

import (
	"fmt"
	"strings"

	"github.com/joshuapare/binkit/pkg/types"
)

// Mode selects the textual form of each byte.
type Mode int

const (
	// Hex renders each byte as two uppercase hex digits.
	Hex Mode = iota
	// Binary renders each byte as eight zero-padded binary digits.
	Binary
)

func (m Mode) String() string {
	if m == Binary {
		return "binary"
	}
	return "hex"
}

// TokenLen is the rendered width of one byte in this mode.
func (m Mode) TokenLen() int {
	if m == Binary {
		return 8
	}
	return 2
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Binary {
		return Hex
	}
	return Binary
}

// ParseMode accepts "hex" or "binary" (also "bin").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex", "":
		return Hex, nil
	case "binary", "bin":
		return Binary, nil
	default:
		return Hex, types.Validationf("unknown display mode %q (want hex or binary)", s)
	}
}

// Preview selects how the character column is produced.
type Preview int

const (
	// PreviewASCII shows 0x20-0x7E as-is and everything else as '.'.
	PreviewASCII Preview = iota
	// PreviewLatin1 decodes through Windows-1252 and keeps printable glyphs.
	PreviewLatin1
)

func (p Preview) String() string {
	if p == PreviewLatin1 {
		return "latin1"
	}
	return "ascii"
}

// ParsePreview accepts "ascii" or "latin1" (also "cp1252").
func ParsePreview(s string) (Preview, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascii", "":
		return PreviewASCII, nil
	case "latin1", "cp1252", "windows-1252":
		return PreviewLatin1, nil
	default:
		return PreviewASCII, types.Validationf("unknown preview charset %q (want ascii or latin1)", s)
	}
}

// Widths lists the recognized bytes-per-row settings.
var Widths = []int{8, 16, 32}

// DefaultWidth is the width used when none is configured.
const DefaultWidth = 16

// ValidateWidth rejects widths outside Widths.
func ValidateWidth(w int) error {
	for _, ok := range Widths {
		if w == ok {
			return nil
		}
	}
	return types.Validationf("unsupported row width %d (want one of %v)", w, Widths)
}

// NextWidth cycles through Widths, starting over after the last one.
func NextWidth(w int) int {
	for i, ok := range Widths {
		if w == ok {
			return Widths[(i+1)%len(Widths)]
		}
	}
	return DefaultWidth
}

// Segment is one byte's rendered text plus its display flags.
type Segment struct {
	Text          string
	Value         byte
	IsDifference  bool
	IsHighlighted bool
}

// Row is one fixed-width slice of a buffer.
type Row struct {
	Start         int64 // absolute offset of the first segment
	Segments      []Segment
	ASCII         string // one rune per segment
	HasDifference bool
	DiffIndices   []int // segment indices named by Mark, in mark order
}

// Len returns the number of bytes in the row.
func (r Row) Len() int { return len(r.Segments) }

// End returns the offset one past the row's last byte.
func (r Row) End() int64 { return r.Start + int64(len(r.Segments)) }

// Address renders Start as 8 uppercase hex digits.
func (r Row) Address() string { return fmt.Sprintf("%08X", r.Start) }

// Text joins the segment texts with single spaces.
func (r Row) Text() string {
	var b strings.Builder
	for i, s := range r.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// Bytes returns the bytes the row was rendered from.
func (r Row) Bytes() []byte {
	out := make([]byte, len(r.Segments))
	for i, s := range r.Segments {
		out[i] = s.Value
	}
	return out
}

// Highlighted reports whether any segment is highlighted.
func (r Row) Highlighted() bool {
	for _, s := range r.Segments {
		if s.IsHighlighted {
			return true
		}
	}
	return false
}
