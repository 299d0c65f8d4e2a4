package diff

import (
	"fmt"
	"sort"
)

// Sentinel is the byte substituted for offsets past a buffer's end.
const Sentinel byte = 0xFF

// Kind classifies why an offset differs.
type Kind int

const (
	// KindValue means both buffers hold a byte at the offset and they disagree.
	KindValue Kind = iota
	// KindAExhausted means A ended before the offset.
	KindAExhausted
	// KindBExhausted means B ended before the offset.
	KindBExhausted
	// KindBothExhausted means the offset is past both ends.
	KindBothExhausted
)

// String returns the description used in reports.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value differs"
	case KindAExhausted:
		return "A exhausted"
	case KindBExhausted:
		return "B exhausted"
	case KindBothExhausted:
		return "out of range on both"
	default:
		return "unknown"
	}
}

// Mirror returns the kind seen from the other side.
func (k Kind) Mirror() Kind {
	switch k {
	case KindAExhausted:
		return KindBExhausted
	case KindBExhausted:
		return KindAExhausted
	default:
		return k
	}
}

// Difference is a single offset where the effective bytes disagree.
// A and B hold Sentinel when that side is out of range.
type Difference struct {
	Offset int64
	A      byte
	B      byte
	Kind   Kind
}

// Address renders the offset as 8 uppercase hex digits.
func (d Difference) Address() string {
	return fmt.Sprintf("%08X", d.Offset)
}

// Row returns the row index the offset falls in for the given width.
func (d Difference) Row(width int) int {
	return int(d.Offset / int64(width))
}

// Column returns the segment index within the row for the given width.
func (d Difference) Column(width int) int {
	return int(d.Offset % int64(width))
}

// Compare returns every offset where a and b disagree, ordered by offset.
func Compare(a, b []byte) []Difference {
	lenA, lenB := len(a), len(b)
	n := max(lenA, lenB)

	var out []Difference
	for i := 0; i < n; i++ {
		byteA, byteB := Sentinel, Sentinel
		if i < lenA {
			byteA = a[i]
		}
		if i < lenB {
			byteB = b[i]
		}
		if byteA == byteB {
			continue
		}
		out = append(out, Difference{
			Offset: int64(i),
			A:      byteA,
			B:      byteB,
			Kind:   classify(i, lenA, lenB),
		})
	}
	return out
}

func classify(off, lenA, lenB int) Kind {
	switch {
	case off >= lenA && off >= lenB:
		return KindBothExhausted
	case off >= lenA:
		return KindAExhausted
	case off >= lenB:
		return KindBExhausted
	default:
		return KindValue
	}
}

// Swap returns the list as Compare(b, a) would produce it.
func Swap(diffs []Difference) []Difference {
	if len(diffs) == 0 {
		return nil
	}
	out := make([]Difference, len(diffs))
	for i, d := range diffs {
		out[i] = Difference{Offset: d.Offset, A: d.B, B: d.A, Kind: d.Kind.Mirror()}
	}
	return out
}

// Next returns the index of the first difference with Offset > off, or -1.
func Next(diffs []Difference, off int64) int {
	i := sort.Search(len(diffs), func(i int) bool { return diffs[i].Offset > off })
	if i == len(diffs) {
		return -1
	}
	return i
}

// Prev returns the index of the last difference with Offset < off, or -1.
func Prev(diffs []Difference, off int64) int {
	i := sort.Search(len(diffs), func(i int) bool { return diffs[i].Offset >= off })
	return i - 1
}

// Summary counts differences per kind.
type Summary struct {
	Total         int
	Values        int
	AExhausted    int
	BExhausted    int
	BothExhausted int
}

// Summarize tallies diffs by kind.
func Summarize(diffs []Difference) Summary {
	s := Summary{Total: len(diffs)}
	for _, d := range diffs {
		switch d.Kind {
		case KindValue:
			s.Values++
		case KindAExhausted:
			s.AExhausted++
		case KindBExhausted:
			s.BExhausted++
		case KindBothExhausted:
			s.BothExhausted++
		}
	}
	return s
}
