package edit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/joshuapare/binkit/pkg/rows"
	"github.com/joshuapare/binkit/pkg/types"
)

// ParseTokens parses whitespace-separated byte tokens. Each token must be
// exactly two hex digits in Hex mode or eight binary digits in Binary mode.
func ParseTokens(text string, mode rows.Mode) ([]byte, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, types.Validationf("no byte values entered")
	}

	base := 16
	if mode == rows.Binary {
		base = 2
	}
	want := mode.TokenLen()

	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		if len(f) != want {
			return nil, types.Validationf("invalid %s value %q: want %d digits", mode, f, want)
		}
		v, err := strconv.ParseUint(f, base, 8)
		if err != nil {
			return nil, types.Validationf("invalid %s value %q", mode, f)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// FormatTokens renders rows as editable text: one line per row, segments
// separated by spaces. ParseTokens accepts the result unchanged.
func FormatTokens(rs []rows.Row) string {
	lines := make([]string, len(rs))
	for i, r := range rs {
		lines[i] = r.Text()
	}
	return strings.Join(lines, "\n")
}

// CheckContiguous verifies that the rows' starts, in ascending order, step
// by exactly width. An empty selection is rejected.
func CheckContiguous(rs []rows.Row, width int) error {
	if len(rs) == 0 {
		return types.Validationf("no rows selected")
	}
	starts := make([]int64, len(rs))
	for i, r := range rs {
		starts[i] = r.Start
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	for i := 1; i < len(starts); i++ {
		if starts[i]-starts[i-1] != int64(width) {
			return types.Validationf("selected rows are not contiguous (0x%08X then 0x%08X)", starts[i-1], starts[i])
		}
	}
	return nil
}

// ExpectedCount returns the number of bytes covered by rs.
func ExpectedCount(rs []rows.Row) int {
	n := 0
	for _, r := range rs {
		n += r.Len()
	}
	return n
}

// Prepare validates an edit of the selected rows and returns the offset and
// bytes to pass to Apply.
func Prepare(selected []rows.Row, width int, mode rows.Mode, text string) (int64, []byte, error) {
	if err := CheckContiguous(selected, width); err != nil {
		return 0, nil, err
	}
	data, err := ParseTokens(text, mode)
	if err != nil {
		return 0, nil, err
	}
	if want := ExpectedCount(selected); len(data) != want {
		return 0, nil, types.Validationf("byte count mismatch: expected %d, got %d", want, len(data))
	}

	start := selected[0].Start
	for _, r := range selected[1:] {
		start = min(start, r.Start)
	}
	return start, data, nil
}
