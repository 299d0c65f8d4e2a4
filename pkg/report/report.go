// Package report formats a difference list as a human-readable document.
//
// Formatting is pure: nothing here touches the filesystem. Writing the
// result somewhere is the caller's job.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/joshuapare/binkit/pkg/diff"
	"github.com/joshuapare/binkit/pkg/types"
)

// Format specifies the output format of a report.
type Format string

const (
	// FormatText is the fixed-column plain text layout.
	FormatText Format = "text"

	// FormatJSON carries the same fields as JSON.
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", types.Validationf("unknown report format %q (want text or json)", s)
	}
}

// Export renders the text report.
func Export(diffs []diff.Difference, nameA, nameB string) string {
	var b strings.Builder
	b.WriteString("=== Binary Comparison Report ===\n")
	fmt.Fprintf(&b, "File A: %s\n", nameA)
	fmt.Fprintf(&b, "File B: %s\n", nameB)
	fmt.Fprintf(&b, "Total differences: %d\n", len(diffs))
	b.WriteString("=== Differences ===\n")

	for _, d := range sorted(diffs) {
		fmt.Fprintf(&b, "Address: 0x%s | Type: %s | A: %02X | B: %02X\n", d.Address(), d.Kind, d.A, d.B)
	}
	return b.String()
}

// Render renders the report in the requested format.
func Render(diffs []diff.Difference, nameA, nameB string, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return Export(diffs, nameA, nameB), nil
	case FormatJSON:
		return exportJSON(diffs, nameA, nameB)
	default:
		return "", types.Validationf("unknown report format %q", format)
	}
}

type jsonReport struct {
	FileA       string      `json:"file_a"`
	FileB       string      `json:"file_b"`
	Total       int         `json:"total"`
	Differences []jsonEntry `json:"differences"`
}

type jsonEntry struct {
	Offset  int64  `json:"offset"`
	Address string `json:"address"`
	Type    string `json:"type"`
	A       string `json:"a"`
	B       string `json:"b"`
}

func exportJSON(diffs []diff.Difference, nameA, nameB string) (string, error) {
	r := jsonReport{
		FileA:       nameA,
		FileB:       nameB,
		Total:       len(diffs),
		Differences: make([]jsonEntry, 0, len(diffs)),
	}
	for _, d := range sorted(diffs) {
		r.Differences = append(r.Differences, jsonEntry{
			Offset:  d.Offset,
			Address: d.Address(),
			Type:    d.Kind.String(),
			A:       fmt.Sprintf("%02X", d.A),
			B:       fmt.Sprintf("%02X", d.B),
		})
	}
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(out) + "\n", nil
}

// sorted returns diffs ordered by offset, copying only when needed.
func sorted(diffs []diff.Difference) []diff.Difference {
	if sort.SliceIsSorted(diffs, func(i, j int) bool { return diffs[i].Offset < diffs[j].Offset }) {
		return diffs
	}
	cp := append([]diff.Difference(nil), diffs...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Offset < cp[j].Offset })
	return cp
}
