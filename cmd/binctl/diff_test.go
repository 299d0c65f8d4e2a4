package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.bin", []byte{0x00, 0x01, 0x02, 0x03})
	b := writeTestFile(t, dir, "b.bin", []byte{0x00, 0xFF, 0x02})
	same := writeTestFile(t, dir, "same.bin", []byte{0x00, 0x01, 0x02, 0x03})

	tests := []struct {
		name           string
		a, b           string
		limit          int
		wantContain    []string
		wantNotContain []string
	}{
		{
			name: "two differences",
			a:    a,
			b:    b,
			wantContain: []string{
				"A: a.bin (4 B)",
				"B: b.bin (3 B)",
				"2 differences (1 value, 0 past end of A, 1 past end of B)",
				"00000001",
				"value differs",
				"A: 01  B: FF",
				"00000003",
				"B exhausted",
			},
		},
		{
			name:           "limit",
			a:              a,
			b:              b,
			limit:          1,
			wantContain:    []string{"00000001", "... 1 more"},
			wantNotContain: []string{"00000003"},
		},
		{
			name:           "identical",
			a:              a,
			b:              same,
			wantContain:    []string{"Files are identical"},
			wantNotContain: []string{"differences"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals()
			diffLimit = tt.limit

			output, err := captureOutput(t, func() error {
				return runDiff([]string{tt.a, tt.b})
			})
			require.NoError(t, err)
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestDiffCommandJSON(t *testing.T) {
	resetGlobals()
	jsonOut = true
	diffLimit = 1

	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.bin", []byte{0x00, 0x01, 0x02, 0x03})
	b := writeTestFile(t, dir, "b.bin", []byte{0x00, 0xFF, 0x02})

	output, err := captureOutput(t, func() error {
		return runDiff([]string{a, b})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var res DiffResult
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Values)
	assert.Equal(t, 1, res.BExhausted)
	assert.True(t, res.Truncated)
	require.Len(t, res.Differences, 1)
	assert.Equal(t, DiffEntry{Address: "00000001", Type: "value differs", A: "01", B: "FF"}, res.Differences[0])
}

func TestDiffCommandMissingFile(t *testing.T) {
	resetGlobals()
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.bin", []byte{1})

	_, err := captureOutput(t, func() error {
		return runDiff([]string{a, dir + "/missing.bin"})
	})
	assert.Error(t, err)
}
