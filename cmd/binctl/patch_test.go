package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/binkit/pkg/types"
)

func TestPatchCommand(t *testing.T) {
	tests := []struct {
		name      string
		offset    string
		data      string
		mode      string
		want      []byte
		wantKind  types.ErrKind
		wantError bool
	}{
		{name: "hex offset", offset: "0x1", data: "AA BB", mode: "hex", want: []byte{0, 0xAA, 0xBB, 0}},
		{name: "decimal offset", offset: "3", data: "ff", mode: "hex", want: []byte{0, 0, 0, 0xFF}},
		{name: "binary tokens", offset: "0", data: "10000001", mode: "binary", want: []byte{0x81, 0, 0, 0}},
		{name: "past end", offset: "3", data: "AA BB", mode: "hex", wantError: true, wantKind: types.ErrKindRange},
		{name: "negative offset", offset: "-1", data: "AA", mode: "hex", wantError: true, wantKind: types.ErrKindRange},
		{name: "bad token", offset: "0", data: "ZZ", mode: "hex", wantError: true, wantKind: types.ErrKindValidation},
		{name: "bad offset", offset: "abc", data: "AA", mode: "hex", wantError: true, wantKind: types.ErrKindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals()
			path := writeTestFile(t, t.TempDir(), "fw.bin", []byte{0, 0, 0, 0})
			patchOffset, patchData, patchMode = tt.offset, tt.data, tt.mode

			_, err := captureOutput(t, func() error {
				return runPatch([]string{path})
			})

			got, rerr := os.ReadFile(path)
			require.NoError(t, rerr)
			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, types.KindOf(err))
				assert.Equal(t, []byte{0, 0, 0, 0}, got, "file must be untouched")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatchOutputAndDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "fw.bin", []byte{1, 2, 3})

	resetGlobals()
	patchOffset, patchData, patchDryRun = "0", "09", true
	output, err := captureOutput(t, func() error { return runPatch([]string{path}) })
	require.NoError(t, err)
	assertContains(t, output, []string{"Dry run"})
	got, _ := os.ReadFile(path)
	assert.Equal(t, []byte{1, 2, 3}, got)

	resetGlobals()
	out := filepath.Join(dir, "patched.bin")
	patchOffset, patchData, patchOutput = "2", "09", out
	_, err = captureOutput(t, func() error { return runPatch([]string{path}) })
	require.NoError(t, err)

	got, _ = os.ReadFile(path)
	assert.Equal(t, []byte{1, 2, 3}, got)
	got, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 9}, got)
}
