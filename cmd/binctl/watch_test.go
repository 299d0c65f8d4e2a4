package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/binkit/pkg/types"
)

func TestSideIndex(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")

	m, err := sideIndex([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, types.SideA, m[a])
	assert.Equal(t, types.SideB, m[b])

	m, err = sideIndex([]string{a, a})
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Equal(t, types.SideA, m[a])
}

func TestReloadSide(t *testing.T) {
	resetGlobals()
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.bin", []byte{1, 2, 3})
	b := writeTestFile(t, dir, "b.bin", []byte{1, 2, 3})

	s, err := openPair(a, b, 0)
	require.NoError(t, err)
	require.Empty(t, s.Differences())

	writeTestFile(t, dir, "b.bin", []byte{1, 9, 3})
	sides, err := sideIndex([]string{a, b})
	require.NoError(t, err)

	output, _ := captureOutput(t, func() error {
		reloadSide(s, sides, b)
		reloadSide(s, sides, filepath.Join(dir, "unrelated.bin"))
		return nil
	})
	assert.Len(t, s.Differences(), 1)
	assertContains(t, output, []string{"b.bin changed", "1 differences"})
}

func TestRunWatchStopsOnCancel(t *testing.T) {
	resetGlobals()
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.bin", []byte{1})
	b := writeTestFile(t, dir, "b.bin", []byte{2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output, err := captureOutput(t, func() error {
		return runWatch(ctx, []string{a, b})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"1 differences"})
}
