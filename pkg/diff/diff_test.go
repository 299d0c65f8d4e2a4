package diff

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_ValueDiffers(t *testing.T) {
	a := []byte{0x00, 0x01, 0x02, 0x03}
	b := []byte{0x00, 0xFF, 0x02, 0x03}

	diffs := Compare(a, b)
	require.Len(t, diffs, 1)
	assert.Equal(t, Difference{Offset: 1, A: 0x01, B: 0xFF, Kind: KindValue}, diffs[0])
	assert.Equal(t, "value differs", diffs[0].Kind.String())
	assert.Equal(t, "00000001", diffs[0].Address())
}

func TestCompare_AExhausted(t *testing.T) {
	a := []byte("ABC")
	b := []byte("ABCDE")

	diffs := Compare(a, b)
	require.Len(t, diffs, 2)
	for i, want := range []byte{0x44, 0x45} {
		assert.Equal(t, int64(3+i), diffs[i].Offset)
		assert.Equal(t, KindAExhausted, diffs[i].Kind)
		assert.Equal(t, "A exhausted", diffs[i].Kind.String())
		assert.Equal(t, Sentinel, diffs[i].A)
		assert.Equal(t, want, diffs[i].B)
	}
}

func TestCompare_SentinelMasksTrailingFF(t *testing.T) {
	a := []byte{0x10}
	b := []byte{0x10, 0xFF, 0x20}

	diffs := Compare(a, b)
	require.Len(t, diffs, 1)
	assert.Equal(t, int64(2), diffs[0].Offset)
	assert.Equal(t, KindAExhausted, diffs[0].Kind)
}

func TestCompare_Empty(t *testing.T) {
	assert.Empty(t, Compare(nil, nil))
	assert.Empty(t, Compare([]byte{}, []byte{}))

	diffs := Compare(nil, []byte{0x00, 0xFF})
	require.Len(t, diffs, 1)
	assert.Equal(t, KindAExhausted, diffs[0].Kind)
}

func TestCompare_IdenticalIsEmpty(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for n := 0; n < 64; n++ {
		buf := randomBytes(r, n)
		cp := append([]byte(nil), buf...)
		assert.Empty(t, Compare(buf, cp), "len %d", n)
	}
}

func TestCompare_SwapSymmetry(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for iter := 0; iter < 200; iter++ {
		a := randomBytes(r, r.IntN(40))
		b := randomBytes(r, r.IntN(40))

		ab := Compare(a, b)
		ba := Compare(b, a)
		require.Equal(t, len(ab), len(ba))
		assert.Equal(t, ba, Swap(ab))
		assert.LessOrEqual(t, len(ab), max(len(a), len(b)))
		for i := 1; i < len(ab); i++ {
			assert.Less(t, ab[i-1].Offset, ab[i].Offset)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	assert.Equal(t, KindBothExhausted, classify(5, 3, 4))
	assert.Equal(t, KindAExhausted, classify(3, 3, 4))
	assert.Equal(t, KindBExhausted, classify(3, 4, 3))
	assert.Equal(t, KindValue, classify(2, 3, 3))
	assert.Equal(t, "out of range on both", KindBothExhausted.String())
	assert.Equal(t, "B exhausted", KindBExhausted.String())
}

func TestRowColumn(t *testing.T) {
	d := Difference{Offset: 37}
	assert.Equal(t, 2, d.Row(16))
	assert.Equal(t, 5, d.Column(16))
	assert.Equal(t, 4, d.Row(8))
	assert.Equal(t, 5, d.Column(8))
}

func TestNextPrev(t *testing.T) {
	diffs := []Difference{{Offset: 2}, {Offset: 10}, {Offset: 40}}

	assert.Equal(t, 0, Next(diffs, -1))
	assert.Equal(t, 1, Next(diffs, 2))
	assert.Equal(t, 2, Next(diffs, 39))
	assert.Equal(t, -1, Next(diffs, 40))

	assert.Equal(t, -1, Prev(diffs, 2))
	assert.Equal(t, 0, Prev(diffs, 3))
	assert.Equal(t, 1, Prev(diffs, 40))
	assert.Equal(t, 2, Prev(diffs, 1000))

	assert.Equal(t, -1, Next(nil, 0))
	assert.Equal(t, -1, Prev(nil, 0))
}

func TestSummarize(t *testing.T) {
	diffs := Compare([]byte{1, 2, 3, 4}, []byte{1, 9})
	s := Summarize(diffs)
	assert.Equal(t, Summary{Total: 3, Values: 1, BExhausted: 2}, s)
}

func randomBytes(r *rand.Rand, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		// Small alphabet so equal bytes (including 0xFF) show up often.
		out[i] = []byte{0x00, 0x01, 0x7F, 0xFF}[r.IntN(4)]
	}
	return out
}
