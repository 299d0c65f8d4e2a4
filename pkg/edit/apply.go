package edit

import (
	"fmt"

	"github.com/joshuapare/binkit/internal/buf"
	"github.com/joshuapare/binkit/pkg/rows"
	"github.com/joshuapare/binkit/pkg/types"
)

// Apply returns a copy of data with repl written at off. It fails with a
// range error when the span does not fit; data is never modified.
func Apply(data []byte, off int64, repl []byte) ([]byte, error) {
	end, err := buf.CheckSpan(len(data), off, len(repl))
	if err != nil {
		return nil, &types.Error{
			Kind: types.ErrKindRange,
			Msg:  fmt.Sprintf("write %d bytes at offset %d into %d-byte buffer", len(repl), off, len(data)),
			Err:  err,
		}
	}
	out := make([]byte, len(data))
	copy(out, data)
	copy(out[off:end], repl)
	return out, nil
}

// Span is a byte range identified by its absolute start and length.
type Span struct {
	Start int64
	Len   int
}

// SpansOf converts rows to the byte ranges they cover.
func SpansOf(rs []rows.Row) []Span {
	out := make([]Span, len(rs))
	for i, r := range rs {
		out[i] = Span{Start: r.Start, Len: r.Len()}
	}
	return out
}

// CopyResult reports what CrossCopy did.
type CopyResult struct {
	Copied  int // spans copied
	Skipped int // spans outside either buffer
	Bytes   int // bytes copied
}

// CrossCopy returns a copy of dst with each span copied from src at the same
// offset. Spans that fall outside either buffer are skipped and counted.
func CrossCopy(src, dst []byte, spans []Span) ([]byte, CopyResult) {
	out := make([]byte, len(dst))
	copy(out, dst)

	var res CopyResult
	for _, s := range spans {
		from, ok := buf.Slice(src, s.Start, s.Len)
		if !ok || !buf.Has(out, s.Start, s.Len) {
			res.Skipped++
			continue
		}
		copy(out[s.Start:], from)
		res.Copied++
		res.Bytes += s.Len
	}
	return out, res
}
