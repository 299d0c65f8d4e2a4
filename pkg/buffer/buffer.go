// Package buffer provides the owned, mutable byte sequence that one side of
// a comparison edits.
package buffer

import "path/filepath"

// Buffer holds a file's bytes plus its identity. A Buffer is owned by a
// single holder; callers must serialize edits.
type Buffer struct {
	Path string
	Name string

	data []byte
}

// New returns a Buffer that takes ownership of data. Name defaults to the
// base of path.
func New(path string, data []byte) *Buffer {
	if data == nil {
		data = []byte{}
	}
	name := ""
	if path != "" {
		name = filepath.Base(path)
	}
	return &Buffer{Path: path, Name: name, data: data}
}

// Bytes returns the live contents. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Replace swaps in new contents. Rows rendered from the old contents are
// stale afterwards.
func (b *Buffer) Replace(data []byte) {
	if data == nil {
		data = []byte{}
	}
	b.data = data
}

// Clone returns a deep copy with the same identity.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return &Buffer{Path: b.Path, Name: b.Name, data: cp}
}

// DisplayName returns Name, falling back to Path, then "(unnamed)".
func (b *Buffer) DisplayName() string {
	switch {
	case b == nil:
		return ""
	case b.Name != "":
		return b.Name
	case b.Path != "":
		return b.Path
	default:
		return "(unnamed)"
	}
}
