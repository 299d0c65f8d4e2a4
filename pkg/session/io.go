package session

import (
	"github.com/joshuapare/binkit/internal/mmfile"
	"github.com/joshuapare/binkit/pkg/buffer"
)

// Loader reads a file into a new buffer.
type Loader interface {
	Load(path string) (*buffer.Buffer, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*buffer.Buffer, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*buffer.Buffer, error) { return f(path) }

// FileLoader reads files through a read-only mapping and copies the bytes
// into an owned buffer.
type FileLoader struct{}

// Load implements Loader.
func (FileLoader) Load(path string) (*buffer.Buffer, error) {
	data, err := mmfile.ReadOwned(path)
	if err != nil {
		return nil, err
	}
	return buffer.New(path, data), nil
}
