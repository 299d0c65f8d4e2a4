//go:build !unix

package mmfile

import "os"

// Map reads the whole file. On Windows a live mapping would also block the
// atomic rename used when saving back to the same path.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
