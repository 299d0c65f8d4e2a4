// Package mmfile provides platform-specific helpers for reading whole files
// through a memory mapping.
package mmfile

// ReadOwned maps path, copies its contents into a fresh slice the caller
// owns, and unmaps before returning.
func ReadOwned(path string) ([]byte, error) {
	data, cleanup, err := Map(path)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	if err := cleanup(); err != nil {
		return nil, err
	}
	return out, nil
}
