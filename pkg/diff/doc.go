// Package diff computes byte-level differences between two buffers.
//
// Comparison walks every offset up to the longer buffer's length. Offsets
// past the end of a shorter buffer read as the sentinel byte 0xFF, so a
// trailing 0xFF in the longer buffer is not reported. The result is always
// recomputed in full; nothing here patches a previous result.
//
// # Usage
//
//	diffs := diff.Compare(a, b)
//	for _, d := range diffs {
//	    fmt.Printf("%s %s %02X %02X\n", d.Address(), d.Kind, d.A, d.B)
//	}
package diff
