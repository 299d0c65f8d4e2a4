// Package edit applies in-place overwrites and cross-copies to buffers.
//
// Edits never change a buffer's length: Apply overwrites a span and
// CrossCopy copies spans between two buffers at the same offsets. Both
// return fresh slices and leave their inputs untouched, so a failed edit
// leaves the caller's buffer exactly as it was.
//
// Input validation that belongs to the caller (token syntax, byte counts,
// contiguity of a row selection) lives in Prepare and its helpers.
package edit
