// Package session holds the state a host keeps while comparing two files:
// both buffers, pristine copies for revert, the current width and mode, the
// rendered rows and the difference list.
//
// Every change (load, edit, cross-copy, revert, width or mode switch)
// recomputes the differences and re-renders both sides from scratch. A
// Session is not safe for concurrent use; hosts serialize calls.
//
// Highlight timing is the host's job: after Edit or CopyRows the affected
// rows are highlighted, and the host calls ClearHighlights when its own
// timer fires.
package session
