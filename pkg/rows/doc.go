// Package rows segments a byte buffer into fixed-width display rows.
//
// Rendering and marking are separate steps. Render produces rows whose
// segments carry only text; Mark overlays a difference list onto the rows of
// both sides; Highlight and ClearHighlights toggle the transient highlight
// flag a host uses to flash recently edited rows. Rows are a disposable view:
// any change to the underlying bytes, the width or the mode means rendering
// again from scratch.
package rows
