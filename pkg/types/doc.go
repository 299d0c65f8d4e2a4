// Package types holds the small set of shared types used across binkit:
// typed errors with stable categories and the side identifiers used by
// two-buffer comparisons.
//
// Design goals:
//   - Typed errors so callers can branch on intent rather than text.
//   - No dependencies beyond the standard library.
package types
