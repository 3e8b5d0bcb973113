// Package scenarios exercises the library end to end against the
// concrete cases named in the design spec's testable-properties section:
// a free uniform fill, a chess-parity coloring, an edged path, a
// plain-cell path, an AtMost count bound, and a deliberately
// unsatisfiable chess model. Each test verifies the resulting invariant
// independently of the constraint that produced it, rather than trusting
// the constraint blindly.
package scenarios
