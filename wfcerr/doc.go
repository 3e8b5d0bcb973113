// Package wfcerr centralizes the three error kinds the WFC core reports,
// per §7 of the design spec: ProgrammerError (hard, non-recoverable misuse),
// Contradiction (a valid but unsatisfiable search state), and ResourceLimit
// (a step budget was exhausted). Every other package in this module returns
// its own sentinel error values (the teacher's per-package convention, e.g.
// topology.ErrNonPositiveDimension) but wraps them with one of the three
// Kind values here so callers can branch on severity with errors.As
// (reading Error.Kind) and still match the sentinel with errors.Is,
// without caring which package produced the error.
package wfcerr
