// Package constraint implements the non-local Constraint plug-ins that
// plug into propagator.WavePropagator: PathConstraint and
// EdgedPathConstraint maintain global connectivity of "could-be-path"
// cells via articulation-point analysis over a derived graph built once
// at Init; CountConstraint bounds how many cells a tile subset may claim.
// See §4.5 and §4.6 of the design spec.
package constraint
