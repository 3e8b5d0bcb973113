// Package topology maps cell indices to (x, y, z) coordinates and resolves
// neighbor lookups across a discrete, optionally periodic, optionally masked
// grid. It is the lowest layer of the WFC core: every other package (pattern,
// wave, propagator, constraint) is built on top of Topology and DirectionSet.
//
// A Topology never mutates after construction; New validates its
// inputs once and returns a ProgrammerError (see the wfc error conventions)
// on a malformed mask or non-positive dimension.
package topology
