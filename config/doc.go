// Package config loads a tile rule set from a YAML file into the types
// the rest of the module already knows how to run: a pattern.Builder, a
// topology.Topology, and propagator.Options. It is boundary I/O, not
// part of the core propagation engine.
package config
