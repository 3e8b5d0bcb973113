// Package wfclog is a thin zerolog wrapper satisfying propagator.Logger.
// It exists so the core propagator stays dependency-free for callers who
// don't want structured logging: Logger is an interface, and this package
// is the only thing that imports zerolog.
package wfclog
