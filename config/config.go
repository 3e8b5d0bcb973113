package config

import (
	"errors"
	"os"

	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/propagator"
	"github.com/katalvlaran/wfc/topology"
	"github.com/katalvlaran/wfc/wfcerr"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for malformed rule files. All are programmer errors:
// a rule file is written once by a human, not generated at runtime.
var (
	ErrUnknownDirectionSet = errors.New("config: directions must be \"cartesian2d\" or \"cartesian3d\"")
	ErrUnknownDirectionName = errors.New("config: adjacency direction name not valid for this direction set")
	ErrDuplicateTileName    = errors.New("config: tile name declared more than once")
)

var directionNames = map[string]topology.Direction{
	"XPlus": topology.XPlus, "XMinus": topology.XMinus,
	"YPlus": topology.YPlus, "YMinus": topology.YMinus,
	"ZPlus": topology.ZPlus, "ZMinus": topology.ZMinus,
}

type adjacencyRule struct {
	Direction string   `yaml:"direction"`
	To        []string `yaml:"to"`
}

type tileRule struct {
	Name        string          `yaml:"name"`
	Frequency   float64         `yaml:"frequency"`
	Adjacencies []adjacencyRule `yaml:"adjacencies"`
}

type topologyRule struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Depth     int    `yaml:"depth"`
	PeriodicX bool   `yaml:"periodicX"`
	PeriodicY bool   `yaml:"periodicY"`
	PeriodicZ bool   `yaml:"periodicZ"`
	Mask      []bool `yaml:"mask"`
}

// RuleFile is the on-disk shape of a tile rule set: direction set, grid
// shape, per-tile frequency/adjacency declarations, and the propagator's
// run options. See the design spec's configuration section for the
// canonical example.
type RuleFile struct {
	Directions     string       `yaml:"directions"`
	Topology       topologyRule `yaml:"topology"`
	Tiles          []tileRule   `yaml:"tiles"`
	Seed           uint64       `yaml:"seed"`
	BacktrackDepth int          `yaml:"backtrackDepth"`
}

// Load reads and parses the YAML file at path, then compiles it into a
// tile Builder ready for Build, the Topology to run it over, and the
// propagator.Options to construct the propagator with. Constraints are
// not part of the file format; callers append their own to the returned
// Options before calling propagator.New.
func Load(path string) (*pattern.Builder[string], *topology.Topology, propagator.Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, propagator.Options{}, err
	}
	var rf RuleFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, nil, propagator.Options{}, err
	}
	return compile(&rf)
}

func compile(rf *RuleFile) (*pattern.Builder[string], *topology.Topology, propagator.Options, error) {
	ds, err := directionSet(rf.Directions)
	if err != nil {
		return nil, nil, propagator.Options{}, err
	}

	topo, err := topology.New(ds, rf.Topology.Width, rf.Topology.Height, rf.Topology.Depth,
		rf.Topology.PeriodicX, rf.Topology.PeriodicY, rf.Topology.PeriodicZ, nonEmptyMask(rf.Topology.Mask))
	if err != nil {
		return nil, nil, propagator.Options{}, err
	}

	b := pattern.NewBuilder[string](ds)
	seen := make(map[string]struct{}, len(rf.Tiles))
	for _, tile := range rf.Tiles {
		if _, dup := seen[tile.Name]; dup {
			return nil, nil, propagator.Options{}, wfcerr.Programmer(ErrDuplicateTileName)
		}
		seen[tile.Name] = struct{}{}
		if err := b.SetFrequency(tile.Name, tile.Frequency); err != nil {
			return nil, nil, propagator.Options{}, err
		}
	}
	for _, tile := range rf.Tiles {
		for _, adj := range tile.Adjacencies {
			d, ok := directionNames[adj.Direction]
			if !ok || !ds.Valid(d) {
				return nil, nil, propagator.Options{}, wfcerr.Programmer(ErrUnknownDirectionName)
			}
			if err := b.AddAdjacency([]string{tile.Name}, adj.To, d); err != nil {
				return nil, nil, propagator.Options{}, err
			}
		}
	}

	opts := propagator.Options{Seed: rf.Seed, BacktrackDepth: rf.BacktrackDepth}
	return b, topo, opts, nil
}

func directionSet(name string) (topology.DirectionSet, error) {
	switch name {
	case "cartesian2d":
		return topology.Cartesian2D(), nil
	case "cartesian3d":
		return topology.Cartesian3D(), nil
	default:
		return topology.DirectionSet{}, wfcerr.Programmer(ErrUnknownDirectionSet)
	}
}

func nonEmptyMask(m []bool) []bool {
	if len(m) == 0 {
		return nil
	}
	return m
}
