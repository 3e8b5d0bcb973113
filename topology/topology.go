package topology

import (
	"errors"

	"github.com/katalvlaran/wfc/wfcerr"
)

// Sentinel errors for topology construction and coordinate lookups.
var (
	ErrNonPositiveDimension = errors.New("topology: width, height and depth must be >= 1")
	ErrBadMaskLength         = errors.New("topology: mask length must equal width*height*depth")
	ErrCoordinateOutOfRange  = errors.New("topology: coordinate out of range")
)

// Topology is a rectangular cuboid of cells, optionally wrapping on each
// axis (periodic boundary) and optionally excluding individual cells via a
// mask. Index of (x,y,z) is x + y*Width + z*Width*Height, matching §3 of
// the design spec. A Topology is immutable after New succeeds.
type Topology struct {
	Width, Height, Depth            int
	PeriodicX, PeriodicY, PeriodicZ bool
	Directions                      DirectionSet
	mask                            []bool // nil means "every cell usable"
}

// New constructs a Topology. mask may be nil (no cells excluded) or a slice
// of length Width*Height*Depth where a false entry excludes that cell from
// every neighbor lookup and from ever being decided.
//
// Returns a wfcerr.KindProgrammer error if a dimension is non-positive or
// mask has the wrong length.
func New(ds DirectionSet, width, height, depth int, periodicX, periodicY, periodicZ bool, mask []bool) (*Topology, error) {
	if width < 1 || height < 1 || depth < 1 {
		return nil, wfcerr.Programmer(ErrNonPositiveDimension)
	}
	if mask != nil && len(mask) != width*height*depth {
		return nil, wfcerr.Programmer(ErrBadMaskLength)
	}
	return &Topology{
		Width: width, Height: height, Depth: depth,
		PeriodicX: periodicX, PeriodicY: periodicY, PeriodicZ: periodicZ,
		Directions: ds,
		mask:       mask,
	}, nil
}

// CellCount returns the total number of cells, Width*Height*Depth (masked
// cells still occupy an index; they are simply never decided).
func (t *Topology) CellCount() int {
	return t.Width * t.Height * t.Depth
}

// Index converts (x,y,z) into a flat cell index. Callers must ensure the
// coordinate is in range; use Coordinate for the inverse.
func (t *Topology) Index(x, y, z int) int {
	return x + y*t.Width + z*t.Width*t.Height
}

// Coordinate converts a flat cell index back into (x,y,z).
func (t *Topology) Coordinate(index int) (x, y, z int) {
	z = index / (t.Width * t.Height)
	rem := index % (t.Width * t.Height)
	y = rem / t.Width
	x = rem % t.Width
	return x, y, z
}

// Masked reports whether the cell at index is excluded from the topology.
func (t *Topology) Masked(index int) bool {
	return t.mask != nil && !t.mask[index]
}

// TryMove returns the destination cell index reached by stepping from index
// in direction d, wrapping on any periodic axis and failing (ok == false)
// on an out-of-bounds non-periodic axis or a masked-off origin/destination.
//
// Invariant: TryMove(TryMove(i,d)) via inv(d) returns i whenever both
// succeed (enforced by construction: Cartesian2D/3D vectors are exact
// negations of their inverse direction's vector).
func (t *Topology) TryMove(index int, d Direction) (int, bool) {
	if t.Masked(index) {
		return 0, false
	}
	x, y, z := t.Coordinate(index)
	dx, dy, dz := t.Directions.Vector(d)

	nx, okx := wrapOrBound(x+dx, t.Width, t.PeriodicX)
	ny, oky := wrapOrBound(y+dy, t.Height, t.PeriodicY)
	nz, okz := wrapOrBound(z+dz, t.Depth, t.PeriodicZ)
	if !okx || !oky || !okz {
		return 0, false
	}
	n := t.Index(nx, ny, nz)
	if t.Masked(n) {
		return 0, false
	}
	return n, true
}

func wrapOrBound(v, size int, periodic bool) (int, bool) {
	if v >= 0 && v < size {
		return v, true
	}
	if !periodic {
		return 0, false
	}
	v %= size
	if v < 0 {
		v += size
	}
	return v, true
}
