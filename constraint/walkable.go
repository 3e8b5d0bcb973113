package constraint

import (
	"github.com/katalvlaran/wfc/pattern"
	"github.com/katalvlaran/wfc/wave"
)

// cellHasAnyOf reports whether any pattern in ts remains possible at cell.
func cellHasAnyOf(w *wave.Wave, cell int, ts *pattern.TileSet) bool {
	overlap := w.Possible[cell].Clone()
	overlap.InPlaceIntersection(ts.Bits())
	return overlap.Count() > 0
}
