// Package render writes a go-echarts HTML heatmap of a tile grid, one
// cell per topology position, colored by decided pattern index. It is
// boundary output, not part of the propagation engine; a nil-safe caller
// can ignore this package entirely.
package render
