// Package out renders optional debug visualizations of cached frames. It is
// not required by the solver (spec §4.5 "These artifacts ... are not
// required by the solver itself") and is grounded on out/plotting.go's
// Splot/Save shape and msolid/plotter.go's plt.ContourSimple usage for
// rendering a 2D scalar field.
package out

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// RenderTomogram writes a PNG of the zero-level contour line of a mid-plane scalar slice
// (spec §4.5 "tomography slice"), the way out/plotting.go's Plot/Save pair
// turns an in-memory result into an on-disk figure.
func RenderTomogram(dirout, fnkey string, slice []float64, w, h int) error {
	xx := make([][]float64, h)
	yy := make([][]float64, h)
	zz := make([][]float64, h)
	for j := 0; j < h; j++ {
		xx[j] = make([]float64, w)
		yy[j] = make([]float64, w)
		zz[j] = make([]float64, w)
		for i := 0; i < w; i++ {
			xx[j][i] = float64(i)
			yy[j][i] = float64(j)
			zz[j][i] = slice[j*w+i]
		}
	}

	plt.Reset()
	plt.ContourSimple(xx, yy, zz, "colors=['black'], levels=[0]")
	plt.Gll("x", "y", "")
	return plt.SaveD(dirout, io.Sf("%s_tomo.png", fnkey))
}
