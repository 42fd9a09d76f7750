package grid

import "math"

// Axis identifies one of the three grid axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Geometry holds the transmitter/receiver placement derived from the
// primary axis (spec §3 "Transducer geometry").
type Geometry struct {
	Tx, Ty, Tz int
	Rx, Ry, Rz int
	MainAxis   Axis
}

// clampIdx confines v to [1, dim-2], one voxel inside the boundary.
func clampIdx(v, dim int) int {
	if v < 1 {
		return 1
	}
	if v > dim-2 {
		return dim - 2
	}
	return v
}

// NewGeometry places transducer and receiver one voxel inside the boundary
// on opposite faces of the chosen primary axis, centered on the other two
// axes, and derives MainAxis as the axis of largest |r-t| (spec §3).
func NewGeometry(g *Grid, axis Axis) Geometry {
	cx, cy, cz := g.W/2, g.H/2, g.D/2
	var t, r [3]int
	switch axis {
	case AxisX:
		t = [3]int{1, cy, cz}
		r = [3]int{g.W - 2, cy, cz}
	case AxisY:
		t = [3]int{cx, 1, cz}
		r = [3]int{cx, g.H - 2, cz}
	default: // AxisZ
		t = [3]int{cx, cy, 1}
		r = [3]int{cx, cy, g.D - 2}
	}
	dims := [3]int{g.W, g.H, g.D}
	for k := 0; k < 3; k++ {
		t[k] = clampIdx(t[k], dims[k])
		r[k] = clampIdx(r[k], dims[k])
	}
	main := AxisX
	best := math.Abs(float64(r[0] - t[0]))
	if d := math.Abs(float64(r[1] - t[1])); d > best {
		main, best = AxisY, d
	}
	if d := math.Abs(float64(r[2] - t[2])); d > best {
		main = AxisZ
	}
	return Geometry{
		Tx: t[0], Ty: t[1], Tz: t[2],
		Rx: r[0], Ry: r[1], Rz: r[2],
		MainAxis: main,
	}
}

// Distance returns L = dx * ||r - t|| (spec §4.2).
func (geo Geometry) Distance(dx float32) float64 {
	ddx := float64(geo.Rx - geo.Tx)
	ddy := float64(geo.Ry - geo.Ty)
	ddz := float64(geo.Rz - geo.Tz)
	return float64(dx) * math.Sqrt(ddx*ddx+ddy*ddy+ddz*ddz)
}

// MainComponent extracts the velocity component along MainAxis.
func (geo Geometry) MainComponent(vx, vy, vz float64) float64 {
	switch geo.MainAxis {
	case AxisX:
		return vx
	case AxisY:
		return vy
	default:
		return vz
	}
}

// TransverseMagnitude returns v_perp = sqrt(sum of the other two components squared).
func (geo Geometry) TransverseMagnitude(vx, vy, vz float64) float64 {
	switch geo.MainAxis {
	case AxisX:
		return math.Hypot(vy, vz)
	case AxisY:
		return math.Hypot(vx, vz)
	default:
		return math.Hypot(vx, vy)
	}
}

// AxisSign returns sign(r_axis - t_axis) along MainAxis, defaulting to +1
// if collinear (spec §4.4 source velocity kick).
func (geo Geometry) AxisSign() float64 {
	var d int
	switch geo.MainAxis {
	case AxisX:
		d = geo.Rx - geo.Tx
	case AxisY:
		d = geo.Ry - geo.Ty
	default:
		d = geo.Rz - geo.Tz
	}
	if d < 0 {
		return -1
	}
	return 1
}
