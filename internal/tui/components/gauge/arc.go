package gauge

import (
	"math"

	drawille "github.com/exrook/drawille-go"
)

// Angles are in screen degrees: 0 is 3 o'clock and they grow clockwise
// because y points down. Rings start at 12 o'clock.
const (
	ringStart     = 270.0
	ringSweep     = 360.0
	ringThickness = 5
)

// ring is a band of concentric circles clipped to [start, start+sweep].
type ring struct {
	cx, cy int
	radius int
	start  float64
	sweep  float64
}

func newRing(centerX, centerY, radius float64, fraction float64) ring {
	return ring{
		cx:     int(centerX),
		cy:     int(centerY),
		radius: int(radius),
		start:  ringStart,
		sweep:  math.Min(math.Max(fraction, 0), 1) * ringSweep,
	}
}

func (r ring) draw(canvas *drawille.Canvas) {
	if r.sweep <= 0 {
		return
	}
	for t := range ringThickness {
		if rad := r.radius - t; rad > 0 {
			r.circle(canvas, rad)
		}
	}
}

// circle rasterises one circle with the midpoint algorithm, which keeps
// neighbouring radii free of gaps.
func (r ring) circle(canvas *drawille.Canvas, rad int) {
	x, y := rad, 0
	d := 1 - rad
	for x >= y {
		for _, p := range [8][2]int{
			{x, -y}, {y, -x}, {-y, -x}, {-x, -y},
			{-x, y}, {-y, x}, {y, x}, {x, y},
		} {
			if r.covers(p[0], p[1]) {
				canvas.Set(r.cx+p[0], r.cy+p[1])
			}
		}

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// covers reports whether the offset (dx, dy) from the centre lies inside
// the clipped sweep, handling arcs that wrap past 360 degrees.
func (r ring) covers(dx, dy int) bool {
	angle := math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	end := r.start + r.sweep
	if end > 360 {
		return angle >= r.start || angle <= end-360
	}
	return angle >= r.start && angle <= end
}
