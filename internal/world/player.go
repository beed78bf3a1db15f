package world

import "math"

// Player is the camera: a position in world units, a heading and a field of view (radians).
// The renderers only read it.
type Player struct {
	X, Y  float64
	Angle float64
	FOV   float64
}

// Forward returns the unit heading vector.
func (p Player) Forward() (float64, float64) {
	return math.Cos(p.Angle), math.Sin(p.Angle)
}

// Cell returns the grid cell the player stands in.
func (p Player) Cell(blockSize float64) (int, int) {
	return CellAtPoint(p.X, p.Y, blockSize)
}

// RayAngle returns the heading of column i out of n, spread evenly across the FOV.
func (p Player) RayAngle(i, n int) float64 {
	if n <= 0 {
		return p.Angle
	}
	return p.Angle - p.FOV/2 + p.FOV*float64(i)/float64(n)
}

// Sprite is a billboard positioned in world space.
type Sprite struct {
	X, Y float64
}
