package fight

import "github.com/ringside-tui/ringside/internal/core"

// Ring is the trapezoidal floor. Depth (y) runs from the front rope at
// MinY to the back rope at MaxY; the walkable width narrows toward the back.
type Ring struct {
	MinX, MaxX float64 // x limits at y = 0
	MinY, MaxY float64
	Slope      float64 // y units per x unit of narrowing
}

// DefaultRing returns the classic ring geometry.
func DefaultRing() Ring {
	return Ring{MinX: 7, MaxX: 60, MinY: 4, MaxY: 22, Slope: 3.16}
}

// Bounds returns the legal x range at depth y.
func (r Ring) Bounds(y float64) (lo, hi float64) {
	return y/r.Slope + r.MinX, -y/r.Slope + r.MaxX
}

// Clamp moves p to the nearest legal position. Depth is clamped first and
// the x range is taken at the clamped depth.
func (r Ring) Clamp(p core.Vec2) core.Vec2 {
	y := core.ClampF(p.Y, r.MinY, r.MaxY)
	lo, hi := r.Bounds(y)
	return core.V(core.ClampF(p.X, lo, hi), y)
}

// Contains reports whether p is already legal.
func (r Ring) Contains(p core.Vec2) bool {
	return r.Clamp(p) == p
}
