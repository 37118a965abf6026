// Package geom provides axis-aligned box math for scene objects.
//
// All coordinates are world-space with Y up. Boxes are values; operations
// return new boxes rather than mutating in place.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box in world space.
type Box struct {
	Min mgl64.Vec3 `json:"min"`
	Max mgl64.Vec3 `json:"max"`
}

// NewBox returns the box spanning corners a and b, normalized so that
// Min holds the componentwise minimum.
func NewBox(a, b mgl64.Vec3) Box {
	return Box{
		Min: mgl64.Vec3{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()), math.Min(a.Z(), b.Z())},
		Max: mgl64.Vec3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())},
	}
}

// BoxFromSlice builds a box from the six-value host layout
// [xmin, ymin, zmin, xmax, ymax, zmax].
func BoxFromSlice(v [6]float64) Box {
	return Box{
		Min: mgl64.Vec3{v[0], v[1], v[2]},
		Max: mgl64.Vec3{v[3], v[4], v[5]},
	}
}

// Slice returns the box in the six-value host layout
// [xmin, ymin, zmin, xmax, ymax, zmax].
func (b Box) Slice() [6]float64 {
	return [6]float64{b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z()}
}

// Center returns the volumetric center of the box.
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Width returns the extent along the X axis.
func (b Box) Width() float64 { return b.Max.X() - b.Min.X() }

// Height returns the extent along the Y axis.
func (b Box) Height() float64 { return b.Max.Y() - b.Min.Y() }

// Depth returns the extent along the Z axis.
func (b Box) Depth() float64 { return b.Max.Z() - b.Min.Z() }

// Translate returns the box moved by delta.
func (b Box) Translate(delta mgl64.Vec3) Box {
	return Box{Min: b.Min.Add(delta), Max: b.Max.Add(delta)}
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	return Box{
		Min: mgl64.Vec3{
			math.Min(b.Min.X(), other.Min.X()),
			math.Min(b.Min.Y(), other.Min.Y()),
			math.Min(b.Min.Z(), other.Min.Z()),
		},
		Max: mgl64.Vec3{
			math.Max(b.Max.X(), other.Max.X()),
			math.Max(b.Max.Y(), other.Max.Y()),
			math.Max(b.Max.Z(), other.Max.Z()),
		},
	}
}

// Overlaps reports whether the boxes overlap on all three axes.
// Touching faces count as overlapping.
func (b Box) Overlaps(other Box) bool {
	return b.Max.X() >= other.Min.X() && b.Min.X() <= other.Max.X() &&
		b.Max.Y() >= other.Min.Y() && b.Min.Y() <= other.Max.Y() &&
		b.Max.Z() >= other.Min.Z() && b.Min.Z() <= other.Max.Z()
}

// Contains reports whether the point lies inside or on the box.
func (b Box) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// IsValid reports whether Min does not exceed Max on any axis.
func (b Box) IsValid() bool {
	return b.Min.X() <= b.Max.X() && b.Min.Y() <= b.Max.Y() && b.Min.Z() <= b.Max.Z()
}
