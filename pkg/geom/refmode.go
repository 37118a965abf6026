package geom

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// RefMode selects which reference point of a box [Box.RefPoint] returns.
type RefMode int

const (
	// RefCenter is the volumetric center of the box.
	RefCenter RefMode = iota
	// RefTop is the center of the top face.
	RefTop
	// RefBottom is the center of the bottom face.
	RefBottom
)

// ErrUnknownRefMode is returned by [ParseRefMode] for unrecognized mode names.
var ErrUnknownRefMode = errors.New("unknown reference mode")

// String returns the mode name used in flags and logs.
func (m RefMode) String() string {
	switch m {
	case RefCenter:
		return "center"
	case RefTop:
		return "top"
	case RefBottom:
		return "bottom"
	}
	return fmt.Sprintf("RefMode(%d)", int(m))
}

// ParseRefMode parses a mode name as produced by [RefMode.String].
// The legacy spellings "mid", "ymax", and "ymin" are accepted as aliases.
func ParseRefMode(s string) (RefMode, error) {
	switch s {
	case "center", "mid":
		return RefCenter, nil
	case "top", "ymax":
		return RefTop, nil
	case "bottom", "ymin":
		return RefBottom, nil
	}
	return RefCenter, fmt.Errorf("%w: %q", ErrUnknownRefMode, s)
}

// RefPoint returns the reference point of the box for the given mode.
// X and Z are always the box center; the mode selects only the Y value.
func (b Box) RefPoint(mode RefMode) mgl64.Vec3 {
	c := b.Center()
	switch mode {
	case RefTop:
		return mgl64.Vec3{c.X(), b.Max.Y(), c.Z()}
	case RefBottom:
		return mgl64.Vec3{c.X(), b.Min.Y(), c.Z()}
	}
	return c
}

// Delta returns the componentwise difference to−from: the relative move
// that carries point from onto point to.
func Delta(from, to mgl64.Vec3) mgl64.Vec3 {
	return to.Sub(from)
}

// Epsilon is the tolerance used by [AlmostEqual].
const Epsilon = 1e-9

// AlmostEqual reports whether two vectors match within [Epsilon] on every axis.
func AlmostEqual(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, Epsilon)
}
