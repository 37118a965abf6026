// Package stack implements box stacking against a scene host.
//
// The [Solver] answers placement queries and performs single moves, the
// [Assembler] rests sequences of objects on top of each other, and the
// [Builder] orchestrates whole runs from a build plan. All three work purely
// through the [scene.Host] boundary: bounding boxes are re-queried before
// every computation and never cached across moves.
package stack

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/geom"
	"github.com/scenestack/scenestack/pkg/scene"
)

// Solver performs placement queries and moves against a scene host.
type Solver struct {
	host scene.Host
}

// NewSolver returns a solver talking to host.
func NewSolver(host scene.Host) *Solver {
	return &Solver{host: host}
}

// CenterPoint returns the reference point of the object's current bounding
// box: x and z at the box center, y selected by mode.
func (s *Solver) CenterPoint(id string, mode geom.RefMode) (mgl64.Vec3, error) {
	box, err := s.boundingBox(id)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return box.RefPoint(mode), nil
}

// Align moves the object by to−from, carrying the point from onto to.
func (s *Solver) Align(id string, from, to mgl64.Vec3) error {
	return s.move(id, geom.Delta(from, to))
}

// SeparateOnX moves the moving object along x until the gap between the two
// bounding boxes equals minGap, leaving the static object untouched.
//
// The moving object is first center-aligned with the static one on x, both
// boxes are re-queried, and the final offset is the gap plus the static
// box's right extent plus the moving box's left extent. Measuring both
// extents from the shared center makes the result exact for boxes of any
// width.
func (s *Solver) SeparateOnX(staticID, movingID string, minGap float64) error {
	if minGap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "separation %v is negative", minGap)
	}

	staticCenter, err := s.CenterPoint(staticID, geom.RefCenter)
	if err != nil {
		return err
	}
	movingCenter, err := s.CenterPoint(movingID, geom.RefCenter)
	if err != nil {
		return err
	}
	if err := s.move(movingID, mgl64.Vec3{staticCenter.X() - movingCenter.X(), 0, 0}); err != nil {
		return err
	}

	// Fresh boxes: the align above moved the moving object.
	staticBox, err := s.boundingBox(staticID)
	if err != nil {
		return err
	}
	movingBox, err := s.boundingBox(movingID)
	if err != nil {
		return err
	}

	staticExtent := staticBox.Max.X() - staticBox.Center().X()
	movingExtent := movingBox.Center().X() - movingBox.Min.X()
	return s.move(movingID, mgl64.Vec3{minGap + staticExtent + movingExtent, 0, 0})
}

func (s *Solver) boundingBox(id string) (geom.Box, error) {
	box, err := s.host.GetBoundingBox(id)
	if err != nil {
		return geom.Box{}, errors.Wrap(errors.ErrCodeHostQuery, err, "bounding box for %q", id)
	}
	return box, nil
}

func (s *Solver) move(id string, delta mgl64.Vec3) error {
	if err := s.host.TranslateRelative(id, delta); err != nil {
		return errors.Wrap(errors.ErrCodeHostQuery, err, "move %q", id)
	}
	return nil
}

// validateSequence rejects sequences that cannot be stacked before any
// object is touched.
func validateSequence(ids []string) error {
	if len(ids) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "empty object sequence")
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "blank id at position %d", i)
		}
	}
	return nil
}
