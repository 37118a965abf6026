package stack

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/geom"
	"github.com/scenestack/scenestack/pkg/scene"
)

// Assembler stacks sequences of objects bottom to top.
type Assembler struct {
	solver *Solver
}

// NewAssembler returns an assembler working against host.
func NewAssembler(host scene.Host) *Assembler {
	return &Assembler{solver: NewSolver(host)}
}

// Assemble rests each object on the one before it, working strictly upward.
// ids are ordered bottom to top; the first object stays where it is. The
// sequence is validated before any object moves: it must be non-empty and
// free of blank ids. A sequence of one is a no-op, and re-assembling an
// already assembled sequence leaves every object in place.
func (a *Assembler) Assemble(ids []string) error {
	if err := validateSequence(ids); err != nil {
		return err
	}
	for i := 0; i < len(ids)-1; i++ {
		topCenter, err := a.solver.CenterPoint(ids[i], geom.RefTop)
		if err != nil {
			return err
		}
		bottomCenter, err := a.solver.CenterPoint(ids[i+1], geom.RefBottom)
		if err != nil {
			return err
		}
		if err := a.solver.Align(ids[i+1], bottomCenter, topCenter); err != nil {
			return err
		}
	}
	return nil
}

// RelocateBase moves the first object of the sequence so that its bottom
// center sits at anchor. The rest of the sequence stays put; call
// [Assembler.Assemble] afterwards to close the gap.
func (a *Assembler) RelocateBase(ids []string, anchor mgl64.Vec3) error {
	if err := validateSequence(ids); err != nil {
		return err
	}
	bottomCenter, err := a.solver.CenterPoint(ids[0], geom.RefBottom)
	if err != nil {
		return err
	}
	return a.solver.Align(ids[0], bottomCenter, anchor)
}
