package stack

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/geom"
	"github.com/scenestack/scenestack/pkg/scene"
)

func box(xmin, ymin, zmin, xmax, ymax, zmax float64) geom.Box {
	return geom.NewBox(mgl64.Vec3{xmin, ymin, zmin}, mgl64.Vec3{xmax, ymax, zmax})
}

func mustAdd(t *testing.T, d *scene.Document, name string, b geom.Box) {
	t.Helper()
	if err := d.AddObject(name, b); err != nil {
		t.Fatalf("AddObject(%q) = %v", name, err)
	}
}

func worldBox(t *testing.T, d *scene.Document, name string) geom.Box {
	t.Helper()
	b, err := d.GetBoundingBox(name)
	if err != nil {
		t.Fatalf("GetBoundingBox(%q) = %v", name, err)
	}
	return b
}

func sameBox(a, b geom.Box) bool {
	return geom.AlmostEqual(a.Min, b.Min) && geom.AlmostEqual(a.Max, b.Max)
}

func TestSolverCenterPoint(t *testing.T) {
	doc := scene.NewDocument()
	mustAdd(t, doc, "crate", box(0, 0, 0, 2, 4, 2))
	s := NewSolver(doc)

	tests := []struct {
		mode geom.RefMode
		want mgl64.Vec3
	}{
		{geom.RefCenter, mgl64.Vec3{1, 2, 1}},
		{geom.RefTop, mgl64.Vec3{1, 4, 1}},
		{geom.RefBottom, mgl64.Vec3{1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, err := s.CenterPoint("crate", tt.mode)
			if err != nil {
				t.Fatalf("CenterPoint() error = %v", err)
			}
			if !geom.AlmostEqual(got, tt.want) {
				t.Errorf("CenterPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolverCenterPointMissing(t *testing.T) {
	s := NewSolver(scene.NewDocument())

	_, err := s.CenterPoint("ghost", geom.RefTop)
	if err == nil {
		t.Fatal("CenterPoint() expected error for missing object")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeHostQuery {
		t.Errorf("GetCode() = %v, want %v", got, errors.ErrCodeHostQuery)
	}
	if !errors.Is(err, errors.ErrCodeObjectNotFound) {
		t.Error("Is(err, ErrCodeObjectNotFound) = false, want true")
	}
}

func TestSolverAlign(t *testing.T) {
	doc := scene.NewDocument()
	mustAdd(t, doc, "crate", box(0, 0, 0, 2, 2, 2))
	s := NewSolver(doc)

	// Move the top center onto a target point.
	if err := s.Align("crate", mgl64.Vec3{1, 2, 1}, mgl64.Vec3{5, 0, 0}); err != nil {
		t.Fatalf("Align() error = %v", err)
	}

	want := box(4, -2, -1, 6, 0, 1)
	if got := worldBox(t, doc, "crate"); !sameBox(got, want) {
		t.Errorf("box after Align = %v, want %v", got, want)
	}
}

func TestSeparateOnX(t *testing.T) {
	tests := []struct {
		name       string
		static     geom.Box
		moving     geom.Box
		gap        float64
		wantMoving geom.Box
	}{
		{
			name:       "simple",
			static:     box(0, 0, 0, 2, 2, 2),
			moving:     box(10, 5, 3, 11, 6, 4),
			gap:        0.5,
			wantMoving: box(2.5, 5, 3, 3.5, 6, 4),
		},
		{
			name:       "wide moving negative static",
			static:     box(-3, 0, 0, -1, 1, 1),
			moving:     box(4, 0, 0, 10, 2, 2),
			gap:        1,
			wantMoving: box(0, 0, 0, 6, 2, 2),
		},
		{
			name:       "zero gap touches",
			static:     box(0, 0, 0, 2, 2, 2),
			moving:     box(5, 0, 0, 6, 1, 1),
			gap:        0,
			wantMoving: box(2, 0, 0, 3, 1, 1),
		},
		{
			name:       "moving already left of static",
			static:     box(0, 0, 0, 2, 2, 2),
			moving:     box(-9, 0, 0, -8, 1, 1),
			gap:        0.25,
			wantMoving: box(2.25, 0, 0, 3.25, 1, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := scene.NewDocument()
			mustAdd(t, doc, "static", tt.static)
			mustAdd(t, doc, "moving", tt.moving)
			s := NewSolver(doc)

			if err := s.SeparateOnX("static", "moving", tt.gap); err != nil {
				t.Fatalf("SeparateOnX() error = %v", err)
			}

			if got := worldBox(t, doc, "moving"); !sameBox(got, tt.wantMoving) {
				t.Errorf("moving box = %v, want %v", got, tt.wantMoving)
			}
			if got := worldBox(t, doc, "static"); !sameBox(got, tt.static) {
				t.Errorf("static box = %v, want %v (static must not move)", got, tt.static)
			}

			gotGap := worldBox(t, doc, "moving").Min.X() - tt.static.Max.X()
			if diff := gotGap - tt.gap; diff > geom.Epsilon || diff < -geom.Epsilon {
				t.Errorf("gap = %v, want %v", gotGap, tt.gap)
			}
		})
	}
}

func TestSeparateOnXNegativeGap(t *testing.T) {
	doc := scene.NewDocument()
	mustAdd(t, doc, "static", box(0, 0, 0, 1, 1, 1))
	mustAdd(t, doc, "moving", box(5, 0, 0, 6, 1, 1))
	s := NewSolver(doc)

	err := s.SeparateOnX("static", "moving", -0.5)
	if err == nil {
		t.Fatal("SeparateOnX() expected error for negative gap")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidInput {
		t.Errorf("GetCode() = %v, want %v", got, errors.ErrCodeInvalidInput)
	}
	if got := worldBox(t, doc, "moving"); !sameBox(got, box(5, 0, 0, 6, 1, 1)) {
		t.Errorf("moving box = %v, want unchanged", got)
	}
}

func TestSeparateOnXMissingObject(t *testing.T) {
	doc := scene.NewDocument()
	mustAdd(t, doc, "static", box(0, 0, 0, 1, 1, 1))
	s := NewSolver(doc)

	err := s.SeparateOnX("static", "ghost", 0.5)
	if err == nil {
		t.Fatal("SeparateOnX() expected error for missing object")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeHostQuery {
		t.Errorf("GetCode() = %v, want %v", got, errors.ErrCodeHostQuery)
	}
}

func TestSeparateOnXMovesWholeGroup(t *testing.T) {
	doc := scene.NewDocument()
	mustAdd(t, doc, "a", box(0, 0, 0, 1, 1, 1))
	mustAdd(t, doc, "b", box(0, 1, 0, 1, 2, 1))
	mustAdd(t, doc, "c", box(8, 0, 0, 9, 1, 1))
	mustAdd(t, doc, "e", box(8, 1, 0, 9, 2, 1))

	left, err := doc.Group([]string{"a", "b"}, "left")
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	right, err := doc.Group([]string{"c", "e"}, "right")
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}

	s := NewSolver(doc)
	if err := s.SeparateOnX(left, right, 0.25); err != nil {
		t.Fatalf("SeparateOnX() error = %v", err)
	}

	if got := worldBox(t, doc, "c"); !sameBox(got, box(1.25, 0, 0, 2.25, 1, 1)) {
		t.Errorf("c box = %v, want %v", got, box(1.25, 0, 0, 2.25, 1, 1))
	}
	if got := worldBox(t, doc, "e"); !sameBox(got, box(1.25, 1, 0, 2.25, 2, 1)) {
		t.Errorf("e box = %v, want %v", got, box(1.25, 1, 0, 2.25, 2, 1))
	}
	if got := worldBox(t, doc, "a"); !sameBox(got, box(0, 0, 0, 1, 1, 1)) {
		t.Errorf("a box = %v, want unchanged", got)
	}
}
