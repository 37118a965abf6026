package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/geom"
	"github.com/scenestack/scenestack/pkg/scene"
	"github.com/scenestack/scenestack/pkg/stack"
)

func testScene(t *testing.T) (*scene.Document, []stack.Stack) {
	t.Helper()
	doc := scene.NewDocument()
	add := func(name string, min, max mgl64.Vec3) {
		t.Helper()
		if err := doc.AddObject(name, geom.NewBox(min, max)); err != nil {
			t.Fatalf("AddObject(%q) = %v", name, err)
		}
	}
	add("stack001_base", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 1, 2})
	add("stack001_top", mgl64.Vec3{0.5, 1, 0.5}, mgl64.Vec3{1.5, 2, 1.5})
	add("stack002_base", mgl64.Vec3{3, 0, 0}, mgl64.Vec3{5, 2, 2})

	stacks := []stack.Stack{
		{Group: "stack001", Members: []string{"stack001_base", "stack001_top"}},
		{Group: "stack002", Members: []string{"stack002_base"}},
	}
	return doc, stacks
}

func TestElevation(t *testing.T) {
	doc, stacks := testScene(t)

	svg, err := Elevation(doc, stacks)
	if err != nil {
		t.Fatalf("Elevation() error = %v", err)
	}
	out := string(svg)

	if !strings.HasPrefix(out, "<svg xmlns=") {
		t.Errorf("output does not start with an svg element:\n%s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("output does not end with a closing svg tag:\n%s", out)
	}
	if got := strings.Count(out, "<rect"); got != 3 {
		t.Errorf("rect count = %d, want 3", got)
	}
	for _, name := range []string{"stack001_base", "stack001_top", "stack002_base"} {
		if !strings.Contains(out, ">"+name+"</text>") {
			t.Errorf("output missing label for %q", name)
		}
		if !strings.Contains(out, `id="block-`+name+`"`) {
			t.Errorf("output missing rect id for %q", name)
		}
	}
	if strings.Contains(out, "<line") {
		t.Error("output has a ground line without WithGroundLine()")
	}

	// World extent is x 0..5, y 0..2 at 40 units per scene unit plus margins.
	if !strings.Contains(out, `viewBox="0 0 240.0 120.0"`) {
		t.Errorf("output has unexpected viewBox:\n%s", out)
	}
}

func TestElevationGroundLine(t *testing.T) {
	doc, stacks := testScene(t)

	svg, err := Elevation(doc, stacks, WithGroundLine())
	if err != nil {
		t.Fatalf("Elevation() error = %v", err)
	}
	if !strings.Contains(string(svg), "<line") {
		t.Error("output missing ground line")
	}
}

func TestElevationDeterministic(t *testing.T) {
	doc, stacks := testScene(t)

	first, err := Elevation(doc, stacks, WithScale(20), WithMargin(10))
	if err != nil {
		t.Fatalf("Elevation() error = %v", err)
	}
	second, err := Elevation(doc, stacks, WithScale(20), WithMargin(10))
	if err != nil {
		t.Fatalf("Elevation() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Elevation() output differs between identical calls")
	}
}

func TestElevationEmpty(t *testing.T) {
	doc := scene.NewDocument()

	_, err := Elevation(doc, nil)
	if err == nil {
		t.Fatal("Elevation() expected error for empty input")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidInput {
		t.Errorf("GetCode() = %v, want %v", got, errors.ErrCodeInvalidInput)
	}
}

func TestElevationMissingMember(t *testing.T) {
	doc, stacks := testScene(t)
	stacks[0].Members = append(stacks[0].Members, "ghost")

	_, err := Elevation(doc, stacks)
	if err == nil {
		t.Fatal("Elevation() expected error for missing member")
	}
	if !errors.Is(err, errors.ErrCodeObjectNotFound) {
		t.Errorf("Is(err, ErrCodeObjectNotFound) = false, want true (err = %v)", err)
	}
}
