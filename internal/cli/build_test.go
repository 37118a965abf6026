package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/geom"
	"github.com/scenestack/scenestack/pkg/plan"
	"github.com/scenestack/scenestack/pkg/scene"
)

func TestSlotLabel(t *testing.T) {
	tests := []struct {
		i, n int
		want string
	}{
		{0, 3, "(base)"},
		{1, 3, "(mid 1)"},
		{2, 3, "(top)"},
		{0, 2, "(base)"},
		{1, 2, "(top)"},
		{2, 5, "(mid 2)"},
	}

	for _, tt := range tests {
		got := slotLabel(tt.i, tt.n)
		if got != tt.want {
			t.Errorf("slotLabel(%d, %d) = %q, want %q", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestApplyPlanOverrides(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := c.buildCommand()

	p := &plan.Plan{}
	p.Build.Stacks = 3
	p.Build.MaxHeight = 2
	p.Build.Separation = 0.5
	p.Build.Seed = 7

	// Only --stacks and --seed changed; the rest keep plan values.
	if err := cmd.Flags().Set("stacks", "5"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("seed", "99"); err != nil {
		t.Fatal(err)
	}

	var opts buildOptions
	opts.stacks = 5
	opts.seed = 99
	applyPlanOverrides(cmd, p, &opts)

	if p.Build.Stacks != 5 {
		t.Errorf("Stacks = %d, want 5", p.Build.Stacks)
	}
	if p.Build.Seed != 99 {
		t.Errorf("Seed = %d, want 99", p.Build.Seed)
	}
	if p.Build.MaxHeight != 2 {
		t.Errorf("MaxHeight = %d, want unchanged 2", p.Build.MaxHeight)
	}
	if p.Build.Separation != 0.5 {
		t.Errorf("Separation = %v, want unchanged 0.5", p.Build.Separation)
	}
}

func TestRunBuildWritesArtifacts(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()

	doc := scene.NewDocument()
	for _, obj := range []struct {
		name string
		max  mgl64.Vec3
	}{
		{"pallet", mgl64.Vec3{2.4, 0.3, 1.6}},
		{"crate", mgl64.Vec3{1.2, 1.0, 1.0}},
		{"lid", mgl64.Vec3{1.4, 0.1, 1.4}},
	} {
		if err := doc.AddObject(obj.name, geom.NewBox(mgl64.Vec3{}, obj.max)); err != nil {
			t.Fatalf("AddObject(%s) error = %v", obj.name, err)
		}
	}
	scenePath := filepath.Join(dir, "scene.json")
	if err := scene.Save(doc, scenePath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	p := &plan.Plan{}
	p.Groups.Top = []string{"lid"}
	p.Groups.Middle = []string{"crate"}
	p.Groups.Bottom = []string{"pallet"}
	p.Build.Stacks = 2
	p.Build.MaxHeight = 2
	p.Build.Separation = 0.5
	p.Build.Seed = 7

	opts := buildOptions{
		scenePath:  scenePath,
		outPath:    filepath.Join(dir, "out.json"),
		xmlPath:    filepath.Join(dir, "placements.xml"),
		reportPath: filepath.Join(dir, "report.json"),
	}

	c := New(io.Discard, LogInfo)
	if err := c.runBuild(context.Background(), p, opts); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	for _, path := range []string{opts.outPath, opts.xmlPath, opts.reportPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output %s: %v", path, err)
		}
	}

	rebuilt, err := scene.Load(opts.outPath)
	if err != nil {
		t.Fatalf("Load(out) error = %v", err)
	}
	if got := len(rebuilt.Groups()); got != 2 {
		t.Errorf("output scene groups = %d, want 2", got)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID() = %q, want %q", got, "01234567")
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID() = %q, want %q", got, "abc")
	}
}
