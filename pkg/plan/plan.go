// Package plan defines build plans for stack runs.
//
// A plan names the candidate objects for each vertical slot of a stack and
// the parameters of a run. Plans are TOML files:
//
//	[groups]
//	top = ["lid_a", "lid_b"]
//	middle = ["crate", "barrel"]
//	bottom = ["pallet"]
//
//	[build]
//	stacks = 3
//	max_height = 3
//	separation = 0.1
//	seed = 7
//	anchor = [0.0, 0.0, 0.0]
//
// Stacks are assembled from one bottom pick, one to max_height middle picks,
// and one top pick, all drawn uniformly with replacement from the groups.
package plan

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/cache"
	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/scene"
)

const (
	// MinSeparation is the smallest allowed gap between neighboring stacks.
	MinSeparation = 0.1

	// MaxMaxHeight bounds the number of middle objects per stack.
	MaxMaxHeight = 6

	// DefaultSeed is used when the plan does not set one, so runs are
	// reproducible by default.
	DefaultSeed = uint64(42)
)

// Groups lists candidate object names for each vertical slot.
type Groups struct {
	Top    []string `toml:"top"`
	Middle []string `toml:"middle"`
	Bottom []string `toml:"bottom"`
}

// Build holds the run parameters.
type Build struct {
	Stacks     int        `toml:"stacks"`
	MaxHeight  int        `toml:"max_height"`
	Separation float64    `toml:"separation"`
	Seed       uint64     `toml:"seed"`
	Anchor     [3]float64 `toml:"anchor"`
}

// Plan is a parsed build plan.
type Plan struct {
	Groups Groups `toml:"groups"`
	Build  Build  `toml:"build"`
}

// AnchorVec returns the anchor the first object of every stack is moved to.
func (p *Plan) AnchorVec() mgl64.Vec3 {
	return mgl64.Vec3{p.Build.Anchor[0], p.Build.Anchor[1], p.Build.Anchor[2]}
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Violations are INVALID_PLAN errors naming the offending field.
func (p *Plan) ValidateAndSetDefaults() error {
	if len(p.Groups.Top) == 0 {
		return errors.New(errors.ErrCodeInvalidPlan, "top group is empty")
	}
	if len(p.Groups.Middle) == 0 {
		return errors.New(errors.ErrCodeInvalidPlan, "middle group is empty")
	}
	if len(p.Groups.Bottom) == 0 {
		return errors.New(errors.ErrCodeInvalidPlan, "bottom group is empty")
	}
	for _, group := range [][]string{p.Groups.Top, p.Groups.Middle, p.Groups.Bottom} {
		for _, name := range group {
			if err := errors.ValidateObjectName(name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPlan, err, "group member")
			}
		}
	}
	if p.Build.Stacks < 1 {
		return errors.New(errors.ErrCodeInvalidPlan, "stacks must be at least 1")
	}
	if p.Build.MaxHeight < 1 || p.Build.MaxHeight > MaxMaxHeight {
		return errors.New(errors.ErrCodeInvalidPlan, "max_height must be between 1 and %d", MaxMaxHeight)
	}
	if p.Build.Separation < MinSeparation {
		return errors.New(errors.ErrCodeInvalidPlan, "separation must be at least %v", MinSeparation)
	}
	if p.Build.Seed == 0 {
		p.Build.Seed = DefaultSeed
	}
	return nil
}

// ResolveAgainst verifies that every object the plan references exists in
// the scene.
func (p *Plan) ResolveAgainst(host scene.Host) error {
	for _, group := range [][]string{p.Groups.Top, p.Groups.Middle, p.Groups.Bottom} {
		for _, name := range group {
			if _, err := host.GetBoundingBox(name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPlan, err, "plan references %q", name)
			}
		}
	}
	return nil
}

// Digest returns a stable content hash of the plan, used to tie run records
// back to the exact plan that produced them.
func (p *Plan) Digest() string {
	var buf bytes.Buffer
	_ = toml.NewEncoder(&buf).Encode(p)
	return cache.Hash(buf.Bytes())
}

// Parse decodes a TOML plan.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "parse plan")
	}
	return &p, nil
}

// Load reads a TOML plan file at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "plan file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Parse(data)
}
