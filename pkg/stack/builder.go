package stack

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/observability"
	"github.com/scenestack/scenestack/pkg/plan"
	"github.com/scenestack/scenestack/pkg/scene"
)

// Builder orchestrates full build runs: duplicating plan picks, grouping
// them, assembling each stack at the anchor, and spreading the finished
// stacks along x.
type Builder struct {
	Host   scene.Host
	Logger *log.Logger

	// Rand overrides the random source. When nil, a PCG source derived
	// from the plan seed is used, making runs reproducible.
	Rand rand.Source

	solver *Solver
	asm    *Assembler
}

// NewBuilder creates a builder for the given host.
// If logger is nil, the default logger is used.
func NewBuilder(host scene.Host, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{
		Host:   host,
		Logger: logger,
		solver: NewSolver(host),
		asm:    NewAssembler(host),
	}
}

// Stack records one assembled stack: its group and its member objects
// ordered bottom to top.
type Stack struct {
	Group   string   `json:"group"`
	Members []string `json:"members"`
}

// Result contains the outputs of a build run.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string

	// Seed is the seed the run was performed with.
	Seed uint64

	// Stacks lists the assembled stacks in creation order, which is also
	// their left-to-right order after separation.
	Stacks []Stack

	// Stats contains run statistics.
	Stats Stats
}

// Stats contains build statistics.
type Stats struct {
	Objects  int
	Duration time.Duration
}

// Build runs the plan against the host. The plan is validated and resolved
// first, so no object moves unless the whole plan is buildable. Each stack
// is duplicated, grouped, relocated to the anchor, and assembled bottom to
// top; afterwards neighboring stacks are separated pairwise in creation
// order, so every gap equals the plan separation.
//
// Cancelling ctx stops the run between stacks. Host failures abort the run
// and leave already placed stacks where they are.
func (b *Builder) Build(ctx context.Context, p *plan.Plan) (res *Result, err error) {
	if err := p.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := p.ResolveAgainst(b.Host); err != nil {
		return nil, err
	}

	src := b.Rand
	if src == nil {
		src = rand.NewPCG(p.Build.Seed, p.Build.Seed^0xdeadbeef)
	}
	rng := rand.New(src)

	start := time.Now()
	observability.Build().OnBuildStart(ctx, p.Build.Stacks)
	defer func() {
		observability.Build().OnBuildComplete(ctx, p.Build.Stacks, time.Since(start), err)
	}()

	b.Logger.Debug("building stacks", "stacks", p.Build.Stacks, "seed", p.Build.Seed)

	result := &Result{RunID: uuid.NewString(), Seed: p.Build.Seed}
	for i := 1; i <= p.Build.Stacks; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		st, err := b.buildStack(rng, p, i)
		if err != nil {
			return nil, err
		}
		result.Stacks = append(result.Stacks, st)
		result.Stats.Objects += len(st.Members)

		observability.Build().OnStackPlaced(ctx, st.Group, len(st.Members))
		b.Logger.Debug("placed stack", "group", st.Group, "members", len(st.Members))
	}

	for i := 0; i < len(result.Stacks)-1; i++ {
		static, moving := result.Stacks[i].Group, result.Stacks[i+1].Group
		if err := b.solver.SeparateOnX(static, moving, p.Build.Separation); err != nil {
			return nil, err
		}
	}

	result.Stats.Duration = time.Since(start)
	b.Logger.Info("assembled stacks",
		"stacks", len(result.Stacks),
		"objects", result.Stats.Objects,
		"duration", result.Stats.Duration)

	return result, nil
}

// buildStack duplicates, groups, and assembles the i-th stack. The draw
// order mirrors the interactive tool: top pick, bottom pick, middle count,
// then each middle pick.
func (b *Builder) buildStack(rng *rand.Rand, p *plan.Plan, i int) (Stack, error) {
	prefix := fmt.Sprintf("stack%03d", i)

	topPick := p.Groups.Top[rng.IntN(len(p.Groups.Top))]
	bottomPick := p.Groups.Bottom[rng.IntN(len(p.Groups.Bottom))]

	topName, err := b.duplicate(topPick, prefix+"_top")
	if err != nil {
		return Stack{}, err
	}
	baseName, err := b.duplicate(bottomPick, prefix+"_base")
	if err != nil {
		return Stack{}, err
	}

	members := []string{baseName}
	middles := 1 + rng.IntN(p.Build.MaxHeight)
	for j := 1; j <= middles; j++ {
		midPick := p.Groups.Middle[rng.IntN(len(p.Groups.Middle))]
		midName, err := b.duplicate(midPick, fmt.Sprintf("%s_mid%d", prefix, j))
		if err != nil {
			return Stack{}, err
		}
		members = append(members, midName)
	}
	members = append(members, topName)

	group, err := b.Host.Group(members, prefix)
	if err != nil {
		return Stack{}, errors.Wrap(errors.ErrCodeHostQuery, err, "group %q", prefix)
	}

	if err := b.asm.RelocateBase(members, p.AnchorVec()); err != nil {
		return Stack{}, err
	}
	if err := b.asm.Assemble(members); err != nil {
		return Stack{}, err
	}

	return Stack{Group: group, Members: members}, nil
}

func (b *Builder) duplicate(id, newName string) (string, error) {
	assigned, err := b.Host.Duplicate(id, newName)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeHostQuery, err, "duplicate %q", id)
	}
	return assigned, nil
}
