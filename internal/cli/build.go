package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenestack/scenestack/pkg/observability"
	"github.com/scenestack/scenestack/pkg/plan"
	"github.com/scenestack/scenestack/pkg/runlog"
	"github.com/scenestack/scenestack/pkg/scene"
	"github.com/scenestack/scenestack/pkg/stack"
	"github.com/scenestack/scenestack/pkg/stackio"
)

// buildOptions collects the build command flags.
type buildOptions struct {
	scenePath  string
	planPath   string
	outPath    string
	xmlPath    string
	reportPath string
	seed       uint64
	stacks     int
	maxHeight  int
	separation float64
	dryRun     bool
}

// buildCommand creates the build command, the main entry point of the tool.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build stacks of scene objects from a plan",
		Long: `Build stacks of scene objects from a plan.

For every requested stack the builder duplicates one random bottom pick,
one to max-height random middle picks, and one random top pick, groups
them, moves the base to the anchor, and rests each object on the one
below it. Finished stacks are spread along x so neighboring bounding
boxes keep the configured gap.

Plan values can be overridden per run with the --seed, --stacks,
--max-height, and --separation flags. The modified scene is written back
to the scene file unless --out names a different destination.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.Load(opts.planPath)
			if err != nil {
				return err
			}
			applyPlanOverrides(cmd, p, &opts)
			return c.runBuild(cmd.Context(), p, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenePath, "scene", "s", "", "scene document (JSON)")
	cmd.Flags().StringVarP(&opts.planPath, "plan", "p", "", "build plan (TOML)")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "output scene file (default: overwrite --scene)")
	cmd.Flags().StringVar(&opts.xmlPath, "xml", "", "also write stack placements XML to this path")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "also write a JSON build report to this path")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "override the plan seed")
	cmd.Flags().IntVar(&opts.stacks, "stacks", 0, "override the number of stacks")
	cmd.Flags().IntVar(&opts.maxHeight, "max-height", 0, "override the maximum middle object count")
	cmd.Flags().Float64Var(&opts.separation, "separation", 0, "override the gap between stacks")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate the plan against the scene without building")

	_ = cmd.MarkFlagRequired("scene")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

// applyPlanOverrides copies changed flags onto the plan. Only flags the user
// actually set are applied, so plan defaults survive.
func applyPlanOverrides(cmd *cobra.Command, p *plan.Plan, opts *buildOptions) {
	if cmd.Flags().Changed("seed") {
		p.Build.Seed = opts.seed
	}
	if cmd.Flags().Changed("stacks") {
		p.Build.Stacks = opts.stacks
	}
	if cmd.Flags().Changed("max-height") {
		p.Build.MaxHeight = opts.maxHeight
	}
	if cmd.Flags().Changed("separation") {
		p.Build.Separation = opts.separation
	}
}

// runBuild loads the scene, runs the builder, and persists the results.
func (c *CLI) runBuild(ctx context.Context, p *plan.Plan, opts buildOptions) error {
	doc, err := scene.Load(opts.scenePath)
	if err != nil {
		return err
	}

	if opts.dryRun {
		if err := p.ValidateAndSetDefaults(); err != nil {
			return err
		}
		if err := p.ResolveAgainst(doc); err != nil {
			return err
		}
		printSuccess("Plan is buildable against %s", opts.scenePath)
		printDetail("stacks: %d, max height: %d, separation: %v, seed: %d",
			p.Build.Stacks, p.Build.MaxHeight, p.Build.Separation, p.Build.Seed)
		return nil
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %d stacks...", p.Build.Stacks))
	spinner.Start()

	// Narrate progress on the spinner, one update per placed stack.
	observability.SetBuildHooks(&spinnerBuildHooks{spinner: spinner, total: p.Build.Stacks})
	defer observability.SetBuildHooks(observability.NoopBuildHooks{})

	builder := stack.NewBuilder(doc, c.Logger)
	res, err := builder.Build(ctx, p)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Assembled %d stacks", len(res.Stacks)))

	outPath := opts.outPath
	if outPath == "" {
		outPath = opts.scenePath
	}
	if err := scene.Save(doc, outPath); err != nil {
		return err
	}

	if opts.xmlPath != "" {
		file, err := stackio.FromScene(doc, res.Stacks)
		if err != nil {
			return err
		}
		if err := stackio.WriteFile(file, opts.xmlPath); err != nil {
			return err
		}
	}
	if opts.reportPath != "" {
		if err := stackio.SaveReport(res, opts.reportPath); err != nil {
			return err
		}
	}

	c.recordRun(ctx, res, opts.scenePath, p)

	printSuccess("Built %d stacks", len(res.Stacks))
	printStats(len(res.Stacks), res.Stats.Objects, false)
	printStackTree(res.Stacks)
	printFile(outPath)
	if opts.xmlPath != "" {
		printFile(opts.xmlPath)
	}
	if opts.reportPath != "" {
		printFile(opts.reportPath)
	}
	printNextStep("Render an elevation", fmt.Sprintf("scenestack export --scene %s", outPath))

	return nil
}

// recordRun appends a run record. Failures here are logged, not fatal: the
// scene is already saved and the run record is bookkeeping.
func (c *CLI) recordRun(ctx context.Context, res *stack.Result, scenePath string, p *plan.Plan) {
	store, err := newRunStore()
	if err != nil {
		c.Logger.Warn("run record store unavailable", "err", err)
		return
	}
	defer store.Close()

	if err := store.Append(ctx, runlog.FromResult(res, scenePath, p.Digest())); err != nil {
		c.Logger.Warn("could not record run", "err", err)
		return
	}
	c.Logger.Debug("recorded run", "id", res.RunID)
}

// printStackTree renders the built stacks as a tree, members bottom to top.
func printStackTree(stacks []stack.Stack) {
	for _, st := range stacks {
		fmt.Println("  " + StyleHighlight.Render(st.Group))
		for i, member := range st.Members {
			branch := "├─"
			if i == len(st.Members)-1 {
				branch = "└─"
			}
			fmt.Println("  " + StyleDim.Render(branch) + " " + StyleValue.Render(member) + " " + StyleDim.Render(slotLabel(i, len(st.Members))))
		}
	}
}

// spinnerBuildHooks feeds build progress to a spinner, so a long run shows
// which stack is being placed instead of a static label.
type spinnerBuildHooks struct {
	observability.NoopBuildHooks
	spinner *Spinner
	total   int
	placed  int
}

func (h *spinnerBuildHooks) OnStackPlaced(ctx context.Context, group string, members int) {
	h.placed++
	h.spinner.SetMessage(fmt.Sprintf("Placed %s, %d objects (%d/%d)...", group, members, h.placed, h.total))
}

// slotLabel names the vertical slot of the i-th member in a stack of n.
func slotLabel(i, n int) string {
	switch {
	case i == 0:
		return "(base)"
	case i == n-1:
		return "(top)"
	default:
		return fmt.Sprintf("(mid %d)", i)
	}
}
