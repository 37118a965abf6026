package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenestack/scenestack/pkg/cache"
	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/render"
	"github.com/scenestack/scenestack/pkg/scene"
	"github.com/scenestack/scenestack/pkg/stack"
	"github.com/scenestack/scenestack/pkg/stackio"
)

// Export formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// validFormats lists the supported export formats.
var validFormats = []string{FormatSVG, FormatPNG, FormatDOT, FormatJSON}

// ValidateFormat checks that format names a supported export format.
func ValidateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (valid: svg, png, dot, json)", format)
}

// exportCommand creates the export command for rendering built stacks.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		scenePath string
		format    string
		output    string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the stacks of a scene to a file",
		Long: `Render the stacks of a scene to a file.

Formats:
  svg   front (x/y) elevation of every stack (default)
  png   rests-on structure graph rasterized via graphviz
  dot   rests-on structure graph as Graphviz source
  json  machine-readable build report

Rendered svg and png artifacts are cached under the scene content hash,
so re-exporting an unchanged scene is instant. Use --no-cache to force a
fresh render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateFormat(format); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), scenePath, format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "scene document (JSON)")
	cmd.Flags().StringVarP(&format, "format", "f", FormatSVG, "output format: svg, png, dot, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: scene path with format extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.MarkFlagRequired("scene")

	return cmd
}

// runExport renders the scene's stacks in the requested format, consulting
// the artifact cache for svg and png.
func (c *CLI) runExport(ctx context.Context, scenePath, format, output string, noCache bool) error {
	doc, err := scene.Load(scenePath)
	if err != nil {
		return err
	}
	stacks := sceneStacks(doc)
	if len(stacks) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scene %s has no stack groups; run build first", scenePath)
	}

	data, cached, err := c.renderArtifact(ctx, scenePath, doc, stacks, format, noCache)
	if err != nil {
		return err
	}

	// A json report derived from scene.json must not clobber the scene.
	ext := format
	if format == FormatJSON {
		ext = "report.json"
	}
	out := outputPath(scenePath, output, ext)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Exported %s", format)
	printStats(len(stacks), memberCount(stacks), cached)
	printFile(out)
	return nil
}

// renderArtifact produces the export bytes, going through the artifact cache
// for the deterministic image formats.
func (c *CLI) renderArtifact(ctx context.Context, scenePath string, doc *scene.Document, stacks []stack.Stack, format string, noCache bool) (data []byte, cached bool, err error) {
	cacheable := format == FormatSVG || format == FormatPNG

	var key string
	var store cache.Cache
	if cacheable {
		store, err = newCache(noCache)
		if err != nil {
			return nil, false, err
		}
		defer store.Close()

		raw, err := os.ReadFile(scenePath)
		if err != nil {
			return nil, false, fmt.Errorf("read %s: %w", scenePath, err)
		}
		key = cache.NewDefaultKeyer().ArtifactKey(cache.Hash(raw), cache.ArtifactKeyOpts{Format: format})

		// Hit/miss/set hooks fire inside the cache; emitting them here
		// too would double-count every event.
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			c.Logger.Debug("artifact cache hit", "format", format)
			return data, true, nil
		}
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	data, err = renderFormat(doc, stacks, format)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, false, err
	}
	spinner.Stop()

	if cacheable {
		if err := store.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			c.Logger.Warn("could not cache artifact", "err", err)
		}
	}
	return data, false, nil
}

// renderFormat dispatches to the renderer for the chosen format.
func renderFormat(doc *scene.Document, stacks []stack.Stack, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.Elevation(doc, stacks, render.WithGroundLine())
	case FormatPNG:
		return render.RenderPNG(render.ToDOT(stacks))
	case FormatDOT:
		return []byte(render.ToDOT(stacks)), nil
	case FormatJSON:
		res := &stack.Result{Stacks: stacks}
		res.Stats.Objects = memberCount(stacks)
		var buf bytes.Buffer
		if err := stackio.WriteReport(res, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

// sceneStacks lists the scene's groups as stacks in document order.
func sceneStacks(doc *scene.Document) []stack.Stack {
	var stacks []stack.Stack
	for _, g := range doc.Groups() {
		stacks = append(stacks, stack.Stack{Group: g.Name, Members: g.Members})
	}
	return stacks
}

// memberCount totals the objects across stacks.
func memberCount(stacks []stack.Stack) int {
	n := 0
	for _, st := range stacks {
		n += len(st.Members)
	}
	return n
}
