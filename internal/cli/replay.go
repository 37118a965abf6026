package cli

import (
	"github.com/spf13/cobra"

	"github.com/scenestack/scenestack/pkg/scene"
	"github.com/scenestack/scenestack/pkg/stackio"
)

// replayCommand creates the replay command for applying recorded placements.
func (c *CLI) replayCommand() *cobra.Command {
	var (
		scenePath string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "replay [placements.xml]",
		Short: "Apply recorded stack placements to a scene",
		Long: `Apply recorded stack placements to a scene.

Replay moves every object named in the placement file to its recorded
absolute position. The solver is never involved: positions are applied
exactly as authored, so a replayed scene matches the scene the file was
exported from even if objects have moved since.

Objects are moved in document order. The first missing object aborts the
replay; objects already moved stay where they are.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := scene.Load(scenePath)
			if err != nil {
				return err
			}
			file, err := stackio.ReadFile(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			if err := stackio.Replay(cmd.Context(), doc, file); err != nil {
				printError("Replay failed")
				return err
			}

			out := outPath
			if out == "" {
				out = scenePath
			}
			if err := scene.Save(doc, out); err != nil {
				return err
			}

			moved := 0
			for _, st := range file.Stacks {
				moved += len(st.Objects)
			}
			prog.done("Replayed placements")
			printSuccess("Moved %d objects across %d stacks", moved, len(file.Stacks))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "scene document (JSON)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output scene file (default: overwrite --scene)")
	_ = cmd.MarkFlagRequired("scene")

	return cmd
}
