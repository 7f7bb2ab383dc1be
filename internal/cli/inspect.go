package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/GuilfordHill/SVMesh/pkg/render/sink"
)

// inspectCommand creates the inspect command, an interactive level browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags   engineFlags
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file|-]",
		Short: "Browse the inferred levels and nodes interactively",
		Long: `Browse the inferred levels and nodes of a mesh sketch.

The level table shows each level's node types, whether it is a horizontal
chain and whether it links to the level below. Press enter to list the nodes
of a level with their column assignments.

Use --preview to print a static terminal rendering instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := c.options(in, flags)
			d, err := runner.ParseDiagram(ctx, opts)
			if err != nil {
				return err
			}
			if d.Empty() {
				printWarning("No diagram recognized in %s", in.source)
				return nil
			}

			if preview {
				g, _, err := runner.GenerateLayoutWithCacheInfo(ctx, d, opts)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(sink.RenderText(g))
				return err
			}

			teaOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(os.Stderr)}
			if fromStdin(args) {
				// stdin held the diagram; read keys from the terminal instead.
				teaOpts = append(teaOpts, tea.WithInputTTY())
			}
			p := tea.NewProgram(NewInspectModel(d, in.source), teaOpts...)
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&preview, "preview", false, "print a terminal rendering and exit")

	return cmd
}
