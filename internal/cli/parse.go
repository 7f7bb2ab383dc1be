package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GuilfordHill/SVMesh/pkg/diagram"
	"github.com/GuilfordHill/SVMesh/pkg/errors"
	"github.com/GuilfordHill/SVMesh/pkg/layout"
	"github.com/GuilfordHill/SVMesh/pkg/render/sink"
)

// parseCommand creates the parse command, which prints the inferred diagram.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		flags   engineFlags
		output  string
		summary bool
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Infer the diagram structure and print it as JSON",
		Long: `Infer the diagram structure from an ASCII mesh sketch.

The output is the levels/columns/links document consumed by the web client.
Reads stdin when no file is given or the file is "-".

Examples:
  meshdiagram parse topology.txt
  cat topology.txt | meshdiagram parse --summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return c.runParse(cmd.Context(), cmd.OutOrStdout(), in, flags, output, summary, compact)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a human-readable summary instead of JSON")
	cmd.Flags().BoolVar(&compact, "compact", false, "print JSON on a single line")

	return cmd
}

// runParse infers the diagram and writes JSON or a summary.
func (c *CLI) runParse(ctx context.Context, w io.Writer, in input, flags engineFlags, output string, summary, compact bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	d, cacheHit, err := runner.ParseWithCacheInfo(ctx, c.options(in, flags))
	if err != nil {
		return err
	}
	prog.debug(fmt.Sprintf("Parsed %s", in.source))

	if summary {
		if d.Empty() {
			printWarning("No diagram recognized in %s", in.source)
			return nil
		}
		printDiagramSummary(d, cacheHit)
		return nil
	}

	opts := []sink.JSONOption{sink.WithJSONLevelsOnly()}
	if !compact {
		opts = append(opts, sink.WithJSONIndent())
	}
	data, err := sink.RenderJSON(d, layout.Grid{}, opts...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode diagram")
	}
	data = append(data, '\n')

	if output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := errors.ValidatePath(output); err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Diagram parsed")
	printFile(output)
	printStats(len(d.Levels), d.NodeCount(), cacheHit)
	return nil
}

// printDiagramSummary prints each level with its nodes and link markers.
func printDiagramSummary(d diagram.Diagram, cached bool) {
	printSuccess("Diagram recognized")
	printStats(len(d.Levels), d.NodeCount(), cached)
	printNewline()

	for i, lvl := range d.Levels {
		parts := make([]string, len(lvl.Nodes))
		for j, n := range lvl.Nodes {
			parts[j] = fmt.Sprintf("%s %s %s",
				StyleNumber.Render(fmt.Sprintf("[%d]", lvl.ColumnPositions[j])),
				typeStyle(n.Type).Render(string(n.Type)),
				StyleValue.Render(n.Label))
		}
		sep := StyleDim.Render("   ")
		if lvl.HasConnections {
			sep = StyleDim.Render(" ─► ")
		}
		printKeyValue(fmt.Sprintf("Level %d", i), strings.Join(parts, sep))

		if i < len(d.Links) {
			mark := StyleDim.Render("│")
			if d.Links[i] {
				mark = StyleHighlight.Render("▲▼ linked")
			}
			printDetail("%s", mark)
		}
	}

	printNewline()
	printKeyValue("Columns", fmt.Sprint(d.Columns))
	printKeyValue("Vertical", fmt.Sprint(d.VerticalArrows))
}
