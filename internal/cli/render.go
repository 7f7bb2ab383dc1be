package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GuilfordHill/SVMesh/pkg/errors"
	"github.com/GuilfordHill/SVMesh/pkg/pipeline"
)

// renderFlags holds the render-specific command-line flags.
type renderFlags struct {
	formats    string
	output     string
	detailed   bool
	scale      float64
	cardWidth  float64
	cardHeight float64
	gap        float64
}

// renderCommand creates the render command, which writes diagram artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags engineFlags
		rf    renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a mesh sketch to JSON, SVG, DOT, PDF, PNG or text",
		Long: `Render a mesh sketch through the full pipeline: infer the diagram, lay it
out on a card grid and write one file per requested format.

Formats:
  json      levels, columns, links and grid geometry
  svg       card diagram in the web client's colors
  dot       Graphviz source, one rank per level
  nodelink  Graphviz-rendered SVG of the dot output
  text      terminal preview with box-drawing cards
  pdf, png  converted from svg (requires rsvg-convert)

Files are named <base><ext>, where base defaults to the input file name
without its extension. Use -o - with a single format to write to stdout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			opts := c.options(in, flags)
			if rf.formats != "" {
				opts.Formats = pipeline.ParseFormats(rf.formats)
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Detailed = rf.detailed
			opts.Scale = rf.scale
			if rf.cardWidth != 0 {
				opts.CardWidth = rf.cardWidth
			}
			if rf.cardHeight != 0 {
				opts.CardHeight = rf.cardHeight
			}
			if rf.gap != 0 {
				opts.Gap = rf.gap
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts, rf.output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&rf.formats, "format", "f", "", "output format(s): json, svg, dot, nodelink, text, pdf, png (comma-separated; default from config, json)")
	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output base path, or - for stdout (single format only)")
	cmd.Flags().BoolVar(&rf.detailed, "detailed", false, "include node type and column in nodelink labels")
	cmd.Flags().Float64Var(&rf.scale, "scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	cmd.Flags().Float64Var(&rf.cardWidth, "card-width", 0, "card width in SVG units (default from config)")
	cmd.Flags().Float64Var(&rf.cardHeight, "card-height", 0, "card height in SVG units (default from config)")
	cmd.Flags().Float64Var(&rf.gap, "gap", 0, "horizontal gap between cards (default from config)")

	return cmd
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts pipeline.Options, output string) error {
	if output == "-" && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format, got %d", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Source))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if result.Diagram.Empty() {
		return errors.New(errors.ErrCodeNoDiagram, "no diagram recognized in %s", opts.Source)
	}

	if output == "-" {
		_, err := stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, basePath(output, opts.Source))
	if err != nil {
		return err
	}
	prog.debug(fmt.Sprintf("Rendered %d artifacts", len(paths)))

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Levels, result.Stats.NodeCount, result.CacheInfo.RenderHit)
	if opts.Source != pipeline.DefaultSource {
		printNewline()
		printNextStep("Inspect", appName+" inspect "+opts.Source)
	}
	return nil
}

// writeArtifacts writes each format to base plus its extension, in format
// order, and returns the written paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if err := errors.ValidatePath(base); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s artifact produced", f)
		}
		path := base + pipeline.FormatExt[f]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
