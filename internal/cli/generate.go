package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/canvas"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/errors"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/pipeline"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/render"
)

// Output formats for the generate command.
const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// generateCommand creates the generate command, the main entry point of
// the tool.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output   string
		format   string
		tuning   string
		noCache  bool
		stdout   bool
		noRefine bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [definition.erd]",
		Short: "Compile a diagram definition into a positioned document",
		Long: `Compile a diagram definition into a positioned document.

The generate command parses a definition written in compact cardinality
notation (or the structured YAML form), classifies the topology of the
entity graph, picks the layout strategy that fits it, and writes a JSON
document with one position per entity. Pass "-" to read from stdin.

The strategy is chosen automatically; override it with --strategy when
the automatic pick does not suit the diagram. Results are cached
locally, keyed by the definition text and the layout parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], opts, generateOutput{
				path:     output,
				format:   format,
				tuning:   tuning,
				noCache:  noCache,
				stdout:   stdout,
				noRefine: noRefine,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.json)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json (default), dot, svg")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the document to stdout instead of a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noRefine, "no-refine", false, "skip position refinement passes")
	cmd.Flags().StringVar(&tuning, "config", "", "TOML layout tuning file")

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", pipeline.StrategyAuto,
		"layout strategy: auto, custom-radial, elk-layered, adaptive-force, sequential-chain, grid-fallback")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().Int64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "force simulation seed")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and regenerate")

	return cmd
}

// generateOutput bundles the output-side flags of the generate command.
type generateOutput struct {
	path     string
	format   string
	tuning   string
	noCache  bool
	stdout   bool
	noRefine bool
}

func (c *CLI) runGenerate(ctx context.Context, input string, opts pipeline.Options, out generateOutput) error {
	source, err := readSource(input)
	if err != nil {
		return fmt.Errorf("read definition %s: %w", input, err)
	}
	if out.tuning != "" {
		cfg, err := loadTuning(out.tuning)
		if err != nil {
			return err
		}
		opts.Tuning = cfg
	}
	opts.Source = source
	opts.SkipRefine = out.noRefine
	opts.Logger = c.Logger

	runner := c.newRunner(out.noCache)

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return describeError(err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	payload, ext, err := encodeDocument(ctx, result.Document, out.format)
	if err != nil {
		return err
	}

	if out.stdout {
		_, err := os.Stdout.Write(payload)
		return err
	}

	outputPath := out.path
	if outputPath == "" {
		outputPath = defaultOutputPath(input, ext)
	}
	if err := os.WriteFile(outputPath, payload, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Diagram generated")
	printFile(outputPath)
	printStats(result.Stats.EntityCount, result.Stats.RelationshipCount, result.CacheInfo.Hit)
	printDetail("strategy: %s", result.Strategy)
	printNewline()
	printNextStep("Back to text", appName+" serialize "+outputPath)
	return nil
}

// encodeDocument renders the document into the requested output format
// and returns the payload together with the file extension to use.
func encodeDocument(ctx context.Context, doc *canvas.Document, format string) ([]byte, string, error) {
	switch format {
	case formatJSON:
		data, err := canvas.Marshal(doc)
		return data, ".json", err
	case formatDOT:
		return []byte(render.ToDOT(doc)), ".dot", nil
	case formatSVG:
		svg, err := render.RenderSVG(ctx, render.ToDOT(doc))
		return svg, ".svg", err
	default:
		return nil, "", errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: json, dot, svg)", format)
	}
}

// defaultOutputPath derives the output file from the input path.
// Stdin input lands in the working directory as diagram.<ext>.
func defaultOutputPath(input, ext string) string {
	if input == "-" {
		return "diagram" + ext
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ext
}

// describeError rewrites pipeline errors into the messages users see.
// Syntax errors carry their line number; everything else passes through
// with its code-level message.
func describeError(err error) error {
	if se, ok := errors.AsSyntax(err); ok {
		printError("Syntax error on line %d: %s", se.Line, se.Message)
		return err
	}
	if msg := errors.UserMessage(err); msg != "" {
		printError("%s", msg)
	}
	return err
}
