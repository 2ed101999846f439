package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/pipeline"
)

// watchDebounce coalesces the burst of events most editors emit on save.
const watchDebounce = 250 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		output   string
		format   string
		tuning   string
		noRefine bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "watch [definition.erd]",
		Short: "Regenerate the diagram whenever the definition changes",
		Long: `Regenerate the diagram whenever the definition changes.

The watch command runs an initial generation and then keeps watching the
definition file, regenerating the output on every save. Press Ctrl+C to
stop. Stdin input is not supported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], opts, generateOutput{
				path:     output,
				format:   format,
				tuning:   tuning,
				noRefine: noRefine,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.json)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json (default), dot, svg")
	cmd.Flags().BoolVar(&noRefine, "no-refine", false, "skip position refinement passes")
	cmd.Flags().StringVar(&tuning, "config", "", "TOML layout tuning file")

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", pipeline.StrategyAuto,
		"layout strategy: auto, custom-radial, elk-layered, adaptive-force, sequential-chain, grid-fallback")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().Int64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "force simulation seed")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string, opts pipeline.Options, out generateOutput) error {
	if input == "-" {
		return fmt.Errorf("watch requires a file path, not stdin")
	}
	// Watching changes always bypasses the cache; the point is to see the
	// effect of edits, including reverts to a previously seen definition.
	opts.Refresh = true

	if err := c.watchGenerate(ctx, input, opts, out); err != nil {
		printError("%v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors that save via
	// rename-and-replace would otherwise silently detach the watch.
	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", input, err)
	}

	printInfo("Watching %s (Ctrl+C to stop)", input)

	var debounce *time.Timer
	regen := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-regen:
			if err := c.watchGenerate(ctx, input, opts, out); err != nil {
				printError("%v", err)
			}
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case regen <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printWarning("watcher error: %v", err)
		}
	}
}

// watchGenerate runs one generation cycle with a timestamped status line.
func (c *CLI) watchGenerate(ctx context.Context, input string, opts pipeline.Options, out generateOutput) error {
	p := newProgress(c.Logger)
	if err := c.runGenerate(ctx, input, opts, out); err != nil {
		return err
	}
	p.done("regenerated")
	printNewline()
	return nil
}
