package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/canvas"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er/serialize"
)

// serializeCommand creates the serialize command, the inverse of
// generate.
func (c *CLI) serializeCommand() *cobra.Command {
	var (
		output string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "serialize [document.json]",
		Short: "Convert a positioned document back to definition text",
		Long: `Convert a positioned document back to definition text.

The serialize command reads a JSON document (produced by 'generate'),
rebuilds the entity-relationship model, and emits the equivalent text
definition: title, attribute blocks, and relationship lines in compact
cardinality notation. Positions are not part of the text form and are
dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSerialize(args[0], output, stdout)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.erd)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the definition to stdout instead of a file")

	return cmd
}

func (c *CLI) runSerialize(input, output string, stdout bool) error {
	doc, err := canvas.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	d, _, err := doc.ToDiagram()
	if err != nil {
		return describeError(err)
	}
	text, err := serialize.Serialize(d)
	if err != nil {
		return describeError(err)
	}

	if stdout {
		fmt.Print(text)
		return nil
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".erd"
	}
	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Definition written")
	printFile(outputPath)
	printStats(len(d.Entities), len(d.Relationships), false)
	return nil
}
