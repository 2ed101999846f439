package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/analyze"
	"github.com/drlldiego/diagrammer-web-sub004/pkg/er/parse"
)

// analyzeCommand creates the analyze command for topology inspection.
func (c *CLI) analyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [definition.erd]",
		Short: "Report a definition's topology and recommended strategy",
		Long: `Report a definition's topology and recommended strategy.

The analyze command parses the definition and prints the connectivity
classification that drives strategy selection: hubs with their degrees,
chains, clusters with their densities, isolated entities, the coverage
ratios, and the resulting pattern and layout strategy. Pass "-" to read
from stdin.

Use this to understand why 'generate' picked a particular strategy
before overriding it with --strategy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(args[0])
		},
	}
	return cmd
}

func (c *CLI) runAnalyze(input string) error {
	source, err := readSource(input)
	if err != nil {
		return fmt.Errorf("read definition %s: %w", input, err)
	}

	d, err := parse.Parse(source)
	if err != nil {
		return describeError(err)
	}
	a := analyze.Analyze(d)

	fmt.Println(StyleTitle.Render("Topology"))
	printKeyValue("entities", fmt.Sprintf("%d", len(d.Entities)))
	printKeyValue("relationships", fmt.Sprintf("%d", len(d.Relationships)))
	printKeyValue("pattern", string(a.Pattern))
	printKeyValue("strategy", StyleHighlight.Render(string(a.Strategy)))
	printNewline()

	if len(a.Hubs) > 0 {
		fmt.Println(StyleTitle.Render("Hubs"))
		for _, h := range a.Hubs {
			printDetail("%s (degree %d): %s", h.Entity, h.Degree, strings.Join(h.Neighbors, ", "))
		}
		printNewline()
	}
	if len(a.Chains) > 0 {
		fmt.Println(StyleTitle.Render("Chains"))
		for _, ch := range a.Chains {
			kind := "path"
			if ch.Linear {
				kind = "linear"
			}
			printDetail("%s (%s)", strings.Join(ch.Entities, " - "), kind)
		}
		printNewline()
	}
	if len(a.Clusters) > 0 {
		fmt.Println(StyleTitle.Render("Clusters"))
		for _, cl := range a.Clusters {
			printDetail("%s (density %.2f)", strings.Join(cl.Entities, ", "), cl.Density)
		}
		printNewline()
	}
	if len(a.Isolated) > 0 {
		fmt.Println(StyleTitle.Render("Isolated"))
		printDetail("%s", strings.Join(a.Isolated, ", "))
		printNewline()
	}

	fmt.Println(StyleTitle.Render("Coverage"))
	printKeyValue("hub", fmt.Sprintf("%.2f", a.HubCoverage))
	printKeyValue("chain", fmt.Sprintf("%.2f", a.ChainCoverage))
	printKeyValue("cluster", fmt.Sprintf("%.2f", a.ClusterCoverage))
	return nil
}
