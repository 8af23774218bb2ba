package main

import (
	"fmt"

	"github.com/smallnest/goalgraph/catalog"
	"github.com/smallnest/goalgraph/depgraph"
	"github.com/smallnest/goalgraph/planner"
	"github.com/spf13/cobra"
)

func newGraphCommand() *cobra.Command {
	var (
		goal   string
		have   []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "graph <catalog>",
		Short: "Print the dependency graph of a catalog",
		Example: `  goalgraph graph agents.yaml
  goalgraph graph agents.yaml --have topic --format dot | dot -Tsvg > graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			sg, err := planner.NewSearchGraph(c.Descriptors())
			if err != nil {
				return err
			}

			goal = goalOrDefault(goal, c)
			have := splitKeys(have)

			switch format {
			case "mermaid":
				fmt.Fprint(cmd.OutOrStdout(), sg.Mermaid(have, goal))
			case "dot":
				pre := make([]depgraph.Key, len(have))
				for i, k := range have {
					pre[i] = depgraph.Key(k)
				}
				fmt.Fprint(cmd.OutOrStdout(), depgraph.NewExporter(sg.Graph()).DrawDOT(depgraph.DiagramOptions{
					Preconditions: pre,
					Goal:          depgraph.Key(goal),
					EdgeLabel: func(from, to depgraph.Key) string {
						if d, ok := sg.Producer(string(from), string(to)); ok {
							return d.Name()
						}
						return ""
					},
				}))
			default:
				return fmt.Errorf("unknown format %q, want mermaid or dot", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Goal key to highlight (default: the catalog goal)")
	cmd.Flags().StringSliceVar(&have, "have", nil, "Known keys to highlight")
	cmd.Flags().StringVar(&format, "format", "mermaid", "Output format: mermaid or dot")
	return cmd
}
