package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/smallnest/goalgraph/catalog"
	"github.com/smallnest/goalgraph/planner"
	"github.com/spf13/cobra"
)

func newPlanCommand() *cobra.Command {
	var (
		goal string
		have []string
	)

	cmd := &cobra.Command{
		Use:   "plan <catalog>",
		Short: "Print the agents needed to reach a goal",
		Example: `  goalgraph plan agents.yaml --have topic,audience
  goalgraph plan agents.yaml --goal outline --have topic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			return printPlan(cmd.OutOrStdout(), c, goalOrDefault(goal, c), splitKeys(have))
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Goal key (default: the catalog goal)")
	cmd.Flags().StringSliceVar(&have, "have", nil, "Keys already known")
	return cmd
}

func goalOrDefault(goal string, c *catalog.Catalog) string {
	if goal != "" {
		return goal
	}
	return c.Goal
}

func printPlan(w io.Writer, c *catalog.Catalog, goal string, have []string) error {
	if goal == "" {
		return fmt.Errorf("no goal given and the catalog declares none")
	}

	p, err := planner.New(goal, c.Descriptors())
	if err != nil {
		return err
	}
	if _, err := p.FirstAction(planner.Request{Known: have}); err != nil {
		return err
	}

	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Plan for %s from [%s]", goal, strings.Join(have, ", "))))

	plan := p.Plan()
	if len(plan) == 0 {
		fmt.Fprintln(w, styleOK.Render("goal already satisfied"))
		return nil
	}

	for i, d := range plan {
		fmt.Fprintf(w, "%s %s %s\n",
			styleStep.Render(fmt.Sprintf("%2d. %s", i+1, d.Name())),
			styleKey.Render("("+strings.Join(d.InputKeys(), ", ")+")"),
			styleKey.Render("-> "+d.OutputKey()),
		)
	}
	return nil
}
