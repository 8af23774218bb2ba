package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/smallnest/goalgraph/catalog"
	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	var (
		goal string
		have []string
	)

	cmd := &cobra.Command{
		Use:   "watch <catalog>",
		Short: "Re-plan whenever the catalog file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			l, err := catalog.NewLoader(args[0], goal)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			keys := splitKeys(have)
			show := func(c *catalog.Catalog) {
				if err := printPlan(out, c, goalOrDefault(goal, c), keys); err != nil {
					fmt.Fprintln(out, styleError.Render(err.Error()))
				}
			}

			show(l.Catalog())
			l.OnChange(show)

			stopWatch, err := l.Watch()
			if err != nil {
				return err
			}
			defer stopWatch()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Goal key (default: the catalog goal)")
	cmd.Flags().StringSliceVar(&have, "have", nil, "Keys already known")
	return cmd
}
