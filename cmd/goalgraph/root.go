package main

import (
	"strings"

	"github.com/kataras/golog"
	"github.com/smallnest/goalgraph/log"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "goalgraph",
		Short: "Plan and run goal-oriented agent catalogs",
		Long: `goalgraph finds the shortest sequence of agents that turns the keys you
already have into the key you want, and can run that sequence.

Agents are declared in a YAML catalog. Each agent names the keys it needs
and the single key it produces.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			g := golog.New()
			g.SetOutput(cmd.ErrOrStderr())
			logger := log.NewGologLogger(g)
			logger.SetLevel(level)
			log.SetDefaultLogger(logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error or none")

	cmd.AddCommand(
		newPlanCommand(),
		newGraphCommand(),
		newRunCommand(),
		newWatchCommand(),
	)
	return cmd
}

// splitKeys turns "a, b,,c" into [a b c].
func splitKeys(values []string) []string {
	var keys []string
	for _, v := range values {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys
}
