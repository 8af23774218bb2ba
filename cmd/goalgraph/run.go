package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/smallnest/goalgraph/agentic"
	"github.com/smallnest/goalgraph/catalog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRunCommand() *cobra.Command {
	var (
		goal     string
		sets     []string
		resume   string
		scopeID  string
		retries  int
		maxSteps int
		stores   storeFlags
	)

	cmd := &cobra.Command{
		Use:   "run <catalog>",
		Short: "Run the agents needed to reach a goal",
		Long: `Run plans from the keys given with --set and invokes the planned template
agents in order. The scope is saved to the selected store after every agent,
so a failed run can be continued with --resume.

Values given with --set are decoded as YAML scalars, so --set pages=3 stores
a number and --set draft=true a boolean.`,
		Example: `  goalgraph run agents.yaml --set topic=queues --set audience=operators
  goalgraph run agents.yaml --store sqlite --resume 2b7e1f0c-...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}

			values, err := parseSets(sets)
			if err != nil {
				return err
			}

			s, closeStore, err := stores.open(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			opts := []agentic.Option{
				agentic.WithStore(s),
				agentic.WithMaxSteps(maxSteps),
				agentic.WithListener(progressListener(cmd)),
			}
			if retries > 1 {
				cfg := agentic.DefaultRetryConfig()
				cfg.MaxAttempts = retries
				opts = append(opts, agentic.WithRetry(cfg))
			}

			w, err := c.Workflow(goal, opts...)
			if err != nil {
				return err
			}

			var (
				value any
				id    string
			)
			if resume != "" {
				id = resume
				value, err = w.Resume(ctx, resume)
			} else {
				scope := agentic.NewScope(values)
				if scopeID != "" {
					scope = agentic.NewScopeWithID(scopeID, values)
				}
				id = scope.ID()
				value, err = w.Invoke(ctx, scope)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", styleKey.Render("scope:"), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %v\n", styleOK.Render(w.Goal()+":"), value)
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Goal key (default: the catalog goal)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Initial scope value as key=value (repeatable)")
	cmd.Flags().StringVar(&resume, "resume", "", "Continue the stored scope with this ID")
	cmd.Flags().StringVar(&scopeID, "scope-id", "", "ID for a new scope (default: random)")
	cmd.Flags().IntVar(&retries, "retries", 1, "Attempts per agent")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Maximum agents per run, 0 for no limit")
	stores.register(cmd.Flags())
	return cmd
}

func parseSets(sets []string) (map[string]any, error) {
	values := make(map[string]any, len(sets))
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", s)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
			v = raw
		}
		values[key] = v
	}
	return values, nil
}

func progressListener(cmd *cobra.Command) agentic.Listener {
	return agentic.ListenerFunc(func(_ context.Context, ev agentic.Event) {
		w := cmd.ErrOrStderr()
		switch ev.Type {
		case agentic.EventPlan:
			fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("plan: %s", strings.Join(ev.Plan, " -> "))))
		case agentic.EventAgentComplete:
			fmt.Fprintln(w, styleStep.Render(fmt.Sprintf("  %s done in %v", ev.Agent, ev.Duration)))
		case agentic.EventAgentRetry:
			fmt.Fprintln(w, styleWarn.Render(fmt.Sprintf("  %s attempt %d failed: %v", ev.Agent, ev.Attempt, ev.Err)))
		case agentic.EventAgentError:
			fmt.Fprintln(w, styleError.Render(fmt.Sprintf("  %s failed: %v", ev.Agent, ev.Err)))
		}
	})
}
