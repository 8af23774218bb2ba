// Goalgraph - Goal-Oriented Agent Planning in Go
//
// Goalgraph picks which agents to run, and in what order, to produce a goal
// key from the keys a run already holds. Every agent declares the keys it
// needs and the one key it produces. The agents form a dependency graph in
// which a key becomes available only once all inputs of some producing agent
// are available (an AND-join), and the planner runs an A* search over sets of
// available keys to find the shortest sequence of agents.
//
// # Quick Start
//
//	u1 := agentic.NewAgent("U1", []string{"A"}, "B", fetch)
//	u2 := agentic.NewAgent("U2", []string{"B", "C"}, "D", combine)
//
//	w, err := agentic.NewWorkflow("D", []agentic.Agent{u1, u2})
//	if err != nil {
//		return err
//	}
//	d, err := w.Invoke(ctx, agentic.NewScope(map[string]any{"A": a, "C": c}))
//
// # Packages
//
//   - depgraph: the key graph, immutable search states and the A* search
//   - planner: maps agents onto the graph, translates search paths into
//     ordered agent plans and hands them out one action at a time
//   - agentic: the execution loop with scopes, retries, listeners and tracing
//   - store: scope persistence with memory, file, redis, postgres and sqlite
//     backends
//   - catalog: agents declared in YAML with Jinja templates, hot reloaded
//   - log: the logging facade used by every package
//
// The goalgraph command (cmd/goalgraph) plans, draws and runs catalogs from
// the shell.
package goalgraph // import "github.com/smallnest/goalgraph"
