// Package agentic executes goal-oriented runs.
//
// A Workflow owns a read-only search graph built from its agents. Each call
// to Invoke creates a planner for the run, asks it for the first action with
// the keys already in the Scope, and then invokes the planned agents one by
// one, writing each result under the agent's output key:
//
//	w, err := agentic.NewWorkflow("D", []agentic.Agent{u1, u2},
//		agentic.WithRetry(agentic.DefaultRetryConfig()),
//		agentic.WithStore(memory.NewMemoryScopeStore()),
//	)
//	value, err := w.Invoke(ctx, agentic.NewScope(map[string]any{"A": a, "C": c}))
//
// With a store configured the scope is saved after planning and after every
// agent, so a failed run can be picked up again with Resume. The agents whose
// outputs were saved are not planned a second time.
package agentic
