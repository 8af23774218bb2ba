// Package planner turns a set of agent declarations into an ordered plan for
// a goal and steps through that plan one action at a time.
//
// Every agent declares the keys it needs and the single key it produces.
// SearchGraph builds a dependency graph from those declarations. Its
// Search method returns the shortest sequence of agents that produces the goal
// from the keys already known.
//
//	agents := []planner.Descriptor{
//		{AgentName: "researcher", Inputs: []string{"topic"}, Output: "notes"},
//		{AgentName: "writer", Inputs: []string{"notes", "style"}, Output: "report"},
//	}
//	sg, _ := planner.NewSearchGraph(agents)
//	plan, _ := sg.Search([]string{"topic", "style"}, "report")
//	// plan: researcher, writer
//
// Planner is the driver an execution loop talks to. FirstAction searches once
// and NextAction hands out the cached plan until it returns Done:
//
//	p := planner.NewWithGraph("report", sg)
//	action, err := p.FirstAction(planner.Request{Known: []string{"topic", "style"}})
//	for err == nil && !action.IsDone() {
//		run(action.Agent)
//		action, err = p.NextAction(planner.Request{})
//	}
//
// Searches are counted in the prometheus metrics declared in metrics.go.
package planner
