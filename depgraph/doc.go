// Package depgraph implements the dependency graph and the goal search used by
// goal-oriented agent orchestration.
//
// Every node of a Graph is a named fact. A node lists the facts it needs
// (its inputs) and the facts it feeds (its outputs). A node can only be
// activated once all of its inputs are activated, which makes the graph an
// AND-join network rather than a plain reachability graph.
//
// # Building a Graph
//
//	g := depgraph.NewGraph()
//	g.Connect("topic", "research")
//	g.Connect("research", "report")
//	g.Connect("style", "report")
//
// Nodes are created on first use and identified only by their Key.
//
// # Searching
//
// Search runs an A* search over SearchState values. A state is the set of
// activated nodes, the node activated last and the number of activations so
// far. Each activation costs 1. The heuristic counts the facts the goal still
// transitively depends on.
//
//	path, err := g.Search("report", []depgraph.Key{"topic", "style"})
//	// path == [topic research report]
//
// The first element of the path is the node the search started from and is
// always one of the preconditions. A nil path with a nil error means the goal
// is unreachable.
//
// # Visualization
//
// Exporter renders a graph as a Mermaid flowchart or a Graphviz DOT digraph:
//
//	fmt.Println(depgraph.NewExporter(g).DrawMermaid())
package depgraph
