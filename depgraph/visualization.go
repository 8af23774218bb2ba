package depgraph

import (
	"fmt"
	"slices"
	"strings"
)

// Exporter renders a dependency graph in text diagram formats.
type Exporter struct {
	graph *Graph
}

// NewExporter creates a new exporter for the given graph
func NewExporter(graph *Graph) *Exporter {
	return &Exporter{graph: graph}
}

// DiagramOptions configures diagram generation.
type DiagramOptions struct {
	// Direction of the flowchart (e.g., "TD", "LR"). Mermaid only.
	Direction string

	// Preconditions are drawn as already satisfied facts.
	Preconditions []Key

	// Goal is drawn as the target fact.
	Goal Key

	// EdgeLabel, if set, labels the edge from -> to.
	EdgeLabel func(from, to Key) string
}

// DrawMermaid generates a Mermaid flowchart of the graph
func (e *Exporter) DrawMermaid() string {
	return e.DrawMermaidWithOptions(DiagramOptions{Direction: "LR"})
}

// DrawMermaidWithOptions generates a Mermaid flowchart with custom options
func (e *Exporter) DrawMermaidWithOptions(opts DiagramOptions) string {
	var sb strings.Builder

	direction := opts.Direction
	if direction == "" {
		direction = "LR"
	}
	sb.WriteString(fmt.Sprintf("flowchart %s\n", direction))

	ids := e.nodeIDs()
	for _, k := range e.sortedKeys() {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[k], escapeLabel(string(k))))
	}

	e.eachEdge(func(from, to Key) {
		label := ""
		if opts.EdgeLabel != nil {
			label = opts.EdgeLabel(from, to)
		}
		if label != "" {
			sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", ids[from], escapeLabel(label), ids[to]))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[from], ids[to]))
		}
	})

	for _, k := range opts.Preconditions {
		if id, ok := ids[k]; ok {
			sb.WriteString(fmt.Sprintf("    style %s fill:#90EE90\n", id))
		}
	}
	if id, ok := ids[opts.Goal]; ok {
		sb.WriteString(fmt.Sprintf("    style %s fill:#FFB6C1\n", id))
	}

	return sb.String()
}

// DrawDOT generates a DOT (Graphviz) representation of the graph
func (e *Exporter) DrawDOT(opts DiagramOptions) string {
	var sb strings.Builder

	sb.WriteString("digraph G {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=box];\n")

	for _, k := range opts.Preconditions {
		if _, ok := e.graph.nodes[k]; ok {
			sb.WriteString(fmt.Sprintf("    %q [style=filled, fillcolor=lightgreen];\n", string(k)))
		}
	}
	if _, ok := e.graph.nodes[opts.Goal]; ok {
		sb.WriteString(fmt.Sprintf("    %q [style=filled, fillcolor=lightpink];\n", string(opts.Goal)))
	}

	e.eachEdge(func(from, to Key) {
		if opts.EdgeLabel != nil {
			if label := opts.EdgeLabel(from, to); label != "" {
				sb.WriteString(fmt.Sprintf("    %q -> %q [label=%q];\n", string(from), string(to), label))
				return
			}
		}
		sb.WriteString(fmt.Sprintf("    %q -> %q;\n", string(from), string(to)))
	})

	sb.WriteString("}\n")
	return sb.String()
}

func (e *Exporter) sortedKeys() []Key {
	keys := slices.Clone(e.graph.order)
	slices.Sort(keys)
	return keys
}

// nodeIDs assigns Mermaid-safe identifiers, since keys may contain spaces
// or punctuation.
func (e *Exporter) nodeIDs() map[Key]string {
	ids := make(map[Key]string, len(e.graph.order))
	for i, k := range e.sortedKeys() {
		ids[k] = fmt.Sprintf("n%d", i)
	}
	return ids
}

func (e *Exporter) eachEdge(fn func(from, to Key)) {
	for _, from := range e.sortedKeys() {
		outs := e.graph.nodes[from].Outputs()
		slices.Sort(outs)
		for _, to := range outs {
			fn(from, to)
		}
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
