package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smallnest/goalgraph/agentic"
	"github.com/smallnest/goalgraph/log"
	"github.com/smallnest/goalgraph/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportCatalog = `
goal: report
agents:
  - name: outline
    description: drafts an outline
    inputs: [topic]
    output: outline
    template: "Outline for {{ topic }}"
  - name: write
    inputs: [outline, audience]
    output: report
    template: "{{ outline }} written for {{ audience }}"
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(reportCatalog))
	require.NoError(t, err)

	assert.Equal(t, "report", c.Goal)
	require.Len(t, c.Agents, 2)
	assert.Equal(t, "outline", c.Agents[0].Name)
	assert.Equal(t, "drafts an outline", c.Agents[0].Description)
	assert.Equal(t, []string{"outline", "audience"}, c.Agents[1].Inputs)
	assert.Equal(t, "report", c.Agents[1].Output)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no agents", "goal: x\n"},
		{"missing name", "agents:\n  - inputs: [a]\n    output: b\n"},
		{"missing output", "agents:\n  - name: x\n    inputs: [a]\n"},
		{"duplicate name", "agents:\n  - {name: x, inputs: [a], output: b}\n  - {name: x, inputs: [b], output: c}\n"},
		{"empty input", "agents:\n  - {name: x, inputs: [''], output: b}\n"},
		{"bad template", "agents:\n  - {name: x, inputs: [a], output: b, template: '{{ a '}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("agents: [unterminated"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(reportCatalog), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Agents, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalog_Descriptors(t *testing.T) {
	c, err := Parse([]byte(reportCatalog))
	require.NoError(t, err)

	sg, err := planner.NewSearchGraph(c.Descriptors(), planner.WithLogger(log.NoOpLogger{}))
	require.NoError(t, err)

	plan, err := sg.Search([]string{"topic", "audience"}, "report")
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "outline", plan[0].Name())
	assert.Equal(t, "write", plan[1].Name())
}

func TestCatalog_Workflow(t *testing.T) {
	c, err := Parse([]byte(reportCatalog))
	require.NoError(t, err)

	w, err := c.Workflow("", agentic.WithLogger(log.NoOpLogger{}))
	require.NoError(t, err)
	assert.Equal(t, "report", w.Goal())

	v, err := w.Invoke(context.Background(), agentic.NewScope(map[string]any{
		"topic":    "queues",
		"audience": "operators",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Outline for queues written for operators", v)
}

func TestCatalog_WorkflowNoGoal(t *testing.T) {
	c := &Catalog{Agents: []AgentSpec{{Name: "x", Inputs: []string{"a"}, Output: "b"}}}
	_, err := c.Workflow("")
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	w, err := c.Workflow("b", agentic.WithLogger(log.NoOpLogger{}))
	require.NoError(t, err)
	assert.Equal(t, "b", w.Goal())
}

func TestCatalog_BuildAgents(t *testing.T) {
	c, err := Parse([]byte(reportCatalog))
	require.NoError(t, err)

	agents, err := c.BuildAgents()
	require.NoError(t, err)
	require.Len(t, agents, len(c.Agents))
	for i, a := range agents {
		assert.Equal(t, c.Agents[i].Name, a.Name())
		assert.Equal(t, c.Agents[i].Output, a.OutputKey())
	}
}
