package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/smallnest/goalgraph/agentic"
	"github.com/smallnest/goalgraph/planner"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned (wrapped) when a catalog document fails
// validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// AgentSpec declares one agent.
type AgentSpec struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Inputs      []string `yaml:"inputs"`
	Output      string   `yaml:"output"`

	// Template is a Jinja template rendered with the scope values. When
	// empty the agent outputs a map of its input values.
	Template string `yaml:"template,omitempty"`
}

// Catalog is a set of agent declarations with a default goal.
type Catalog struct {
	Goal   string      `yaml:"goal"`
	Agents []AgentSpec `yaml:"agents"`
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names, keys and templates.
func (c *Catalog) Validate() error {
	if len(c.Agents) == 0 {
		return fmt.Errorf("%w: no agents declared", ErrInvalidCatalog)
	}
	seen := make(map[string]struct{}, len(c.Agents))
	for i, a := range c.Agents {
		if a.Name == "" {
			return fmt.Errorf("%w: agent %d has no name", ErrInvalidCatalog, i)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("%w: duplicate agent name %q", ErrInvalidCatalog, a.Name)
		}
		seen[a.Name] = struct{}{}

		if a.Output == "" {
			return fmt.Errorf("%w: agent %q has no output", ErrInvalidCatalog, a.Name)
		}
		for _, in := range a.Inputs {
			if in == "" {
				return fmt.Errorf("%w: agent %q has an empty input", ErrInvalidCatalog, a.Name)
			}
		}
		if a.Template != "" {
			if _, err := compile(a.Template); err != nil {
				return fmt.Errorf("%w: agent %q template: %v", ErrInvalidCatalog, a.Name, err)
			}
		}
	}
	return nil
}

// Descriptors returns the agents as plain planner descriptors.
func (c *Catalog) Descriptors() []planner.Descriptor {
	ds := make([]planner.Descriptor, len(c.Agents))
	for i, a := range c.Agents {
		ds[i] = planner.Descriptor{AgentName: a.Name, Inputs: a.Inputs, Output: a.Output}
	}
	return ds
}

// BuildAgents returns an executable template agent per declaration.
func (c *Catalog) BuildAgents() ([]agentic.Agent, error) {
	agents := make([]agentic.Agent, 0, len(c.Agents))
	for _, spec := range c.Agents {
		a, err := NewTemplateAgent(spec)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// Workflow builds a workflow over the catalog's agents. An empty goal means
// the catalog goal.
func (c *Catalog) Workflow(goal string, opts ...agentic.Option) (*agentic.Workflow, error) {
	if goal == "" {
		goal = c.Goal
	}
	if goal == "" {
		return nil, fmt.Errorf("%w: no goal given", ErrInvalidCatalog)
	}
	agents, err := c.BuildAgents()
	if err != nil {
		return nil, err
	}
	return agentic.NewWorkflow(goal, agents, opts...)
}
