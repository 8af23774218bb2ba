package agentic

import (
	"context"
	"fmt"
	"slices"

	"github.com/smallnest/goalgraph/planner"
	"github.com/tmc/langchaingo/tools"
)

// Agent is a planner.Agent that can be executed against a scope. Invoke is
// only called once every input key is present in the scope; its result is
// written under OutputKey.
type Agent interface {
	planner.Agent
	Invoke(ctx context.Context, scope *Scope) (any, error)
}

// AgentFunc is the body of a func-backed agent
type AgentFunc func(ctx context.Context, scope *Scope) (any, error)

type funcAgent struct {
	name   string
	inputs []string
	output string
	fn     AgentFunc
}

// NewAgent returns an agent that runs fn.
func NewAgent(name string, inputs []string, output string, fn AgentFunc) Agent {
	return &funcAgent{
		name:   name,
		inputs: slices.Clone(inputs),
		output: output,
		fn:     fn,
	}
}

func (a *funcAgent) Name() string        { return a.name }
func (a *funcAgent) InputKeys() []string { return a.inputs }
func (a *funcAgent) OutputKey() string   { return a.output }

func (a *funcAgent) Invoke(ctx context.Context, scope *Scope) (any, error) {
	if a.fn == nil {
		return nil, fmt.Errorf("agent %s has no function", a.name)
	}
	return a.fn(ctx, scope)
}

// ToolAgent runs a langchaingo tool. The tool receives the string form of
// the scope value under the input key and its answer becomes the output.
type ToolAgent struct {
	tool   tools.Tool
	input  string
	output string
}

// FromTool adapts tool into an agent reading inputKey and producing outputKey.
func FromTool(tool tools.Tool, inputKey, outputKey string) *ToolAgent {
	return &ToolAgent{tool: tool, input: inputKey, output: outputKey}
}

func (a *ToolAgent) Name() string        { return a.tool.Name() }
func (a *ToolAgent) InputKeys() []string { return []string{a.input} }
func (a *ToolAgent) OutputKey() string   { return a.output }

// Description returns the tool description
func (a *ToolAgent) Description() string {
	return a.tool.Description()
}

func (a *ToolAgent) Invoke(ctx context.Context, scope *Scope) (any, error) {
	v, ok := scope.Read(a.input)
	if !ok {
		return nil, fmt.Errorf("tool %s: input %s missing from scope", a.tool.Name(), a.input)
	}

	var input string
	switch val := v.(type) {
	case string:
		input = val
	default:
		input = fmt.Sprint(val)
	}

	return a.tool.Call(ctx, input)
}
