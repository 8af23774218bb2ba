package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallnest/goalgraph/agentic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateAgent(t *testing.T) {
	a, err := NewTemplateAgent(AgentSpec{
		Name:        "greet",
		Description: "says hello",
		Inputs:      []string{"name"},
		Output:      "greeting",
		Template:    "Hello, {{ name | upper }}!{% if excited %} Welcome!{% endif %}",
	})
	require.NoError(t, err)

	assert.Equal(t, "greet", a.Name())
	assert.Equal(t, "says hello", a.Description())
	assert.Equal(t, []string{"name"}, a.InputKeys())
	assert.Equal(t, "greeting", a.OutputKey())

	v, err := a.Invoke(context.Background(), agentic.NewScope(map[string]any{"name": "ada"}))
	require.NoError(t, err)
	assert.Equal(t, "Hello, ADA!", v)

	v, err = a.Invoke(context.Background(), agentic.NewScope(map[string]any{"name": "ada", "excited": true}))
	require.NoError(t, err)
	assert.Equal(t, "Hello, ADA! Welcome!", v)
}

func TestTemplateAgent_NoTemplate(t *testing.T) {
	a, err := NewTemplateAgent(AgentSpec{Name: "collect", Inputs: []string{"a", "b"}, Output: "ab"})
	require.NoError(t, err)

	v, err := a.Invoke(context.Background(), agentic.NewScope(map[string]any{"a": 1, "b": "two", "c": 3}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, v)
}

func TestTemplateAgent_DisabledStatements(t *testing.T) {
	for _, src := range []string{
		`{% include "other.j2" %}`,
		`{% extends "base.j2" %}`,
		`{% import "macros.j2" as m %}`,
		`{% from "macros.j2" import m %}`,
	} {
		_, err := NewTemplateAgent(AgentSpec{Name: "x", Inputs: []string{"a"}, Output: "b", Template: src})
		assert.Error(t, err, src)
	}
}

func TestTemplateAgent_Cancelled(t *testing.T) {
	a, err := NewTemplateAgent(AgentSpec{Name: "x", Inputs: []string{"a"}, Output: "b", Template: "{{ a }}"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Invoke(ctx, agentic.NewScope(map[string]any{"a": 1}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckDelimiters(t *testing.T) {
	valid := []string{
		"",
		"plain text",
		"{ not a tag }",
		"trailing brace {",
		"{{ a }} and {% if b %}x{% endif %}{# note #}",
		"{{ '{' }}",
	}
	for _, src := range valid {
		assert.NoError(t, checkDelimiters(src), src)
	}

	invalid := []string{
		"{{ a ",
		"ok {{ a }} then {% if b ",
		"{# never closed",
		"{{ a %}",
	}
	for _, src := range invalid {
		assert.Error(t, checkDelimiters(src), src)
	}
}

func TestNewTemplateAgent_Unterminated(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		_, err := NewTemplateAgent(AgentSpec{Name: "x", Inputs: []string{"a"}, Output: "b", Template: "{{ a "})
		done <- err
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("compiling an unterminated template did not return")
	}
}

func TestCompile_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	origParse, origTimeout := parseTemplate, compileTimeout
	t.Cleanup(func() {
		parseTemplate, compileTimeout = origParse, origTimeout
	})
	parseTemplate = func(string) (renderer, error) {
		<-release
		return nil, errors.New("released")
	}
	compileTimeout = 20 * time.Millisecond

	_, err := compile("{{ a }}")
	assert.ErrorIs(t, err, ErrTemplateTimeout)

	_, err = NewTemplateAgent(AgentSpec{Name: "x", Inputs: []string{"a"}, Output: "b", Template: "{{ a }}"})
	assert.ErrorIs(t, err, ErrTemplateTimeout)
}
