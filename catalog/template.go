package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nikolalohinski/gonja"
	"github.com/nikolalohinski/gonja/config"
	"github.com/nikolalohinski/gonja/nodes"
	"github.com/nikolalohinski/gonja/parser"
	"github.com/smallnest/goalgraph/agentic"
)

var (
	envOnce    sync.Once
	env        *gonja.Environment
	envInitErr error
)

// Statements that could reach outside the template are disabled.
var disabledStatements = []string{"include", "extends", "import", "from"}

func templateEnv() (*gonja.Environment, error) {
	envOnce.Do(func() {
		env = gonja.NewEnvironment(config.DefaultConfig, gonja.DefaultLoader)
		for _, name := range disabledStatements {
			if !env.Statements.Exists(name) {
				continue
			}
			keyword := name
			err := env.Statements.Replace(name, func(*parser.Parser, *parser.Parser) (nodes.Statement, error) {
				return nil, fmt.Errorf("keyword[%s] has been disabled", keyword)
			})
			if err != nil {
				envInitErr = fmt.Errorf("init template env: %w", err)
				return
			}
		}
	})
	return env, envInitErr
}

type renderer interface {
	Execute(ctx map[string]any) (string, error)
}

// ErrTemplateTimeout is returned when a template does not compile within
// compileTimeout.
var ErrTemplateTimeout = errors.New("template compilation timed out")

// compileTimeout bounds a single template compilation. The gonja parser can
// loop on some malformed input.
var compileTimeout = 2 * time.Second

var parseTemplate = func(src string) (renderer, error) {
	e, err := templateEnv()
	if err != nil {
		return nil, err
	}
	tpl, err := e.FromString(src)
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

func compile(src string) (renderer, error) {
	if err := checkDelimiters(src); err != nil {
		return nil, err
	}

	type result struct {
		tpl renderer
		err error
	}
	parse := parseTemplate
	done := make(chan result, 1)
	go func() {
		tpl, err := parse(src)
		done <- result{tpl, err}
	}()

	timer := time.NewTimer(compileTimeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.tpl, r.err
	case <-timer.C:
		return nil, ErrTemplateTimeout
	}
}

// checkDelimiters rejects templates with an opening {{, {% or {# that is
// never closed.
func checkDelimiters(src string) error {
	for i := 0; i < len(src); {
		off := strings.IndexByte(src[i:], '{')
		if off < 0 || i+off+1 >= len(src) {
			return nil
		}
		pos := i + off

		var closer string
		switch src[pos+1] {
		case '{':
			closer = "}}"
		case '%':
			closer = "%}"
		case '#':
			closer = "#}"
		default:
			i = pos + 1
			continue
		}

		end := strings.Index(src[pos+2:], closer)
		if end < 0 {
			return fmt.Errorf("unterminated %q at offset %d", src[pos:pos+2], pos)
		}
		i = pos + 2 + end + len(closer)
	}
	return nil
}

// TemplateAgent renders a Jinja template with the values of the scope it
// runs on.
type TemplateAgent struct {
	spec AgentSpec
	tpl  renderer
}

var _ agentic.Agent = (*TemplateAgent)(nil)

// NewTemplateAgent compiles spec's template.
func NewTemplateAgent(spec AgentSpec) (*TemplateAgent, error) {
	a := &TemplateAgent{spec: spec}
	if spec.Template != "" {
		tpl, err := compile(spec.Template)
		if err != nil {
			return nil, fmt.Errorf("agent %s: compile template: %w", spec.Name, err)
		}
		a.tpl = tpl
	}
	return a, nil
}

func (a *TemplateAgent) Name() string        { return a.spec.Name }
func (a *TemplateAgent) InputKeys() []string { return slices.Clone(a.spec.Inputs) }
func (a *TemplateAgent) OutputKey() string   { return a.spec.Output }

// Description returns the declared description
func (a *TemplateAgent) Description() string {
	return a.spec.Description
}

// Invoke renders the template. Without a template it returns the input
// values keyed by input name.
func (a *TemplateAgent) Invoke(ctx context.Context, scope *agentic.Scope) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if a.tpl == nil {
		out := make(map[string]any, len(a.spec.Inputs))
		for _, in := range a.spec.Inputs {
			v, _ := scope.Read(in)
			out[in] = v
		}
		return out, nil
	}

	return a.tpl.Execute(scope.Values())
}
