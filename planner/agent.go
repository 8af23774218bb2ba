package planner

// Agent describes an executable unit to the planner: a named unit that,
// once all of its input keys are known, produces exactly one output key.
type Agent interface {
	Name() string
	InputKeys() []string
	OutputKey() string
}

// Descriptor is a plain Agent value. It is handy for planning without an
// execution layer and in tests.
type Descriptor struct {
	AgentName string
	Inputs    []string
	Output    string
}

var _ Agent = Descriptor{}

func (d Descriptor) Name() string        { return d.AgentName }
func (d Descriptor) InputKeys() []string { return d.Inputs }
func (d Descriptor) OutputKey() string   { return d.Output }
