// Package converter implements the reflection conversion engine: a
// registry of pluggable node and type converter strategies, the dispatchers
// that select them, the synchronous lifecycle event bus, and the pipeline
// orchestrator that sequences a run from input files to a finalized
// reflection graph.
//
// Execution is single-threaded and synchronous. One Converter instance
// processes one run to completion before accepting another; the registry is
// shared across runs and must not be mutated while a run is in progress.
package converter

import (
	"sync"

	"github.com/specular-eng/specular/config"
	"github.com/specular-eng/specular/errors"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/logger"
	"github.com/specular-eng/specular/model"
)

// State tracks where the orchestrator is in its run lifecycle.
type State int

const (
	StateIdle State = iota
	StateBuilding
	StateDiagnosing
	StateResolving
	StateDone
)

// String returns the display name for the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateDiagnosing:
		return "diagnosing"
	case StateResolving:
		return "resolving"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Result is the outcome of one conversion run: the diagnostics selected
// under the category precedence rule, plus the best-effort reflection
// graph. Non-empty diagnostics do not imply an empty graph.
type Result struct {
	Diagnostics []frontend.Diagnostic `json:"diagnostics"`
	Project     *model.Project        `json:"project"`
}

// Converter is the pipeline orchestrator. It owns the event bus and holds
// the strategy registry and frontend it was constructed with.
type Converter struct {
	mu    sync.Mutex
	state State

	frontend frontend.Frontend
	registry *Registry
	bus      *Bus
	cfg      *config.Config
}

// New creates a converter. The registry is expected to be fully populated
// before the first Convert call.
func New(fe frontend.Frontend, reg *Registry, cfg *config.Config) *Converter {
	return &Converter{
		state:    StateIdle,
		frontend: fe,
		registry: reg,
		bus:      NewBus(),
		cfg:      cfg,
	}
}

// Bus returns the converter's event bus for listener registration.
func (c *Converter) Bus() *Bus {
	return c.bus
}

// Registry returns the strategy registry.
func (c *Converter) Registry() *Registry {
	return c.registry
}

// State returns the orchestrator's current lifecycle state.
func (c *Converter) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Converter) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Convert runs the full pipeline over the given input files: normalize
// paths, create a frontend program, convert every source unit, select
// diagnostics, resolve the graph, and return the result.
//
// Frontend parse and type errors are never fatal: they surface in
// Result.Diagnostics while build and resolve proceed, so a best-effort
// graph is produced even for broken input. The only error returns are a
// busy converter and a frontend that could not produce a program at all.
func (c *Converter) Convert(files []string) (*Result, error) {
	c.mu.Lock()
	if c.state != StateIdle && c.state != StateDone {
		state := c.state
		c.mu.Unlock()
		return nil, errors.Wrapf(errors.ErrConverterBusy, "state %s", state)
	}
	c.state = StateBuilding
	c.mu.Unlock()

	files = frontend.NormalizePaths(files)

	prog, err := c.frontend.CreateProgram(files, c.cfg.FrontendOptions())
	if err != nil {
		c.setState(StateIdle)
		return nil, errors.Wrap(err, "failed to create frontend program")
	}

	ctx := newContext(c, prog, c.cfg)
	logger.Infow("Conversion run starting",
		"run_id", ctx.RunID,
		"project", c.cfg.ProjectName,
		"files", len(files),
	)

	c.bus.Emit(EventRunBegin, Payload{Context: ctx})

	for _, unit := range prog.SourceUnits() {
		c.convertNode(ctx, unit.File)
	}

	c.setState(StateDiagnosing)
	diags := selectDiagnostics(prog)

	c.setState(StateResolving)
	c.resolve(ctx)

	c.bus.Emit(EventRunEnd, Payload{Context: ctx})
	c.setState(StateDone)

	logger.Infow("Conversion run finished",
		"run_id", ctx.RunID,
		"reflections", ctx.Project.Count(),
		"diagnostics", len(diags),
	)

	return &Result{Diagnostics: diags, Project: ctx.Project}, nil
}

// resolve fires one resolve event per reflection present in the graph when
// the pass starts. The snapshot is fixed up front: reflections a listener
// creates as a side effect are not visited within this pass.
func (c *Converter) resolve(ctx *Context) {
	c.bus.Emit(EventResolveBegin, Payload{Context: ctx})

	snapshot := ctx.Project.Reflections()
	for _, r := range snapshot {
		c.bus.Emit(EventResolve, Payload{Context: ctx, Reflection: r})
	}

	c.bus.Emit(EventResolveEnd, Payload{Context: ctx})
}

// selectDiagnostics applies the fixed category precedence: the first
// non-empty category is the run's entire error result and later categories
// are not consulted.
func selectDiagnostics(prog frontend.Program) []frontend.Diagnostic {
	for _, query := range []func() []frontend.Diagnostic{
		prog.OptionDiagnostics,
		prog.SyntacticDiagnostics,
		prog.GlobalDiagnostics,
		prog.SemanticDiagnostics,
	} {
		if diags := query(); len(diags) > 0 {
			return diags
		}
	}
	return []frontend.Diagnostic{}
}
