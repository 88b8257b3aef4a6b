package umlstate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/umlstate/umlstate/internal/adapters/yamlmodel"
	"github.com/umlstate/umlstate/internal/logging"
	"github.com/umlstate/umlstate/internal/parser"
	"github.com/umlstate/umlstate/internal/presentation/dot"
	"github.com/umlstate/umlstate/internal/runtime"
	"github.com/umlstate/umlstate/internal/validator"
	"github.com/umlstate/umlstate/pkg/adapters/memory"
	"github.com/umlstate/umlstate/pkg/domain"
	"github.com/umlstate/umlstate/pkg/observability"
	"github.com/umlstate/umlstate/pkg/ports"
	"github.com/umlstate/umlstate/pkg/registry"
)

// Engine is the high-level entry point for the umlstate library.
// It wires the model source, parser, action resolver, runtime and session
// store behind a simplified API.
type Engine struct {
	model    ports.Model
	resolver ports.ActionResolver
	store    ports.SessionStore
	logger   *slog.Logger
	metrics  *observability.Metrics
	hooks    domain.LifecycleHooks
	guards   []runtime.Option

	result  domain.ParseResult
	machine *runtime.Machine
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithResolver injects a custom action resolver (default: an empty
// registry, so every state runs actionless).
func WithResolver(r ports.ActionResolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithStore injects a session store (default: in-memory).
func WithStore(s ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics attaches a metrics set; parse and event outcomes are
// reported into it.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithHooks registers lifecycle callbacks on the runtime.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithGuard attaches a guard expression to the transitions matching
// source and event.
func WithGuard(source, event, cond string) Option {
	return func(e *Engine) {
		e.guards = append(e.guards, runtime.WithGuard(source, event, cond))
	}
}

// New initializes an Engine from a YAML model file.
func New(modelPath string, opts ...Option) (*Engine, error) {
	model, err := yamlmodel.Load(modelPath)
	if err != nil {
		return nil, err
	}
	return NewFromModel(model, opts...)
}

// NewFromModel initializes an Engine over an already loaded model. The
// model is parsed and the machine compiled eagerly, so construction fails
// fast on a machine-less model or a bad guard.
func NewFromModel(model ports.Model, opts ...Option) (*Engine, error) {
	eng := &Engine{
		model:  model,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.resolver == nil {
		eng.resolver = registry.New()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	start := time.Now()
	result, err := parser.New(model, eng.resolver).Parse()
	if eng.metrics != nil {
		eng.metrics.ObserveParse(start, len(result.States()), err)
	}
	if err != nil {
		return nil, err
	}
	eng.result = result

	machineOpts := append([]runtime.Option{
		runtime.WithLogger(eng.logger),
		runtime.WithHooks(eng.hooks),
	}, eng.guards...)
	machine, err := runtime.New(result, machineOpts...)
	if err != nil {
		return nil, err
	}
	eng.machine = machine

	eng.logger.Debug("model compiled",
		"states", len(result.States()), "transitions", len(result.Transitions()))
	return eng, nil
}

// Result returns the flattened records of the parsed model.
func (e *Engine) Result() domain.ParseResult {
	return e.result
}

// Validate checks the parsed records for structural problems (dangling
// endpoints, duplicate names, missing initial markers, unreachable
// states). The parser itself never runs these checks.
func (e *Engine) Validate() error {
	return validator.Validate(e.result)
}

// DOT renders the machine as a Graphviz document.
func (e *Engine) DOT() (string, error) {
	return dot.Generate(e.result)
}

// StartSession creates a new session positioned at the machine's initial
// state and persists it.
func (e *Engine) StartSession(ctx context.Context) (string, *domain.Snapshot, error) {
	snap, err := e.machine.Start(ctx)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	if err := e.store.Save(ctx, id, snap); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	if e.metrics != nil {
		e.metrics.SessionsTotal.Inc()
	}
	e.logger.Debug("session started", "session", id, "state", snap.Current)
	return id, snap, nil
}

// Session returns the persisted snapshot of a session.
func (e *Engine) Session(ctx context.Context, id string) (*domain.Snapshot, error) {
	return e.store.Load(ctx, id)
}

// Sessions lists the known session IDs.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// EndSession removes a session from the store.
func (e *Engine) EndSession(ctx context.Context, id string) error {
	return e.store.Delete(ctx, id)
}

// SendEvent dispatches an event to a session and persists the outcome.
// A rejected event (domain.ErrRejectedEvent) leaves the session unchanged.
func (e *Engine) SendEvent(ctx context.Context, id, event string) (*domain.Snapshot, error) {
	snap, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := e.machine.Send(ctx, snap, event)
	if err != nil {
		if e.metrics != nil {
			e.metrics.ObserveEvent("rejected")
		}
		return nil, err
	}

	if err := e.store.Save(ctx, id, next); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if e.metrics != nil {
		e.metrics.ObserveEvent("accepted")
	}
	return next, nil
}
