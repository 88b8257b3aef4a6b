// Package runtime executes a parsed state machine. It consumes the flat
// record collections produced by the parser and rebuilds just enough
// hierarchy (parent links, per-region initial markers) to run events
// against a session snapshot.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expr-lang/expr/vm"
	"github.com/umlstate/umlstate/internal/guard"
	"github.com/umlstate/umlstate/internal/logging"
	"github.com/umlstate/umlstate/pkg/domain"
)

// transitionRule is one runnable transition, optionally guarded.
type transitionRule struct {
	record domain.TransitionRecord
	prog   *vm.Program
}

// Machine is a runnable state machine compiled from a ParseResult.
// It holds no session state of its own: all per-session data lives in
// domain.Snapshot, so one Machine serves any number of sessions.
type Machine struct {
	states   map[string]domain.StateRecord
	order    []string
	outgoing map[string][]*transitionRule
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option configures a Machine.
type Option func(*Machine) error

// WithLogger sets a structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) error {
		m.logger = logger
		return nil
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) error {
		m.hooks = hooks
		return nil
	}
}

// WithGuard attaches a guard expression to every transition matching the
// given source state and event name. The expression is compiled once and
// evaluated against the session's variables on each dispatch.
func WithGuard(source, event, cond string) Option {
	return func(m *Machine) error {
		prog, err := guard.Compile(cond)
		if err != nil {
			return fmt.Errorf("guard for %s on %s: %w", source, event, err)
		}
		attached := false
		for _, rule := range m.outgoing[source] {
			if rule.record.Event == event {
				rule.prog = prog
				attached = true
			}
		}
		if !attached {
			return fmt.Errorf("guard for %s on %s: no such transition", source, event)
		}
		return nil
	}
}

// New compiles a Machine from a parse result.
func New(result domain.ParseResult, opts ...Option) (*Machine, error) {
	m := &Machine{
		states:   make(map[string]domain.StateRecord, len(result.States())),
		outgoing: make(map[string][]*transitionRule),
		logger:   logging.NewNop(),
	}
	for _, s := range result.States() {
		m.order = append(m.order, s.Name)
		m.states[s.Name] = s
	}
	for _, t := range result.Transitions() {
		m.outgoing[t.Source] = append(m.outgoing[t.Source], &transitionRule{record: t})
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// States returns the state records in parse order.
func (m *Machine) States() []domain.StateRecord {
	out := make([]domain.StateRecord, len(m.order))
	for i, name := range m.order {
		out[i] = m.states[name]
	}
	return out
}

// Start creates a fresh session snapshot positioned at the machine's
// initial state. The initial state is the first top-level record carrying
// the initial marker (parse order is document order, so this is
// deterministic); composite initial states are entered down to their
// innermost initial substate.
func (m *Machine) Start(ctx context.Context) (*domain.Snapshot, error) {
	top, ok := m.initialIn("")
	if !ok {
		return nil, fmt.Errorf("machine has no initial state")
	}

	snap := domain.NewSnapshot(top)
	snap.History = nil
	if err := m.enter(ctx, snap, top); err != nil {
		return nil, err
	}
	m.settle(snap)
	return snap, nil
}

// Send dispatches an event against the session. Transition lookup starts
// at the current state and climbs the parent chain, so a composite state's
// transitions apply to all of its substates. The first transition whose
// guard passes fires; exit actions run from the current leaf up to the
// source, then the transition, then entry actions down to the target's
// innermost initial substate.
//
// Returns domain.ErrRejectedEvent when nothing matches.
func (m *Machine) Send(ctx context.Context, snap *domain.Snapshot, event string) (*domain.Snapshot, error) {
	if snap.Status == domain.StatusTerminated {
		return nil, fmt.Errorf("%w: session terminated", domain.ErrRejectedEvent)
	}
	if _, ok := m.states[snap.Current]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownState, snap.Current)
	}

	next := m.clone(snap)

	// Hierarchical resolution: current state first, then its ancestors.
	for source := snap.Current; source != ""; source = m.states[source].Parent {
		rule, err := m.match(source, event, next.Vars)
		if err != nil {
			return nil, err
		}
		if rule == nil {
			continue
		}

		m.logger.Debug("transition fired",
			"source", rule.record.Source, "target", rule.record.Target, "event", event)

		if err := m.exitTo(ctx, next, source); err != nil {
			return nil, err
		}
		m.emitTransition(ctx, rule.record)

		if err := m.enter(ctx, next, rule.record.Target); err != nil {
			return nil, err
		}
		m.settle(next)
		return next, nil
	}

	m.logger.Debug("event rejected", "event", event, "state", snap.Current)
	return nil, fmt.Errorf("%w: %q in state %q", domain.ErrRejectedEvent, event, snap.Current)
}

// match returns the first rule for (source, event) whose guard passes.
func (m *Machine) match(source, event string, vars map[string]any) (*transitionRule, error) {
	for _, rule := range m.outgoing[source] {
		if rule.record.Event != event {
			continue
		}
		ok, err := guard.EvalCompiled(rule.prog, vars)
		if err != nil {
			return nil, fmt.Errorf("transition %s -> %s: %w", source, rule.record.Target, err)
		}
		if ok {
			return rule, nil
		}
	}
	return nil, nil
}

// exitTo runs exit actions from the current leaf up to and including the
// given source state.
func (m *Machine) exitTo(ctx context.Context, snap *domain.Snapshot, source string) error {
	for name := snap.Current; name != ""; name = m.states[name].Parent {
		if err := m.runActions(ctx, m.states[name].ExitActions, snap.Vars); err != nil {
			return fmt.Errorf("exit %s: %w", name, err)
		}
		m.emitState(ctx, domain.HookStateLeave, name)
		if name == source {
			return nil
		}
	}
	return nil
}

// enter runs the target's entry actions and descends into composite
// targets until an innermost initial substate is reached.
func (m *Machine) enter(ctx context.Context, snap *domain.Snapshot, target string) error {
	name := target
	for {
		state, ok := m.states[name]
		if !ok {
			// Permissive by design: a dangling target is recorded as-is
			// and surfaces here, at dispatch time.
			return fmt.Errorf("%w: transition target %q", domain.ErrUnknownState, name)
		}
		if err := m.runActions(ctx, state.EntryActions, snap.Vars); err != nil {
			return fmt.Errorf("enter %s: %w", name, err)
		}
		m.emitState(ctx, domain.HookStateEnter, name)
		snap.Current = name
		snap.History = append(snap.History, name)

		sub, ok := m.initialIn(name)
		if !ok {
			return nil
		}
		name = sub
	}
}

// initialIn returns the initial state among the direct children of parent
// (empty parent means top level). Falls back to the first child when no
// initial marker is present.
func (m *Machine) initialIn(parent string) (string, bool) {
	first := ""
	for _, name := range m.order {
		s := m.states[name]
		if s.Parent != parent {
			continue
		}
		if s.Initial {
			return name, true
		}
		if first == "" {
			first = name
		}
	}
	return first, first != ""
}

// settle marks the session terminated when the current state (including
// its ancestors) has no outgoing transitions left.
func (m *Machine) settle(snap *domain.Snapshot) {
	for name := snap.Current; name != ""; name = m.states[name].Parent {
		if len(m.outgoing[name]) > 0 {
			return
		}
	}
	snap.Status = domain.StatusTerminated
}

func (m *Machine) runActions(ctx context.Context, actions []domain.Action, vars map[string]any) error {
	for _, action := range actions {
		if err := action(ctx, vars); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) clone(snap *domain.Snapshot) *domain.Snapshot {
	copied := *snap
	copied.Vars = make(map[string]any, len(snap.Vars))
	for k, v := range snap.Vars {
		copied.Vars[k] = v
	}
	copied.History = append([]string(nil), snap.History...)
	return &copied
}

func (m *Machine) emitState(ctx context.Context, kind domain.HookEventType, name string) {
	var hook func(context.Context, *domain.StateEvent)
	switch kind {
	case domain.HookStateEnter:
		hook = m.hooks.OnStateEnter
	case domain.HookStateLeave:
		hook = m.hooks.OnStateLeave
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.StateEvent{
		Timestamp: time.Now(),
		Type:      kind,
		State:     name,
	})
}

func (m *Machine) emitTransition(ctx context.Context, record domain.TransitionRecord) {
	if m.hooks.OnTransition == nil {
		return
	}
	m.hooks.OnTransition(ctx, &domain.TransitionEvent{
		Timestamp: time.Now(),
		Source:    record.Source,
		Target:    record.Target,
		Event:     record.Event,
	})
}
