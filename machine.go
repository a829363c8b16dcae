package stopwatch

import (
	"context"

	"github.com/pkg/errors"
)

type StateID int
type EventID int

type Event struct {
	ID      EventID
	Payload any
}

type Action func(ctx context.Context, evt *Event, from StateID, to StateID) error
type Guard func(ctx context.Context, evt *Event, from StateID, to StateID) (bool, error)

var (
	ErrNoStates        = errors.New("no states provided")
	ErrNilState        = errors.New("nil state")
	ErrDuplicateState  = errors.New("duplicate state ID")
	ErrMultipleInitial = errors.New("more than one initial state")
	ErrNotStarted      = errors.New("machine not started")
)

// ---

type State struct {
	ID          StateID
	Name        string
	Transitions []*Transition
	EntryAction Action
	ExitAction  Action
	Initial     bool
}

type Transition struct {
	Event  EventID
	Name   string
	Source *State
	Target *State // nil --> internal transition
	Guard  Guard  // nil --> always enabled
	Action Action // nil --> do nothing
}

// Internal reports whether the transition stays in its source state
// without running exit/entry actions.
func (t *Transition) Internal() bool {
	return t.Target == nil
}

// Machine is a flat chart of states with the currently active state.
type Machine struct {
	states  []*State
	byID    map[StateID]*State
	initial *State
	current *State
	started bool
}

//
// Public API
//

func (s *State) OnEntry(action Action) {
	s.EntryAction = action
}

func (s *State) OnExit(action Action) {
	s.ExitAction = action
}

// On adds a transition on event e. A nil target makes it internal.
func (s *State) On(e EventID, name string, target *State, guard Guard, action Action) *Transition {
	t := &Transition{
		Event:  e,
		Name:   name,
		Source: s,
		Target: target,
		Guard:  guard,
		Action: action,
	}
	s.Transitions = append(s.Transitions, t)
	return t
}

func NewMachine(states ...*State) (*Machine, error) {
	if len(states) == 0 {
		return nil, ErrNoStates
	}
	m := &Machine{
		states: states,
		byID:   map[StateID]*State{},
	}

	var initial *State
	for _, s := range states {
		if s == nil {
			return nil, ErrNilState
		}
		if _, exists := m.byID[s.ID]; exists {
			return nil, errors.Wrapf(ErrDuplicateState, "state %d", s.ID)
		}
		m.byID[s.ID] = s
		if s.Initial {
			if initial != nil {
				return nil, ErrMultipleInitial
			}
			initial = s
		}
	}

	if initial == nil {
		initial = states[0] // First state is assigned as initial.
	}
	m.initial = initial
	m.current = initial

	for _, s := range states {
		for _, t := range s.Transitions {
			if t != nil && t.Source == nil {
				t.Source = s
			}
		}
	}

	return m, nil
}

// Start enters the initial state.
func (m *Machine) Start(ctx context.Context) error {
	m.current = m.initial
	if err := m.current.enterState(ctx, nil, m.current.ID, m.current.ID); err != nil {
		return errors.Wrapf(err, "enter initial state %d", m.current.ID)
	}
	m.started = true
	return nil
}

// Send dispatches evt against the current state. Events with no enabled
// transition are ignored.
func (m *Machine) Send(ctx context.Context, evt Event) error {
	if !m.started {
		return ErrNotStarted
	}

	t, err := m.pickTransition(ctx, m.current, &evt)
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}

	next, err := t.doTransition(ctx, &evt)
	m.current = next
	return err
}

// Current returns the active state.
func (m *Machine) Current() *State {
	return m.current
}

// IsInState reports whether id is the active state.
func (m *Machine) IsInState(id StateID) bool {
	return m.current != nil && m.current.ID == id
}

// States returns the chart's states in declaration order.
func (m *Machine) States() []*State {
	return m.states
}

// Initial returns the state entered by Start.
func (m *Machine) Initial() *State {
	return m.initial
}

//
// Helper Functions (internal API)
//

func (s *State) enterState(ctx context.Context, evt *Event, from StateID, to StateID) error {
	if s.EntryAction != nil {
		return s.EntryAction(ctx, evt, from, to)
	}
	return nil
}

func (s *State) exitState(ctx context.Context, evt *Event, from StateID, to StateID) error {
	if s.ExitAction != nil {
		return s.ExitAction(ctx, evt, from, to)
	}
	return nil
}

// pickTransition grabs the first enabled transition in document order.
func (m *Machine) pickTransition(ctx context.Context, s *State, evt *Event) (*Transition, error) {
	for _, t := range s.Transitions {
		if t == nil || t.Event != evt.ID {
			continue
		}
		pass, err := t.evaluateGuard(ctx, evt)
		if err != nil {
			return nil, errors.Wrapf(err, "guard %q", t.Name)
		}
		if pass {
			return t, nil
		}
	}
	return nil, nil
}

func (t *Transition) targetID() StateID {
	if t.Internal() {
		return t.Source.ID
	}
	return t.Target.ID
}

func (t *Transition) evaluateGuard(ctx context.Context, evt *Event) (bool, error) {
	if t.Guard != nil {
		return t.Guard(ctx, evt, t.Source.ID, t.targetID())
	}
	return true, nil
}

func (t *Transition) evaluateAction(ctx context.Context, evt *Event) error {
	if t.Action != nil {
		return t.Action(ctx, evt, t.Source.ID, t.targetID())
	}
	return nil
}

// doTransition runs the transition and returns the state the machine ends in.
func (t *Transition) doTransition(ctx context.Context, evt *Event) (*State, error) {
	if t.Internal() {
		if err := t.evaluateAction(ctx, evt); err != nil {
			return t.Source, errors.Wrapf(err, "action %q", t.Name)
		}
		return t.Source, nil
	}

	from, to := t.Source.ID, t.Target.ID

	if err := t.Source.exitState(ctx, evt, from, to); err != nil {
		return t.Source, errors.Wrapf(err, "exit state %d", from)
	}

	if err := t.evaluateAction(ctx, evt); err != nil {
		// Rewind: re-enter the source state without the event.
		if rerr := t.Source.enterState(ctx, nil, from, to); rerr != nil {
			return t.Source, errors.Wrapf(rerr, "re-enter state %d", from)
		}
		return t.Source, errors.Wrapf(err, "action %q", t.Name)
	}

	if err := t.Target.enterState(ctx, evt, from, to); err != nil {
		return t.Source, errors.Wrapf(err, "enter state %d", to)
	}

	return t.Target, nil
}
