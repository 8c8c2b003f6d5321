package statemachine

import "fmt"

// Option configures a state machine during construction.
type Option func(*SimpleStateMachine) error

// TransitionOption configures a single transition with guards and actions.
type TransitionOption func(*Transition)

// New creates a new state machine with the given initial state and options.
func New(initial State, opts ...Option) (*SimpleStateMachine, error) {
	if initial == nil {
		return nil, fmt.Errorf("initial state cannot be nil")
	}

	sm := &SimpleStateMachine{
		current:     initial,
		transitions: make(map[string]map[string][]Transition),
	}
	for _, opt := range opts {
		if err := opt(sm); err != nil {
			return nil, err
		}
	}
	return sm, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(initial State, opts ...Option) *SimpleStateMachine {
	sm, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return sm
}

// WithTransition adds a single transition to the state machine.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(sm *SimpleStateMachine) error {
		t := Transition{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return sm.addTransition(t)
	}
}

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard(guard Guard) TransitionOption {
	return func(t *Transition) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

// WithAction adds an action to a transition. Nil actions are ignored.
func WithAction(action Action) TransitionOption {
	return func(t *Transition) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}
