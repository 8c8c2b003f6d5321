package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// State represents a state in the state machine.
type State interface {
	Name() string
}

// Event represents an event that can trigger a state transition.
type Event interface {
	Name() string
}

// Action executes side effects during state transitions. Returning an error prevents the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard evaluates whether a transition should be allowed based on runtime conditions.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Transition defines a state change triggered by an event, with optional guards and actions.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // All must pass for transition to proceed
	Actions []Action // Executed in order before state change
}

// StateMachine defines the core finite state machine operations.
type StateMachine interface {
	Current() State
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
}

// StringState provides a simple string-based state implementation.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent provides a simple string-based event implementation.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}

// SimpleStateMachine is a thread-safe in-memory state machine.
// Transitions are indexed as [fromState][event][]Transition.
type SimpleStateMachine struct {
	current     State
	transitions map[string]map[string][]Transition
	mu          sync.Mutex
}

func (sm *SimpleStateMachine) Current() State {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.current
}

func (sm *SimpleStateMachine) addTransition(t Transition) error {
	if t.From == nil || t.To == nil || t.Event == nil {
		return ErrInvalidTransition
	}

	byEvent, ok := sm.transitions[t.From.Name()]
	if !ok {
		byEvent = make(map[string][]Transition)
		sm.transitions[t.From.Name()] = byEvent
	}
	// Several transitions per from/event pair allow guard-based branching.
	byEvent[t.Event.Name()] = append(byEvent[t.Event.Name()], t)
	return nil
}

// Fire applies the first transition for event whose guards all pass. Actions
// run under the machine lock, so they must not call back into the machine.
func (sm *SimpleStateMachine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	t, err := sm.match(ctx, event, data)
	if err != nil {
		return err
	}

	for _, action := range t.Actions {
		if err := action(ctx, sm.current, t.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	sm.current = t.To
	return nil
}

func (sm *SimpleStateMachine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	_, err := sm.match(ctx, event, data)
	return err == nil
}

func (sm *SimpleStateMachine) match(ctx context.Context, event Event, data any) (*Transition, error) {
	from, name := sm.current.Name(), event.Name()

	candidates := sm.transitions[from][name]
	if len(candidates) == 0 {
		return nil, NewErrNoTransitionAvailable(from, name)
	}

	for i, t := range candidates {
		if guardsPass(ctx, t.Guards, sm.current, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, NewErrTransitionRejected(from, name)
}

func guardsPass(ctx context.Context, guards []Guard, from State, event Event, data any) bool {
	for _, g := range guards {
		if !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
