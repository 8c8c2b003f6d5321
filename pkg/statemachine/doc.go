// Package statemachine is a small finite-state machine with guards and
// actions, used to model connection lifecycles.
//
//	const (
//		Idle      = statemachine.StringState("idle")
//		Streaming = statemachine.StringState("streaming")
//		Closed    = statemachine.StringState("closed")
//
//		Open  = statemachine.StringEvent("open")
//		Close = statemachine.StringEvent("close")
//	)
//
//	sm := statemachine.MustNew(Idle,
//		statemachine.WithTransition(Idle, Streaming, Open),
//		statemachine.WithTransition(Streaming, Closed, Close),
//	)
//	err := sm.Fire(ctx, Open, nil)
//
// Fire returns *ErrNoTransitionAvailable when the event is not defined for the
// current state and *ErrTransitionRejected when every guard vetoed it.
// All methods are safe for concurrent use.
package statemachine
