// Package transfer holds the types shared by every state machine in this
// node: the generic transition envelope and the state changes that are not
// specific to mediated transfers.
package transfer

// Event is an outbound action a transition asks the driver to dispatch.
// The core never dispatches an Event itself, it only returns it.
type Event interface{}

// StateChange is an inbound trigger that may cause a state transition.
type StateChange interface{}

// Iteration is the result of applying a StateChange to a State: the
// (possibly nil) successor state together with the events the driver must
// dispatch.
type Iteration struct {
	NewState interface{}
	Events   []Event
}

// NewIteration builds an Iteration, defaulting a nil events slice to an
// empty one so callers never need a nil check before ranging over it.
func NewIteration(newState interface{}, events []Event) *Iteration {
	if events == nil {
		events = []Event{}
	}
	return &Iteration{NewState: newState, Events: events}
}
