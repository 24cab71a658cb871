// Package mediatorservice is the single ambient, single-threaded loop
// described below: it owns the mediator's MediatorState, feeds it
// one transfer.StateChange at a time through mediator.Step, and forwards
// whatever events come back to a notify.Handler for dispatch. Nothing in
// this package does I/O beyond those two collaborators; all scheduling and
// event ordering is the caller's responsibility.
package mediatorservice

import (
	"sync"

	"github.com/christophervojick119/raiden/notify"
	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer/mediator"
)

// Service drives one mediation end to end. A node running many concurrent
// mediations owns one Service per hashlock; each Service serializes its
// own state changes under a strictly single-threaded, cooperative
// discipline — fan-out across mediations, if any, belongs to the caller,
// not here.
type Service struct {
	lock   sync.Mutex
	state  *mediatedtransfer.MediatorState
	hasher mediatedtransfer.HashFunc
	notify *notify.Handler
	done   bool
}

// NewService builds a Service that feeds state changes passed to Apply
// through the core, using hasher for hashlock verification
// (Keccak256Hasher when nil), and dispatches every resulting event through
// sink.
func NewService(hasher mediatedtransfer.HashFunc, sink *notify.Handler) *Service {
	if hasher == nil {
		hasher = mediatedtransfer.Keccak256Hasher
	}
	return &Service{hasher: hasher, notify: sink}
}

// Apply feeds a single state change through the core transition function
// and dispatches the resulting events. Once the mediation has finalized
// (the core returns a nil state), subsequent calls are no-ops, matching
// the core's own P5 property instead of re-deriving it at this layer.
func (s *Service) Apply(change transfer.StateChange) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.done {
		return
	}

	it := mediator.Step(s.state, change, s.hasher)

	if newState, ok := it.NewState.(*mediatedtransfer.MediatorState); ok {
		s.state = newState
	} else if it.NewState == nil {
		s.state = nil
		s.done = true
	}

	for _, event := range it.Events {
		s.notify.Dispatch(event)
	}
}

// Done reports whether the mediation has finalized.
func (s *Service) Done() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.done
}

// State returns the current MediatorState, or nil once finalized. It is a
// snapshot reference, not a copy: callers must not mutate it.
func (s *Service) State() *mediatedtransfer.MediatorState {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state
}

// AlarmCallback adapts Service to blockchain.AlarmCallback's signature so
// a Service can be registered directly with an AlarmTask.
func (s *Service) AlarmCallback(blockNumber int64) error {
	s.Apply(&transfer.Block{BlockNumber: blockNumber})
	if s.Done() {
		// Returning an error unregisters us from the AlarmTask: a
		// finalized mediation has no further use for block events.
		return errFinalized
	}
	return nil
}

var errFinalized = finalizedError{}

type finalizedError struct{}

func (finalizedError) Error() string { return "mediation finalized" }
