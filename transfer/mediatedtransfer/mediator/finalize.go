package mediator

import (
	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
)

// ClearIfFinalized returns a nil state if every pair in iteration's state
// has reached a terminal sub-state on both sides, otherwise it returns the
// iteration unchanged. This runs after every dispatched transition.
//
// TODO: how do we define success vs. failure for a mediator when
// individual paths may have finalized differently (one paid, one
// expired)? Left as future work, same as upstream.
func ClearIfFinalized(it *transfer.Iteration) *transfer.Iteration {
	state, ok := it.NewState.(*mediatedtransfer.MediatorState)
	if !ok || state == nil {
		return it
	}

	if state.AllFinalized() {
		return transfer.NewIteration(nil, it.Events)
	}
	return it
}
