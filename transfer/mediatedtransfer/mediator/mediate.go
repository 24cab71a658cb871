package mediator

import (
	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
	"github.com/christophervojick119/raiden/transfer/route"
)

// MediateTransfer is the mediation entry point, called both on init and
// whenever a refund is received. It computes the timeout budget, tries to
// continue forward over payerRoute/payerTransfer, and falls back to
// refunding the original payer if no viable route exists or the timeout
// budget is already exhausted.
func MediateTransfer(
	state *mediatedtransfer.MediatorState,
	payerRoute *route.State,
	payerTransfer *mediatedtransfer.LockedTransfer,
) *transfer.Iteration {
	var pair *mediatedtransfer.MediationPair
	var events []transfer.Event

	timeoutBlocks := GetTimeoutBlocks(payerRoute, payerTransfer, state.BlockNumber)

	if timeoutBlocks > 0 {
		pair, events = NextTransferPair(
			payerRoute,
			payerTransfer,
			state.Routes,
			timeoutBlocks,
			state.BlockNumber,
		)
	}

	if pair == nil {
		originalRoute := payerRoute
		originalTransfer := payerTransfer
		if len(state.TransfersPair) > 0 {
			originalRoute = state.TransfersPair[0].PayerRoute
			originalTransfer = state.TransfersPair[0].PayerTransfer
		}

		refundEvents := EventsForRefundTransfer(originalRoute, originalTransfer, timeoutBlocks, state.BlockNumber)
		return transfer.NewIteration(state, refundEvents)
	}

	// New pairs are always appended: refund expirations are always
	// strictly smaller than the transfer that produced them, so the list
	// stays ordered by non-increasing payer expiration without needing a
	// sort.
	state.TransfersPair = append(state.TransfersPair, pair)
	return transfer.NewIteration(state, events)
}
