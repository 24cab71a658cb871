package mediator

import (
	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
	"github.com/christophervojick119/raiden/transfer/route"
)

// EventsForRefundTransfer builds the refund event sent back on
// refundRoute, reusing refundTransfer's identifier/token/amount/hashlock
// with a new, strictly smaller expiration derived the same way a forward
// mediated transfer's lock timeout is (a refund is a special-cased
// SendMediatedTransfer and must honor the same safety margin).
//
// Returns no events if there are not enough blocks left to construct a
// safe refund expiration: the mediator then silently lets the received
// lock expire. Its own exposure is bounded because the payer's lock
// expires too.
func EventsForRefundTransfer(
	refundRoute *route.State,
	refundTransfer *mediatedtransfer.LockedTransfer,
	timeoutBlocks int64,
	blockNumber int64,
) []transfer.Event {
	newLockTimeout := timeoutBlocks - refundRoute.RevealTimeout
	if newLockTimeout <= 0 {
		return nil
	}

	newExpiration := newLockTimeout + blockNumber

	event := &mediatedtransfer.SendRefundTransfer{
		Identifier: refundTransfer.Identifier,
		Token:      refundTransfer.Token,
		Amount:     refundTransfer.Amount,
		Hashlock:   refundTransfer.Hashlock,
		Expiration: newExpiration,
		Recipient:  refundRoute.NodeAddress,
	}

	return []transfer.Event{event}
}
