package mediator

import (
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
	"github.com/christophervojick119/raiden/transfer/route"
)

// GetTimeoutBlocks returns the base number of blocks available for
// computing the payee's lock timeout from. It is the smallest of:
//
//   - the blocks left until the payer channel's settlement window closes
//     (adjusted for elapsed blocks if the channel is already closed on
//     chain), and
//   - the blocks left until the payer transfer's own expiration,
//
// minus TransitMargin.
//
// Precondition (a driver/programming contract, not a runtime check): if
// payerRoute.CloseBlock is set, blockNumber must be >= *CloseBlock. A
// close observed in the future relative to the driver's own block count is
// a contract violation upstream of this function.
func GetTimeoutBlocks(payerRoute *route.State, payerTransfer *mediatedtransfer.LockedTransfer, blockNumber int64) int64 {
	blocksUntilSettlement := payerRoute.SettleTimeout

	if payerRoute.CloseBlock != nil {
		elapsed := blockNumber - *payerRoute.CloseBlock
		blocksUntilSettlement -= elapsed
	}

	safePayerTimeout := blocksUntilSettlement
	if remaining := payerTransfer.Expiration - blockNumber; remaining < safePayerTimeout {
		safePayerTimeout = remaining
	}

	return safePayerTimeout - TransitMargin
}
