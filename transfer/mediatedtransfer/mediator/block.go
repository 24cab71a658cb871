package mediator

import (
	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
)

// HandleBlock advances the mediator's notion of time and handles lock
// expiration and the on-chain withdraw escalation.
//
// Pending pairs are walked tail to head (lowest payer expiration first),
// matching the order TransfersPair is maintained in.
//
// Expiration marking here follows the condition that a leg's own
// expiration has actually passed, not the lock-still-valid condition
// (`expiration > blockNumber`) inverted: a payer leg is marked expired once
// blockNumber has passed its expiration, and independently a payee leg is
// marked expired once blockNumber has passed its own expiration and it
// was never paid.
func HandleBlock(state *mediatedtransfer.MediatorState, blockChange *transfer.Block) *transfer.Iteration {
	blockNumber := blockChange.BlockNumber
	state.BlockNumber = blockNumber

	var events []transfer.Event
	pending := state.PendingPairs()

	for i := len(pending) - 1; i >= 0; i-- {
		pair := pending[i]

		// Only withdraw on-chain once the payee leg is actually paid:
		// withdrawing before that would let an attacker burn this
		// node's channel-close allowance for no off-chain benefit.
		payeePayed := pair.PayeeState.Paid()
		payerPayed := pair.PayerState.Paid()
		withdrawing := pair.PayerState == mediatedtransfer.WaitingWithdraw

		if payeePayed && !payerPayed && !withdrawing {
			safeToWait := IsSafeToWait(blockNumber, pair.PayerTransfer, pair.PayerRoute.RevealTimeout)
			if !safeToWait {
				pair.PayerState = mediatedtransfer.WaitingWithdraw
				events = append(events, &mediatedtransfer.ContractSendWithdraw{
					Transfer:       pair.PayerTransfer,
					ChannelAddress: pair.PayerRoute.ChannelAddress,
				})
			}
		}

		if blockNumber > pair.PayerTransfer.Expiration {
			pair.PayerState = mediatedtransfer.Expired
		}
		if blockNumber > pair.PayeeTransfer.Expiration && !pair.PayeeState.Paid() {
			pair.PayeeState = mediatedtransfer.Expired
		}
	}

	return transfer.NewIteration(state, events)
}
