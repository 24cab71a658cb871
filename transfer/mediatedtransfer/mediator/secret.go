package mediator

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
)

// EventsForRevealSecret walks transfers_pair tail to head and reveals the
// secret one hop further upstream for every pair whose payee side already
// knows it and whose payer side doesn't yet.
//
// Ordering rule: a hop is only told the secret after the hop immediately
// downstream of it has acknowledged knowing it. Suppose this node is N in
// A-N-B...B-N-C..C-N-D (two refunds). Under normal operation N learns the
// secret from D, reveals to C, waits for C's acknowledgment, then reveals
// to B, waits for B, then reveals to A. Each pair is judged on its own:
// the walk does not stop at a pair whose payee does not know the secret.
// If B reveals to N before C and D do, the secret is revealed to A even
// though C and D have not confirmed knowing it.
func EventsForRevealSecret(state *mediatedtransfer.MediatorState) []transfer.Event {
	var events []transfer.Event

	for i := len(state.TransfersPair) - 1; i >= 0; i-- {
		pair := state.TransfersPair[i]
		if pair.PayeeState.SecretKnown() && !pair.PayerState.SecretKnown() {
			pair.PayerState = mediatedtransfer.SecretRevealed
			events = append(events, &mediatedtransfer.SendRevealSecret{
				Identifier: pair.PayerTransfer.Identifier,
				Secret:     secretOf(pair.PayerTransfer),
				Recipient:  pair.PayerRoute.NodeAddress,
				Sender:     state.OurAddress,
			})
		}
	}

	return events
}

// EventsForBalanceProof walks transfers_pair tail to head and pays off
// every payee whose side already knows the secret, isn't paid yet, and
// whose lock hasn't expired.
func EventsForBalanceProof(state *mediatedtransfer.MediatorState) []transfer.Event {
	var events []transfer.Event

	for i := len(state.TransfersPair) - 1; i >= 0; i-- {
		pair := state.TransfersPair[i]
		lockValid := IsLockValid(state.BlockNumber, pair.PayeeTransfer)

		if pair.PayeeState.SecretKnown() && !pair.PayeeState.Paid() && lockValid {
			pair.PayeeState = mediatedtransfer.BalanceProof
			events = append(events, &mediatedtransfer.SendBalanceProof{
				Identifier: pair.PayeeTransfer.Identifier,
				Recipient:  pair.PayeeRoute.NodeAddress,
			})
		}
	}

	return events
}

// setPayeeStateAndCheckRevealOrder sets the payee-side sub-state of the
// pair whose payee route matches payeeAddress and reports whether an
// out-of-order reveal was observed while scanning for it: a pair closer to
// the tail than the match whose payee side does not yet know the secret
// indicates a downstream hop revealed before the hop behind it did,
// byzantine behavior under normal operation.
//
// TODO: surface this as an EventByzantine once that event is wired to a
// transport (see events.go); for now the observation is silently dropped.
func setPayeeStateAndCheckRevealOrder(pairs []*mediatedtransfer.MediationPair, payeeAddress common.Address, newPayeeState mediatedtransfer.SubState) (wrongOrder bool) {
	for i := len(pairs) - 1; i >= 0; i-- {
		pair := pairs[i]
		if pair.PayeeRoute.NodeAddress == payeeAddress {
			pair.PayeeState = newPayeeState
			return wrongOrder
		}
		if !pair.PayeeState.SecretKnown() {
			wrongOrder = true
		}
	}
	return wrongOrder
}

// secretOf reads back the secret a transfer was stamped with. Callers only
// reach this after SetSecret has run, so Secret is guaranteed non-nil.
func secretOf(t *mediatedtransfer.LockedTransfer) common.Hash {
	return *t.Secret
}

// SecretLearned records that secret is now known, attributes it to the
// pair whose payee route matches from, and runs the backward reveal /
// forward balance-proof propagation, concatenating whatever events result.
func SecretLearned(
	state *mediatedtransfer.MediatorState,
	secret common.Hash,
	from common.Address,
	newPayeeState mediatedtransfer.SubState,
) *transfer.Iteration {
	state.SetSecret(secret)

	// The byzantine observation (wrong reveal order) carries no event
	// today; see setPayeeStateAndCheckRevealOrder's TODO.
	_ = setPayeeStateAndCheckRevealOrder(state.TransfersPair, from, newPayeeState)

	// Balance-proof events are emitted before backward-reveal events:
	// redeeming what is already owed takes priority over propagating the
	// secret one hop further upstream.
	events := EventsForBalanceProof(state)
	events = append(events, EventsForRevealSecret(state)...)

	return transfer.NewIteration(state, events)
}
