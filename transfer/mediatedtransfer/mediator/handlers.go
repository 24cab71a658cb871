package mediator

import (
	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
)

// HandleRefundTransfer validates and handles a ReceiveTransferRefund.
// A node may mediate the same payment more than once because of
// refunds — e.g. A-B-C-B-D-T: B tries through C, C has no route and
// refunds B, B is back in the path and tries D instead, D reaches T. At
// that point B has two pairs: payer A / payee C (the original mediation),
// then payer C / payee D (the retry after the refund).
//
// Only the most recently appended pair may be refunded; every earlier
// pair was already refunded by construction (it's the one that produced
// the next pair in the chain).
func HandleRefundTransfer(state *mediatedtransfer.MediatorState, change *mediatedtransfer.ReceiveTransferRefund) *transfer.Iteration {
	last := state.TransfersPair[len(state.TransfersPair)-1]

	if !IsValidRefund(last.PayeeTransfer, change.Sender, change.Transfer) {
		// TODO: event for byzantine behavior.
		return transfer.NewIteration(state, nil)
	}

	payerRoute := last.PayeeRoute
	state.Routes.Refund(payerRoute)
	return MediateTransfer(state, payerRoute, change.Transfer)
}

// HandleSecretReveal validates and handles a ReceiveSecretReveal.
// hasher lets the caller supply whatever hash capability the rest of the
// node's contracts expect: a capability, not a global.
func HandleSecretReveal(state *mediatedtransfer.MediatorState, change *mediatedtransfer.ReceiveSecretReveal, hasher mediatedtransfer.HashFunc) *transfer.Iteration {
	if hasher(change.Secret) != state.Hashlock {
		// TODO: event for byzantine behavior.
		return transfer.NewIteration(state, nil)
	}
	return SecretLearned(state, change.Secret, change.Sender, mediatedtransfer.SecretRevealed)
}

// HandleContractWithdraw handles a ContractReceiveWithdraw. If the
// channel matches a known payer leg, that leg is marked withdrawn.
// Otherwise the event is reinterpreted as a payee-side on-chain secret
// reveal: our downstream peer unlocking on-chain discloses the secret to
// us just as an off-chain reveal would.
func HandleContractWithdraw(state *mediatedtransfer.MediatorState, change *mediatedtransfer.ContractReceiveWithdraw) *transfer.Iteration {
	for _, pair := range state.TransfersPair {
		if pair.PayerRoute.ChannelAddress == change.ChannelAddress {
			pair.PayerState = mediatedtransfer.ContractWithdraw
			return transfer.NewIteration(state, nil)
		}
	}

	return SecretLearned(state, change.Secret, change.Sender, mediatedtransfer.ContractWithdraw)
}

// HandleBalanceProof handles a ReceiveBalanceProof: every pair
// whose payer leg sits on the referenced channel is marked redeemed
// off-chain. No outbound events are ever produced by this handler.
func HandleBalanceProof(state *mediatedtransfer.MediatorState, change *mediatedtransfer.ReceiveBalanceProof) *transfer.Iteration {
	for _, pair := range state.TransfersPair {
		if pair.PayerRoute.ChannelAddress == change.ChannelAddress {
			pair.PayerState = mediatedtransfer.BalanceProof
		}
	}
	return transfer.NewIteration(state, nil)
}

// HandleRouteChange applies a route update to whichever known route it
// refers to, or silently ignores it if the route is unknown.
func HandleRouteChange(state *mediatedtransfer.MediatorState, change *transfer.ActionRouteChange) *transfer.Iteration {
	if change.RouteUpdate != nil {
		state.Routes.ApplyRouteChange(change.RouteUpdate.Route)
	}
	return transfer.NewIteration(state, nil)
}
