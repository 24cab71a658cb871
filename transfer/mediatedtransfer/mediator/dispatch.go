package mediator

import (
	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
)

// Step is the mediator's total, deterministic transition function:
// step(state, event) -> (state', events_out). nil state is a distinct
// phase (uninitialized); once state.Secret is set the accepted event set
// narrows.
//
// hasher supplies the hash capability ReceiveSecretReveal is checked
// against; it is threaded through rather than read off a package global.
func Step(state *mediatedtransfer.MediatorState, change transfer.StateChange, hasher mediatedtransfer.HashFunc) *transfer.Iteration {
	var it *transfer.Iteration

	switch {
	case state == nil:
		if init, ok := change.(*mediatedtransfer.ActionInitMediator); ok {
			it = initMediator(init)
		} else {
			return transfer.NewIteration(nil, nil)
		}

	case state.Secret == nil:
		switch c := change.(type) {
		case *transfer.Block:
			it = HandleBlock(state, c)
		case *transfer.ActionRouteChange:
			it = HandleRouteChange(state, c)
		case *mediatedtransfer.ReceiveTransferRefund:
			it = HandleRefundTransfer(state, c)
		case *mediatedtransfer.ReceiveSecretReveal:
			it = HandleSecretReveal(state, c, hasher)
		case *mediatedtransfer.ContractReceiveWithdraw:
			it = HandleContractWithdraw(state, c)
		default:
			return transfer.NewIteration(state, nil)
		}

	default:
		switch c := change.(type) {
		case *transfer.Block:
			it = HandleBlock(state, c)
		case *mediatedtransfer.ReceiveSecretReveal:
			it = HandleSecretReveal(state, c, hasher)
		case *mediatedtransfer.ReceiveBalanceProof:
			it = HandleBalanceProof(state, c)
		case *mediatedtransfer.ContractReceiveWithdraw:
			it = HandleContractWithdraw(state, c)
		default:
			return transfer.NewIteration(state, nil)
		}
	}

	return ClearIfFinalized(it)
}

// initMediator builds a fresh MediatorState from ActionInitMediator and
// immediately attempts to mediate the received transfer.
func initMediator(change *mediatedtransfer.ActionInitMediator) *transfer.Iteration {
	state := &mediatedtransfer.MediatorState{
		OurAddress:  change.OurAddress,
		Routes:      change.Routes,
		BlockNumber: change.BlockNumber,
		Hashlock:    change.FromTransfer.Hashlock,
	}

	return MediateTransfer(state, change.FromRoute, change.FromTransfer)
}
