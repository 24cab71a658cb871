package mediator

import (
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
	"github.com/christophervojick119/raiden/transfer/route"
	"github.com/christophervojick119/raiden/transfer"
)

// NextTransferPair tries to continue the mediation over payerRoute /
// payerTransfer by picking a downstream route and constructing the payee
// leg of a new MediationPair.
//
// Preconditions enforced by the caller (mediate_transfer): timeoutBlocks
// must be positive and must not exceed the blocks remaining until
// payerTransfer expires.
//
// Returns (nil, nil) if no route could carry the transfer.
func NextTransferPair(
	payerRoute *route.State,
	payerTransfer *mediatedtransfer.LockedTransfer,
	routesState *route.RoutesState,
	timeoutBlocks int64,
	blockNumber int64,
) (*mediatedtransfer.MediationPair, []transfer.Event) {
	payeeRoute := NextRoute(routesState, timeoutBlocks, payerTransfer.Amount)
	if payeeRoute == nil {
		return nil, nil
	}

	lockTimeout := timeoutBlocks - payeeRoute.RevealTimeout
	lockExpiration := lockTimeout + blockNumber

	payeeTransfer := &mediatedtransfer.LockedTransfer{
		Identifier: payerTransfer.Identifier,
		Amount:     payerTransfer.Amount,
		Token:      payerTransfer.Token,
		Target:     payerTransfer.Target,
		Expiration: lockExpiration,
		Hashlock:   payerTransfer.Hashlock,
		Secret:     payerTransfer.Secret,
	}

	pair := &mediatedtransfer.MediationPair{
		PayerRoute:    payerRoute,
		PayerTransfer: payerTransfer,
		PayeeRoute:    payeeRoute,
		PayeeTransfer: payeeTransfer,
		PayerState:    mediatedtransfer.Pending,
		PayeeState:    mediatedtransfer.Pending,
	}

	// The destination is the payee hop's node, the downstream peer that
	// will hold the new lock, not the payer route this function was
	// handed, despite the similarly-named parameter.
	events := []transfer.Event{
		mediatedtransfer.Mediatedtransfer(payeeTransfer, payeeRoute.NodeAddress),
	}

	return pair, events
}
