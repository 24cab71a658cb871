package mediatedtransfer

import (
	"encoding/gob"

	"github.com/ethereum/go-ethereum/common"

	"github.com/christophervojick119/raiden/transfer/route"
)

// ActionInitMediator is the initial state change for a new mediator: the
// received mediated transfer together with the route it arrived on and
// the candidate routes to forward it through.
type ActionInitMediator struct {
	OurAddress   common.Address
	Routes       *route.RoutesState
	BlockNumber  int64
	FromRoute    *route.State
	FromTransfer *LockedTransfer
}

// ReceiveTransferRefund is a mediated-transfer-shaped refund sent back by
// a downstream hop that could not find a route of its own to continue the
// mediation.
type ReceiveTransferRefund struct {
	Sender   common.Address
	Transfer *LockedTransfer
}

// ReceiveSecretReveal is delivered when a peer discloses the preimage of
// the hashlock off-chain.
type ReceiveSecretReveal struct {
	Sender common.Address
	Secret common.Hash
}

// ReceiveBalanceProof is delivered when a payer hop redeems its lock
// off-chain. ChannelAddress identifies the channel the redeemed lock sat
// on, not the peer that redeemed it — matched here against each pair's
// payer-side channel rather than kept ambiguous.
type ReceiveBalanceProof struct {
	ChannelAddress common.Hash
}

// ContractReceiveWithdraw is delivered when an on-chain unlock is observed.
// If it matches a known payer-side channel, that pair's payer leg is
// marked withdrawn. Otherwise it is treated as a payee-side on-chain
// secret reveal: our downstream peer unlocking on-chain discloses the
// secret to us just as surely as an off-chain reveal would.
type ContractReceiveWithdraw struct {
	ChannelAddress common.Hash
	Sender         common.Address
	Secret         common.Hash
}

func init() {
	gob.Register(&ActionInitMediator{})
	gob.Register(&ReceiveTransferRefund{})
	gob.Register(&ReceiveSecretReveal{})
	gob.Register(&ReceiveBalanceProof{})
	gob.Register(&ContractReceiveWithdraw{})
}
