package mediatedtransfer

import (
	"encoding/gob"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SendMediatedTransfer asks the driver to forward a new HTLC downstream.
// Despite the field name, Recipient is the payee hop's node address: the
// event's destination is the downstream peer, carrying the newly
// constructed payee transfer.
type SendMediatedTransfer struct {
	Transfer  *LockedTransfer
	Recipient common.Address
}

// Mediatedtransfer builds the SendMediatedTransfer event for a payee
// transfer about to be forwarded to recipient.
func Mediatedtransfer(transfer *LockedTransfer, recipient common.Address) *SendMediatedTransfer {
	return &SendMediatedTransfer{Transfer: transfer, Recipient: recipient}
}

// SendRefundTransfer asks the driver to send a mediated-transfer-shaped
// refund back to recipient, reusing the original identifier/token/amount/
// hashlock with a strictly smaller expiration.
type SendRefundTransfer struct {
	Identifier uint64
	Token      common.Address
	Amount     *big.Int
	Hashlock   common.Hash
	Expiration int64
	Recipient  common.Address
}

// SendRevealSecret asks the driver to reveal the secret to Recipient. The
// mediator only ever sends this upstream, once the immediately-downstream
// hop has already acknowledged knowing the secret.
type SendRevealSecret struct {
	Identifier uint64
	Secret     common.Hash
	Recipient  common.Address
	Sender     common.Address
}

// SendBalanceProof asks the driver to send an off-chain balance proof to
// Recipient, redeeming the payee lock now that the secret is known and the
// lock is still valid.
type SendBalanceProof struct {
	Identifier uint64
	Recipient  common.Address
}

// ContractSendWithdraw asks the external chain layer to claim the payer
// lock on-chain because waiting for an off-chain redemption is no longer
// safe.
type ContractSendWithdraw struct {
	Transfer       *LockedTransfer
	ChannelAddress common.Hash
}

// EventByzantine is reserved for peer-misbehavior observations (an
// out-of-order secret reveal, a refund with expiration >= original). It is
// defined so the shape exists ahead of time but is not emitted by any v1
// code path — the two spots that detect such behavior (the invalid-refund
// branch of HandleRefundTransfer and the reveal-order check in
// SecretLearned) return no event and keep no record of the observation.
type EventByzantine struct {
	Kind   string
	Peer   common.Address
	Detail string
}

func init() {
	gob.Register(&SendMediatedTransfer{})
	gob.Register(&SendRefundTransfer{})
	gob.Register(&SendRevealSecret{})
	gob.Register(&SendBalanceProof{})
	gob.Register(&ContractSendWithdraw{})
	gob.Register(&EventByzantine{})
}
