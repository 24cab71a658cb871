// Package mediatedtransfer holds the data model for a mediated
// hash-time-locked transfer: the locked transfer itself, a payer/payee
// pairing of two such transfers, and the aggregate state a single mediator
// keeps while forwarding one.
package mediatedtransfer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/christophervojick119/raiden/transfer/route"
)

// LockedTransfer is a record describing an HTLC. Only Secret is assigned
// after construction (see setSecret). Amount must be positive and
// Expiration must be a positive block height; both are assumed validated
// before a transfer ever reaches this package.
type LockedTransfer struct {
	Identifier uint64
	Amount     *big.Int
	Token      common.Address
	Target     common.Address
	Expiration int64
	Hashlock   common.Hash
	Secret     *common.Hash // nil until revealed
}

// setSecret assigns secret to the transfer in place. Called only once per
// transfer, from MediatorState.SetSecret, to keep secret assignment on a
// single code path.
func (t *LockedTransfer) setSecret(secret common.Hash) {
	s := secret
	t.Secret = &s
}

// SubState is the per-side state of a MediationPair. The alphabet is
// shared between the payer and payee side; only the payer side ever
// reaches WaitingWithdraw.
type SubState int

const (
	// Pending: lock received (payer side) or lock sent (payee side), no
	// secret known yet.
	Pending SubState = iota
	// SecretRevealed: the secret is known on this side.
	SecretRevealed
	// ContractWithdraw: this side's lock was claimed on-chain.
	ContractWithdraw
	// BalanceProof: this side's lock was claimed off-chain.
	BalanceProof
	// Expired: this side's lock expired without being claimed.
	Expired
	// WaitingWithdraw: the mediator has emitted an on-chain withdraw
	// request for the payer lock and is waiting for it to land.
	WaitingWithdraw
)

func (s SubState) String() string {
	switch s {
	case Pending:
		return "pending"
	case SecretRevealed:
		return "secret_revealed"
	case ContractWithdraw:
		return "contract_withdraw"
	case BalanceProof:
		return "balance_proof"
	case Expired:
		return "expired"
	case WaitingWithdraw:
		return "waiting_withdraw"
	default:
		return "unknown"
	}
}

// SecretKnown is true for any side state reached only after this node
// learned the preimage.
func (s SubState) SecretKnown() bool {
	return s == SecretRevealed || s == ContractWithdraw || s == BalanceProof
}

// Paid is true for any side state in which the lock was actually claimed,
// on or off chain.
func (s SubState) Paid() bool {
	return s == ContractWithdraw || s == BalanceProof
}

// Final is true for any side state from which no further transition on
// that side is expected.
func (s SubState) Final() bool {
	return s.Paid() || s == Expired
}

// MediationPair is the pairing of an incoming (payer) leg with an outgoing
// (payee) leg of a single mediated transfer. Invariant: PayeeTransfer's
// expiration leaves at least reveal_margin blocks before PayerTransfer's
// (guaranteed by how the mediator package derives the payee expiration in
// pair.go; it is not checked at runtime).
type MediationPair struct {
	PayerRoute    *route.State
	PayerTransfer *LockedTransfer
	PayeeRoute    *route.State
	PayeeTransfer *LockedTransfer

	PayerState SubState
	PayeeState SubState
}

// FinalBothSides reports whether both sides of the pair have reached a
// terminal sub-state.
func (p *MediationPair) FinalBothSides() bool {
	return p.PayerState.Final() && p.PayeeState.Final()
}

// MediatorState is the only mutable aggregate the mediator core owns. It
// is created by ActionInitMediator and mutated in place by every
// subsequent transition until every pair finalizes on both sides, at
// which point the dispatcher destroys it (returns nil).
//
// TransfersPair is maintained in non-increasing PayerTransfer.Expiration
// order: new pairs are always appended, and refund expirations are always
// strictly smaller than the pair that produced them, so appending alone
// preserves the order.
type MediatorState struct {
	OurAddress    common.Address
	Routes        *route.RoutesState
	BlockNumber   int64
	Hashlock      common.Hash
	Secret        *common.Hash
	TransfersPair []*MediationPair
}

// SetSecret assigns the secret to the state and to every transfer (payer
// and payee leg) of every pair tracked so far. It does nothing if the
// state already knows a secret — the secret never changes once learned.
func (m *MediatorState) SetSecret(secret common.Hash) {
	if m.Secret != nil {
		return
	}
	s := secret
	m.Secret = &s
	for _, pair := range m.TransfersPair {
		pair.PayerTransfer.setSecret(secret)
		pair.PayeeTransfer.setSecret(secret)
	}
}

// PendingPairs returns the pairs that have not finalized on both sides,
// preserving TransfersPair's order.
func (m *MediatorState) PendingPairs() []*MediationPair {
	pending := make([]*MediationPair, 0, len(m.TransfersPair))
	for _, pair := range m.TransfersPair {
		if !pair.FinalBothSides() {
			pending = append(pending, pair)
		}
	}
	return pending
}

// AllFinalized reports whether every known pair has finalized on both
// sides. An empty TransfersPair (e.g. the init mediation immediately
// produced a refund, no pair, and that refund later also fails) is
// considered finalized too.
func (m *MediatorState) AllFinalized() bool {
	for _, pair := range m.TransfersPair {
		if !pair.FinalBothSides() {
			return false
		}
	}
	return true
}
