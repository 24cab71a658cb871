package mediator

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
)

// IsLockValid reports whether a lock has not yet expired at blockNumber.
func IsLockValid(blockNumber int64, t *mediatedtransfer.LockedTransfer) bool {
	return blockNumber <= t.Expiration
}

// IsSafeToWait reports whether there are still enough blocks left before
// t's expiration to safely keep waiting for an off-chain redemption rather
// than escalating to an on-chain withdraw. A node may wait for a balance
// proof while more than revealTimeout blocks remain; from revealTimeout
// blocks before expiration onward it is not safe to wait any longer.
func IsSafeToWait(blockNumber int64, t *mediatedtransfer.LockedTransfer, revealTimeout int64) bool {
	return blockNumber < t.Expiration-revealTimeout
}

// IsValidRefund reports whether refund matches original closely enough to
// be accepted as a genuine refund from sender. A refund from the transfer
// target itself is rejected (the target has no reason to refund — it is
// the recipient). An expiration greater than or equal to the original is
// byzantine behavior that favors this node; it is rejected anyway, since
// the only reason a peer would use an invalid expiration is to play the
// protocol rather than to mediate honestly.
func IsValidRefund(original *mediatedtransfer.LockedTransfer, sender common.Address, refund *mediatedtransfer.LockedTransfer) bool {
	if sender == original.Target {
		return false
	}
	return original.Identifier == refund.Identifier &&
		original.Amount.Cmp(refund.Amount) == 0 &&
		original.Hashlock == refund.Hashlock &&
		original.Target == refund.Target &&
		original.Expiration > refund.Expiration
}
