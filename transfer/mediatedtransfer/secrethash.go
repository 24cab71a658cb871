package mediatedtransfer

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// HashFunc computes the hashlock for a secret. The core depends on this
// abstractly: it is a capability passed in by the
// driver, never a package-level global, so tests can swap in a fake and
// production can swap in whatever digest the rest of the node's contracts
// expect.
type HashFunc func(secret common.Hash) common.Hash

// Keccak256Hasher is the default HashFunc, matching the digest the
// on-chain HTLC contracts verify against.
func Keccak256Hasher(secret common.Hash) common.Hash {
	return crypto.Keccak256Hash(secret.Bytes())
}
