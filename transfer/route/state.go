// Package route models a candidate next-hop channel and the ordered
// collection of routes a mediator chooses from.
package route

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// State is a candidate next-hop channel. RevealTimeout must be strictly
// smaller than SettleTimeout: the peer needs time to act on a revealed
// secret before the settlement window it reserved to do so closes.
type State struct {
	NodeAddress      common.Address
	ChannelAddress   common.Hash
	AvailableBalance *big.Int
	SettleTimeout    int64
	RevealTimeout    int64

	// CloseBlock is nil while the channel is open on chain. Once set, it
	// pins the block at which the settlement countdown started.
	CloseBlock *int64
}

// Valid reports whether the route satisfies its own invariant
// (RevealTimeout < SettleTimeout). The driver is expected to only ever
// construct valid routes; this is here for tests and assertions, not as a
// runtime guard on the hot path.
func (s *State) Valid() bool {
	return s.RevealTimeout < s.SettleTimeout
}

// RoutesState is the ordered bookkeeping a mediator keeps over candidate
// routes for a single mediation: the routes still available (best first),
// the ones rejected this mediation, and the ones reserved as refund
// destinations. A route belongs to at most one of the three lists at a
// time.
type RoutesState struct {
	AvailableRoutes []*State
	IgnoredRoutes   []*State
	RefundRoutes    []*State
}

// NewRoutesState builds a RoutesState from a best-first ordered slice of
// candidate routes, as produced by the route provider.
func NewRoutesState(available []*State) *RoutesState {
	return &RoutesState{AvailableRoutes: available}
}

// PopNext removes and returns the best remaining available route, or
// (nil, false) if none are left.
func (r *RoutesState) PopNext() (*State, bool) {
	if len(r.AvailableRoutes) == 0 {
		return nil, false
	}
	next := r.AvailableRoutes[0]
	r.AvailableRoutes = r.AvailableRoutes[1:]
	return next, true
}

// Ignore moves a route, previously popped off AvailableRoutes, onto the
// ignored list: it was considered for this mediation and rejected.
func (r *RoutesState) Ignore(s *State) {
	r.IgnoredRoutes = append(r.IgnoredRoutes, s)
}

// Refund records a route as the destination of a refund transfer.
func (r *RoutesState) Refund(s *State) {
	r.RefundRoutes = append(r.RefundRoutes, s)
}

// ApplyRouteChange updates the fields of whichever known route matches
// update.NodeAddress, searching AvailableRoutes first and then
// IgnoredRoutes. A route referring to an address not currently known is
// silently ignored, matching the "route change referring to an unknown
// route" outcome in the mediator's error taxonomy.
func (r *RoutesState) ApplyRouteChange(update *State) {
	for _, list := range [][]*State{r.AvailableRoutes, r.IgnoredRoutes} {
		for _, existing := range list {
			if existing.NodeAddress == update.NodeAddress {
				existing.AvailableBalance = update.AvailableBalance
				existing.SettleTimeout = update.SettleTimeout
				existing.RevealTimeout = update.RevealTimeout
				existing.CloseBlock = update.CloseBlock
				return
			}
		}
	}
}
