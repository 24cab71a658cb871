package mediator

import (
	"math/big"

	"github.com/christophervojick119/raiden/transfer/route"
)

// NextRoute pops candidate routes off routesState.AvailableRoutes, best
// first, until it finds one that can carry amount within timeoutBlocks, or
// exhausts the list. Rejected candidates are moved to IgnoredRoutes so a
// later retry (e.g. after a refund) does not reconsider them for this same
// mediation. Routing *policy* — how candidates got into this order — is
// the route provider's job; this is only the *selection predicate*.
func NextRoute(routesState *route.RoutesState, timeoutBlocks int64, amount *big.Int) *route.State {
	for {
		candidate, ok := routesState.PopNext()
		if !ok {
			return nil
		}

		lockTimeout := timeoutBlocks - candidate.RevealTimeout
		enoughBalance := candidate.AvailableBalance.Cmp(amount) >= 0

		if enoughBalance && lockTimeout > 0 {
			return candidate
		}
		routesState.Ignore(candidate)
	}
}
