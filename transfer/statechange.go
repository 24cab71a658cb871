package transfer

import (
	"encoding/gob"

	"github.com/christophervojick119/raiden/transfer/route"
)

// Block is delivered once per mined block. It is the only source of time
// the core understands; there are no wall-clock timeouts anywhere in the
// state machines it drives.
type Block struct {
	BlockNumber int64
}

// RouteUpdate carries a fresher view of a single route, e.g. a deposit or a
// channel close observed by the channel manager. It is applied in place to
// the route if AvailableRoutes or IgnoredRoutes holds it; routes on
// RefundRoutes are not updated.
type RouteUpdate struct {
	Route *route.State
}

// ActionRouteChange notifies a state machine that one of the routes it
// knows about changed. A route update that does not match any known route
// is silently ignored.
type ActionRouteChange struct {
	RouteUpdate *RouteUpdate
}

func init() {
	gob.Register(&Block{})
	gob.Register(&ActionRouteChange{})
}
