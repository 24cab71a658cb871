package route

import (
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	frplog "github.com/fatedier/frp/src/utils/log"
)

// Provider hands a mediator a best-first ordered RoutesState for a token.
// It is the concrete shape of the "route provider" collaborator the
// mediator consumes only through its interface: routing *policy* (how
// candidates are ordered) lives here, the mediator only applies the
// *selection predicate* over whatever order it is handed.
//
// Keeps the same mutex-guarded, per-token bookkeeping a connection manager
// would use, stripped of everything that manages channel connectivity
// (opening, depositing, leaving) — that belongs to a separate channel
// manager component this package does not implement.
type Provider struct {
	lock   sync.Mutex
	routes map[common.Address][]*State // tokenAddress -> known routes
}

// NewProvider returns an empty route provider.
func NewProvider() *Provider {
	return &Provider{routes: make(map[common.Address][]*State)}
}

// Update replaces the known candidate routes for a token. Routes are
// resorted best-first (highest available balance, then lowest reveal
// timeout) on every update so RoutesFor always hands out a fresh ordering.
func (p *Provider) Update(token common.Address, routes []*State) {
	p.lock.Lock()
	defer p.lock.Unlock()

	sorted := make([]*State, len(routes))
	copy(sorted, routes)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := sorted[i].AvailableBalance.Cmp(sorted[j].AvailableBalance)
		if cmp != 0 {
			return cmp > 0
		}
		return sorted[i].RevealTimeout < sorted[j].RevealTimeout
	})

	p.routes[token] = sorted
	frplog.Debug("route provider: %d candidate routes for token %s", len(sorted), token.Hex())
}

// RoutesFor returns a fresh RoutesState over the current best-first
// ordering for token. The returned RoutesState is independent of the
// provider's internal slice: popping from it does not mutate what a later
// RoutesFor call returns.
func (p *Provider) RoutesFor(token common.Address) *RoutesState {
	p.lock.Lock()
	defer p.lock.Unlock()

	known := p.routes[token]
	available := make([]*State, len(known))
	copy(available, known)
	return NewRoutesState(available)
}

// AvailableBalanceOf reads back what the provider currently reports for a
// node, without reaching into the provider's lock-guarded slice directly.
// It returns zero for a node the provider does not know.
func (p *Provider) AvailableBalanceOf(token common.Address, node common.Address) *big.Int {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, r := range p.routes[token] {
		if r.NodeAddress == node {
			return r.AvailableBalance
		}
	}
	return big.NewInt(0)
}
