package mediatorservice

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophervojick119/raiden/notify"
	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
	"github.com/christophervojick119/raiden/transfer/route"
)

func identityHasher(secret common.Hash) common.Hash { return secret }

func initChange(expiration int64, candidates ...*route.State) *mediatedtransfer.ActionInitMediator {
	return &mediatedtransfer.ActionInitMediator{
		OurAddress:  common.HexToAddress("0xN"),
		Routes:      route.NewRoutesState(candidates),
		BlockNumber: 10,
		FromRoute:   &route.State{NodeAddress: common.HexToAddress("0xA"), SettleTimeout: 1000},
		FromTransfer: &mediatedtransfer.LockedTransfer{
			Identifier: 1,
			Amount:     big.NewInt(10),
			Token:      common.HexToAddress("0xtoken"),
			Target:     common.HexToAddress("0xtarget"),
			Expiration: expiration,
			Hashlock:   common.HexToHash("0xhash"),
		},
	}
}

// receiveOnce parks a goroutine on recv and signals readiness immediately
// before the blocking receive, then runs trigger and waits for the
// delivered value. Dispatch's send is non-blocking, so trigger must not
// run until the receiver is already parked.
func receiveOnce[T any](trigger func(), recv <-chan T) T {
	ready := make(chan struct{})
	result := make(chan T, 1)
	go func() {
		close(ready)
		result <- <-recv
	}()
	<-ready
	trigger()
	return <-result
}

func TestService_ApplyDispatchesEventsAndTracksState(t *testing.T) {
	sink := notify.NewHandler()
	svc := NewService(identityHasher, sink)
	candidate := &route.State{NodeAddress: common.HexToAddress("0xB"), AvailableBalance: big.NewInt(10), RevealTimeout: 5}

	got := receiveOnce(func() { svc.Apply(initChange(100, candidate)) }, sink.GetMediatedTransferChan())
	assert.Equal(t, candidate.NodeAddress, got.Recipient)

	assert.False(t, svc.Done())
	require.NotNil(t, svc.State())
	assert.Len(t, svc.State().TransfersPair, 1)
}

func TestService_ApplyFinalizesOnNoViableRoute(t *testing.T) {
	sink := notify.NewHandler()
	svc := NewService(identityHasher, sink)

	got := receiveOnce(func() { svc.Apply(initChange(100)) }, sink.GetRefundTransferChan())
	assert.NotNil(t, got)
	assert.True(t, svc.Done())
	assert.Nil(t, svc.State())
}

func TestService_ApplyAfterDoneIsNoop(t *testing.T) {
	sink := notify.NewHandler()
	svc := NewService(identityHasher, sink)

	receiveOnce(func() { svc.Apply(initChange(100)) }, sink.GetRefundTransferChan())
	require.True(t, svc.Done())

	assert.NotPanics(t, func() { svc.Apply(&transfer.Block{BlockNumber: 1}) })
	assert.True(t, svc.Done())
}

func TestService_AlarmCallbackUnregistersOnceFinalized(t *testing.T) {
	sink := notify.NewHandler()
	svc := NewService(identityHasher, sink)
	receiveOnce(func() { svc.Apply(initChange(100)) }, sink.GetRefundTransferChan())

	err := svc.AlarmCallback(11)
	assert.Error(t, err, "a finalized mediation must unregister itself from the alarm task")
}

func TestService_AlarmCallbackKeepsRunningWhilePending(t *testing.T) {
	sink := notify.NewHandler()
	svc := NewService(identityHasher, sink)
	candidate := &route.State{NodeAddress: common.HexToAddress("0xB"), AvailableBalance: big.NewInt(10), RevealTimeout: 5}
	receiveOnce(func() { svc.Apply(initChange(100, candidate)) }, sink.GetMediatedTransferChan())

	err := svc.AlarmCallback(11)
	assert.NoError(t, err)
	assert.False(t, svc.Done())
}

func TestNewService_DefaultsToKeccakHasher(t *testing.T) {
	svc := NewService(nil, notify.NewHandler())
	assert.NotNil(t, svc.hasher)
}
