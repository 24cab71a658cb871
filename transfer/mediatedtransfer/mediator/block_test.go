package mediator

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophervojick119/raiden/transfer"
	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
	"github.com/christophervojick119/raiden/transfer/route"
)

func pairFixture(payerExpiration, payeeExpiration int64) *mediatedtransfer.MediationPair {
	return &mediatedtransfer.MediationPair{
		PayerRoute:    &route.State{NodeAddress: common.HexToAddress("0xA"), ChannelAddress: common.HexToHash("0xchanA"), RevealTimeout: 5},
		PayerTransfer: transferFixture(payerExpiration, 10),
		PayeeRoute:    &route.State{NodeAddress: common.HexToAddress("0xB")},
		PayeeTransfer: transferFixture(payeeExpiration, 10),
	}
}

// TestHandleBlock_ExpirationPolarity pins down the expiration condition:
// a leg is marked expired once the block height passes *its own*
// expiration, never while the lock is still valid. The inverted
// `payer_transfer.expiration > block_number` form is the lock-still-valid
// test and must NOT be what triggers expiry here.
func TestHandleBlock_ExpirationPolarity(t *testing.T) {
	pair := pairFixture(100, 93)
	state := &mediatedtransfer.MediatorState{TransfersPair: []*mediatedtransfer.MediationPair{pair}}

	// One block before either expiration: lock still valid on both
	// sides, the inverted condition (expiration > block) would fire here
	// and incorrectly mark both expired.
	HandleBlock(state, &transfer.Block{BlockNumber: 92})
	assert.Equal(t, mediatedtransfer.Pending, pair.PayerState)
	assert.Equal(t, mediatedtransfer.Pending, pair.PayeeState)

	// Past the payee's expiration only.
	HandleBlock(state, &transfer.Block{BlockNumber: 94})
	assert.Equal(t, mediatedtransfer.Pending, pair.PayerState)
	assert.Equal(t, mediatedtransfer.Expired, pair.PayeeState)

	// Past both expirations.
	HandleBlock(state, &transfer.Block{BlockNumber: 101})
	assert.Equal(t, mediatedtransfer.Expired, pair.PayerState)
	assert.Equal(t, mediatedtransfer.Expired, pair.PayeeState)
}

func TestHandleBlock_PaidPayeeNeverMarkedExpired(t *testing.T) {
	pair := pairFixture(100, 93)
	pair.PayeeState = mediatedtransfer.BalanceProof
	state := &mediatedtransfer.MediatorState{TransfersPair: []*mediatedtransfer.MediationPair{pair}}

	HandleBlock(state, &transfer.Block{BlockNumber: 200})
	assert.Equal(t, mediatedtransfer.BalanceProof, pair.PayeeState)
}

// TestHandleBlock_UnsafeToWaitTriggersWithdraw pins down the withdraw
// escalation once waiting for an off-chain redemption is no longer safe.
func TestHandleBlock_UnsafeToWaitTriggersWithdraw(t *testing.T) {
	pair := pairFixture(100, 93)
	pair.PayeeState = mediatedtransfer.BalanceProof
	state := &mediatedtransfer.MediatorState{TransfersPair: []*mediatedtransfer.MediationPair{pair}}

	it := HandleBlock(state, &transfer.Block{BlockNumber: 89})
	assert.Empty(t, it.Events)
	assert.Equal(t, mediatedtransfer.Pending, pair.PayerState)

	it = HandleBlock(state, &transfer.Block{BlockNumber: 95})
	require.Len(t, it.Events, 1)
	withdraw, ok := it.Events[0].(*mediatedtransfer.ContractSendWithdraw)
	require.True(t, ok)
	assert.Same(t, pair.PayerTransfer, withdraw.Transfer)
	assert.Equal(t, pair.PayerRoute.ChannelAddress, withdraw.ChannelAddress)
	assert.Equal(t, mediatedtransfer.WaitingWithdraw, pair.PayerState)
}

// TestHandleBlock_Idempotent pins down that applying the same block
// number twice must not re-emit the withdraw
// event the first application already produced.
func TestHandleBlock_Idempotent(t *testing.T) {
	pair := pairFixture(100, 93)
	pair.PayeeState = mediatedtransfer.BalanceProof
	state := &mediatedtransfer.MediatorState{TransfersPair: []*mediatedtransfer.MediationPair{pair}}

	HandleBlock(state, &transfer.Block{BlockNumber: 95})
	it := HandleBlock(state, &transfer.Block{BlockNumber: 95})
	assert.Empty(t, it.Events)
}

func TestHandleBlock_NoWithdrawWhenPayeeUnpaid(t *testing.T) {
	pair := pairFixture(100, 93)
	state := &mediatedtransfer.MediatorState{TransfersPair: []*mediatedtransfer.MediationPair{pair}}

	it := HandleBlock(state, &transfer.Block{BlockNumber: 95})
	assert.Empty(t, it.Events, "never withdraw unless the payee side was actually paid off")
}
