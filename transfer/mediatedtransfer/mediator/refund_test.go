package mediator

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
	"github.com/christophervojick119/raiden/transfer/route"
)

func TestEventsForRefundTransfer_Emits(t *testing.T) {
	refundRoute := &route.State{NodeAddress: common.HexToAddress("0xA"), RevealTimeout: 5}
	original := transferFixture(100, 10)

	events := EventsForRefundTransfer(refundRoute, original, 88, 10)

	require.Len(t, events, 1)
	sent, ok := events[0].(*mediatedtransfer.SendRefundTransfer)
	require.True(t, ok)
	assert.Equal(t, original.Identifier, sent.Identifier)
	assert.Equal(t, original.Token, sent.Token)
	assert.Equal(t, original.Amount, sent.Amount)
	assert.Equal(t, original.Hashlock, sent.Hashlock)
	assert.Equal(t, refundRoute.NodeAddress, sent.Recipient)
	assert.Equal(t, int64(93), sent.Expiration) // 10 + (88-5)
}

func TestEventsForRefundTransfer_SilentWhenTooTight(t *testing.T) {
	refundRoute := &route.State{NodeAddress: common.HexToAddress("0xA"), RevealTimeout: 5}
	original := transferFixture(15, 10)

	// timeout_blocks = 3: expiration 15 at block 10 gives (15-10) - TRANSIT_MARGIN(2)
	events := EventsForRefundTransfer(refundRoute, original, 3, 10)
	assert.Empty(t, events)
}
