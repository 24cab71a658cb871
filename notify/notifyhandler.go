// Package notify is the non-blocking sink the mediator's outbound events
// are fanned out to. It stands in for "the external I/O layer that
// dispatches the returned events" without implementing real
// peer transport, which remains out of scope.
package notify

import (
	"fmt"
	"time"

	frplog "github.com/fatedier/frp/src/utils/log"

	"github.com/christophervojick119/raiden/transfer/mediatedtransfer"
)

// Handler fans out a mediator's outbound events to whatever is listening,
// plus a separate operator-facing notice stream. Every channel is
// unbuffered and every send is non-blocking: a driver that forgets to
// drain one of them loses events rather than stalling the mediator.
type Handler struct {
	mediatedTransferChan chan *mediatedtransfer.SendMediatedTransfer
	refundTransferChan   chan *mediatedtransfer.SendRefundTransfer
	revealSecretChan     chan *mediatedtransfer.SendRevealSecret
	balanceProofChan     chan *mediatedtransfer.SendBalanceProof
	contractWithdrawChan chan *mediatedtransfer.ContractSendWithdraw
	noticeChan           chan *Notice
}

// NewHandler builds a Handler ready to dispatch.
func NewHandler() *Handler {
	return &Handler{
		mediatedTransferChan: make(chan *mediatedtransfer.SendMediatedTransfer),
		refundTransferChan:   make(chan *mediatedtransfer.SendRefundTransfer),
		revealSecretChan:     make(chan *mediatedtransfer.SendRevealSecret),
		balanceProofChan:     make(chan *mediatedtransfer.SendBalanceProof),
		contractWithdrawChan: make(chan *mediatedtransfer.ContractSendWithdraw),
		noticeChan:           make(chan *Notice),
	}
}

// GetNoticeChan returns the read-only operator-notice stream.
func (h *Handler) GetNoticeChan() <-chan *Notice { return h.noticeChan }

// GetMediatedTransferChan returns the read-only stream of forwarded HTLCs.
func (h *Handler) GetMediatedTransferChan() <-chan *mediatedtransfer.SendMediatedTransfer {
	return h.mediatedTransferChan
}

// GetRefundTransferChan returns the read-only stream of refunds.
func (h *Handler) GetRefundTransferChan() <-chan *mediatedtransfer.SendRefundTransfer {
	return h.refundTransferChan
}

// GetRevealSecretChan returns the read-only stream of backward secret
// reveals.
func (h *Handler) GetRevealSecretChan() <-chan *mediatedtransfer.SendRevealSecret {
	return h.revealSecretChan
}

// GetBalanceProofChan returns the read-only stream of forward balance
// proofs.
func (h *Handler) GetBalanceProofChan() <-chan *mediatedtransfer.SendBalanceProof {
	return h.balanceProofChan
}

// GetContractWithdrawChan returns the read-only stream of on-chain
// withdraw escalations.
func (h *Handler) GetContractWithdrawChan() <-chan *mediatedtransfer.ContractSendWithdraw {
	return h.contractWithdrawChan
}

// Notify pushes an operator-facing notice, dropping it rather than
// blocking the caller if nobody is listening.
func (h *Handler) Notify(level Level, info interface{}) {
	if info == nil {
		return
	}
	select {
	case h.noticeChan <- newNotice(level, info, time.Now()):
	default:
	}
}

// Dispatch routes a single outbound transfer.Event from the mediator core
// to its matching channel. Unrecognized event types are dropped with a
// debug-level log line (no Notice is sent); that should only happen if this package falls
// behind a new event type added to transfer/mediatedtransfer/events.go.
func (h *Handler) Dispatch(event interface{}) {
	switch e := event.(type) {
	case *mediatedtransfer.SendMediatedTransfer:
		select {
		case h.mediatedTransferChan <- e:
		default:
		}
	case *mediatedtransfer.SendRefundTransfer:
		select {
		case h.refundTransferChan <- e:
		default:
		}
	case *mediatedtransfer.SendRevealSecret:
		select {
		case h.revealSecretChan <- e:
		default:
		}
	case *mediatedtransfer.SendBalanceProof:
		select {
		case h.balanceProofChan <- e:
		default:
		}
	case *mediatedtransfer.ContractSendWithdraw:
		select {
		case h.contractWithdrawChan <- e:
		default:
		}
	default:
		frplog.Debug(fmt.Sprintf("notify: dropping unrecognized event %T", event))
	}
}
