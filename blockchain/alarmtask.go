// Package blockchain watches the chain for new blocks and turns them into
// Block state changes for whatever state machines are driven by block
// height (the mediator's expiration and withdraw-escalation handling
// chief among them). It consumes a go-ethereum ethclient.Client purely
// through its exported interface — the JSON-RPC client itself remains an
// external collaborator, this package only watches it.
package blockchain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
)

// AlarmCallback is notified of every new block. Returning a non-nil error
// unregisters the callback — it will not be called again.
type AlarmCallback func(blockNumber int64) error

type registeredCallback struct {
	id int
	cb AlarmCallback
}

// AlarmTask polls an Ethereum JSON-RPC endpoint for new block headers and
// fans them out to registered callbacks.
type AlarmTask struct {
	client          *ethclient.Client
	lastBlockNumber int64
	shouldStop      chan struct{}
	waitTime        time.Duration

	lock      sync.Mutex
	callbacks []registeredCallback
	nextID    int
}

// NewAlarmTask builds an AlarmTask over client. It does not start polling
// until Start is called.
func NewAlarmTask(client *ethclient.Client) *AlarmTask {
	return &AlarmTask{
		client:          client,
		waitTime:        time.Second,
		lastBlockNumber: -1,
		shouldStop:      make(chan struct{}),
	}
}

// RegisterCallback adds cb to the fan-out list and returns a handle that
// can later be passed to RemoveCallback. cb runs on the AlarmTask's own
// goroutine, so it must not block or it will delay delivery to every other
// registered callback.
func (a *AlarmTask) RegisterCallback(cb AlarmCallback) int {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.nextID++
	id := a.nextID
	a.callbacks = append(a.callbacks, registeredCallback{id: id, cb: cb})
	return id
}

// RemoveCallback unregisters the callback previously returned by
// RegisterCallback, if it is still registered.
func (a *AlarmTask) RemoveCallback(id int) {
	a.lock.Lock()
	defer a.lock.Unlock()
	for i, rc := range a.callbacks {
		if rc.id == id {
			a.callbacks = append(a.callbacks[:i], a.callbacks[i+1:]...)
			return
		}
	}
}

func (a *AlarmTask) run() {
	log.Debug(fmt.Sprintf("alarm task starting from block %d", a.lastBlockNumber))
	for {
		select {
		case <-a.shouldStop:
			return
		default:
		}
		if err := a.waitNewBlock(); err != nil {
			log.Warn(fmt.Sprintf("alarm task subscription error, retrying: %s", err))
			time.Sleep(a.waitTime)
		}
	}
}

func (a *AlarmTask) waitNewBlock() error {
	currentBlock := a.lastBlockNumber
	headerCh := make(chan *types.Header, 1)

	h, err := a.client.HeaderByNumber(context.Background(), nil)
	if err != nil {
		return err
	}
	headerCh <- h

	sub, err := a.client.SubscribeNewHead(context.Background(), headerCh)
	if err != nil {
		return err
	}

	for {
		select {
		case h, ok := <-headerCh:
			if !ok {
				return errors.New("alarm task: header subscription channel closed unexpectedly")
			}
			if currentBlock != -1 && h.Number.Int64() != currentBlock+1 {
				log.Warn(fmt.Sprintf("alarm task missed %d blocks", h.Number.Int64()-currentBlock))
			}
			currentBlock = h.Number.Int64()
			a.lastBlockNumber = currentBlock
			log.Trace(fmt.Sprintf("alarm task observed block %d", currentBlock))
			a.dispatch(currentBlock)

		case <-a.shouldStop:
			sub.Unsubscribe()
			close(headerCh)
			return nil
		}
	}
}

func (a *AlarmTask) dispatch(blockNumber int64) {
	a.lock.Lock()
	snapshot := make([]registeredCallback, len(a.callbacks))
	copy(snapshot, a.callbacks)
	a.lock.Unlock()

	var done []int
	for _, rc := range snapshot {
		if err := rc.cb(blockNumber); err != nil {
			done = append(done, rc.id)
		}
	}
	for _, id := range done {
		a.RemoveCallback(id)
	}
}

// Start begins polling in the background.
func (a *AlarmTask) Start() {
	go a.run()
}

// Stop halts polling. It is safe to call once; a second call panics, since
// it closes the already-closed shouldStop channel again.
func (a *AlarmTask) Stop() {
	close(a.shouldStop)
}
