package blockchain

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlarmTask_RegisterAndDispatch(t *testing.T) {
	a := NewAlarmTask(nil)

	var mu sync.Mutex
	var seen []int64
	a.RegisterCallback(func(blockNumber int64) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, blockNumber)
		return nil
	})

	a.dispatch(1)
	a.dispatch(2)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int64{1, 2}, seen)
}

func TestAlarmTask_RemoveCallbackStopsDelivery(t *testing.T) {
	a := NewAlarmTask(nil)

	var mu sync.Mutex
	count := 0
	id := a.RegisterCallback(func(blockNumber int64) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	})
	a.RemoveCallback(id)

	a.dispatch(1)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, count)
}

func TestAlarmTask_CallbackErrorUnregistersItself(t *testing.T) {
	a := NewAlarmTask(nil)

	calls := 0
	a.RegisterCallback(func(blockNumber int64) error {
		calls++
		return errors.New("done")
	})

	a.dispatch(1)
	a.dispatch(2)

	assert.Equal(t, 1, calls, "a callback returning an error must not be called again")
}

// TestAlarmTask_RemoveCallbackByHandleNotPointer guards against a
// pointer-comparison-based removal scheme: two callbacks with identical
// underlying code (which would alias to the same function value under
// pointer-based comparison) must be independently removable by their
// distinct integer handles.
func TestAlarmTask_RemoveCallbackByHandleNotPointer(t *testing.T) {
	a := NewAlarmTask(nil)

	makeCounter := func(counter *int) func(int64) error {
		return func(blockNumber int64) error {
			*counter++
			return nil
		}
	}

	var countA, countB int
	idA := a.RegisterCallback(makeCounter(&countA))
	a.RegisterCallback(makeCounter(&countB))

	a.RemoveCallback(idA)
	a.dispatch(1)

	assert.Equal(t, 0, countA)
	assert.Equal(t, 1, countB)
}

func TestAlarmTask_RemoveUnknownHandleIsNoop(t *testing.T) {
	a := NewAlarmTask(nil)
	assert.NotPanics(t, func() { a.RemoveCallback(999) })
}
