package admission

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_SecondAdmitRejectedUntilRelease(t *testing.T) {
	gate := NewGate()

	require.True(t, gate.TryAdmit("client-a"), "first admit must succeed")
	assert.False(t, gate.TryAdmit("client-a"), "second admit while in flight must fail")
	assert.True(t, gate.InFlight("client-a"))

	gate.Release("client-a")

	assert.False(t, gate.InFlight("client-a"))
	assert.True(t, gate.TryAdmit("client-a"), "admit after release must succeed")
}

func TestGate_ClientsAreIndependent(t *testing.T) {
	gate := NewGate()

	require.True(t, gate.TryAdmit("client-a"))
	assert.True(t, gate.TryAdmit("client-b"), "a busy client must not block others")

	gate.Release("client-a")
	assert.True(t, gate.InFlight("client-b"), "releasing one client must not touch another")
}

func TestGate_ReleaseIsUnconditional(t *testing.T) {
	gate := NewGate()

	// Releasing a key that was never admitted must be a no-op.
	gate.Release("ghost")
	assert.True(t, gate.TryAdmit("ghost"))
}

func TestGate_ConcurrentContendersAdmitExactlyOne(t *testing.T) {
	gate := NewGate()

	const contenders = 64
	var admitted int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if gate.TryAdmit("client-a") {
				atomic.AddInt64(&admitted, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	require.EqualValues(t, 1, admitted, "exactly one contender may pass the gate")
}
