package mpo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmike/mpo/pkg/mpo"
)

func TestConnectByName(t *testing.T) {
	net := mpo.NewNetwork()

	sig := mpo.NewSignal(net, msgAType)
	sig.SetName("Src::output")
	count := 0
	slot := mpo.NewSlot(net, msgAType, func(m msgA, _ *mpo.Link) { count++ })
	slot.SetName("Dst::input")

	require.True(t, net.Connect("Src::output", "Dst::input", false))
	assert.True(t, net.IsConnected("Src::output", "Dst::input"))

	sig.Emit(&msgAVal{})
	for net.ProcessNext() {
	}
	assert.Equal(t, 1, count)

	require.True(t, net.Disconnect("Src::output", "Dst::input"))
	assert.False(t, net.IsConnected("Src::output", "Dst::input"))
}

func TestConnectUnknownNames(t *testing.T) {
	net := mpo.NewNetwork()

	sig := mpo.NewSignal(net, msgAType)
	sig.SetName("Src::output")

	assert.False(t, net.Connect("Src::output", "nope", false))
	assert.False(t, net.Connect("nope", "Src::output", false))
	assert.False(t, net.Disconnect("Src::output", "nope"))
	assert.False(t, net.IsConnected("Src::output", "nope"))
}

func TestConnectNilEndpoints(t *testing.T) {
	net := mpo.NewNetwork()
	sig := mpo.NewSignal(net, msgAType)
	slot := mpo.NewSlot(net, msgAType, func(m msgA, _ *mpo.Link) {})

	assert.False(t, net.ConnectPoints(nil, slot, false))
	assert.False(t, net.ConnectPoints(sig, nil, false))
	assert.False(t, net.DisconnectPoints(nil, slot))
	assert.False(t, net.IsConnectedPoints(sig, nil))
}

func TestConnectRejectsForeignEndpoints(t *testing.T) {
	net := mpo.NewNetwork()
	other := mpo.NewNetwork()

	sig := mpo.NewSignal(other, msgAType)
	slot := mpo.NewSlot(net, msgAType, func(m msgA, _ *mpo.Link) {})

	assert.False(t, net.ConnectPoints(sig, slot, false), "endpoints must belong to the wiring network")
}

func TestProcessNextOnEmptyQueue(t *testing.T) {
	net := mpo.NewNetwork()
	assert.False(t, net.ProcessNext())
}

func TestProcessNextReportsRemainingEntries(t *testing.T) {
	net := mpo.NewNetwork()

	sig := mpo.NewSignal(net, msgAType)
	slot := mpo.NewSlot(net, msgAType, func(m msgA, _ *mpo.Link) {})
	require.True(t, net.ConnectPoints(sig, slot, false))

	sig.Emit(&msgAVal{})
	sig.Emit(&msgAVal{})

	assert.True(t, net.ProcessNext(), "one entry remains after the first dispatch")
	assert.False(t, net.ProcessNext(), "queue is empty after the second dispatch")
	assert.False(t, net.ProcessNext())
}

func TestDrain(t *testing.T) {
	net := mpo.NewNetwork()

	sig := mpo.NewSignal(net, msgAType)
	count := 0
	slot := mpo.NewSlot(net, msgAType, func(m msgA, _ *mpo.Link) { count++ })
	require.True(t, net.ConnectPoints(sig, slot, false))

	sig.Emit(&msgAVal{})
	sig.Emit(&msgAVal{})
	sig.Emit(&msgAVal{})

	assert.Equal(t, 3, net.Drain(context.Background()))
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, net.Drain(context.Background()))
}

func TestHandlerMayEmitDuringDispatch(t *testing.T) {
	net := mpo.NewNetwork()

	first := mpo.NewSignal(net, msgAType)
	second := mpo.NewSignal(net, msgAType)

	relayed := 0
	relay := mpo.NewSlot(net, msgAType, func(m msgA, _ *mpo.Link) {
		relayed++
		second.Emit(m)
	})
	final := 0
	sink := mpo.NewSlot(net, msgAType, func(m msgA, _ *mpo.Link) { final++ })

	require.True(t, net.ConnectPoints(first, relay, false))
	require.True(t, net.ConnectPoints(second, sink, false))

	first.Emit(&msgAVal{})
	for net.ProcessNext() {
	}
	assert.Equal(t, 1, relayed)
	assert.Equal(t, 1, final, "re-emission from a handler extends the same drain")
}

func TestHandlerMayRewireDuringDispatch(t *testing.T) {
	net := mpo.NewNetwork()

	sig := mpo.NewSignal(net, msgAType)
	count := 0
	slot := mpo.NewSlot(net, msgAType, func(m msgA, l *mpo.Link) {
		count++
		l.Disconnect()
	})
	require.True(t, net.ConnectPoints(sig, slot, false))

	sig.Emit(&msgAVal{})
	sig.Emit(&msgAVal{})
	for net.ProcessNext() {
	}
	assert.Equal(t, 1, count, "the first dispatch tears the link down and purges the second entry")
	assert.Empty(t, slot.Links())
}

// TestPingPong runs the canonical rally: Ping re-emits the ball until
// the total count reaches the maximum, Pong bounces every ball back.
// With one pong both counters reach the maximum; adding a second pong
// doubles the pong count while the ping count stays put.
func TestPingPong(t *testing.T) {
	net := mpo.NewNetwork()

	pi, err := newPing(net, "Ping")
	require.NoError(t, err)
	_, err = newPong(net, "Pong")
	require.NoError(t, err)

	require.True(t, net.Connect("Ping::output", "Pong::input", false))
	require.True(t, net.Connect("Pong::output", "Ping::input", false))

	b := &ball{}
	pi.start(b, 15)
	for net.ProcessNext() {
	}
	assert.Equal(t, 15, b.PingCnt)
	assert.Equal(t, 15, b.PongCnt)

	_, err = newPong(net, "Pong2")
	require.NoError(t, err)
	require.True(t, net.Connect("Ping::output", "Pong2::input", false))
	require.True(t, net.Connect("Pong2::output", "Ping::input", false))

	pi.start(b, 15)
	for net.ProcessNext() {
	}
	assert.Equal(t, 15, b.PingCnt, "ping count is bounded by the total counter")
	assert.Equal(t, 30, b.PongCnt, "every ping emission now reaches two pongs")
}

func TestNetworkQueueSharedBySignals(t *testing.T) {
	net := mpo.NewNetwork()

	sigA := mpo.NewSignal(net, msgAType)
	sigB := mpo.NewSignal(net, msgAType)
	var order []string
	slot := mpo.NewSlot(net, msgAType, func(m msgA, l *mpo.Link) {
		order = append(order, l.Signal().Name())
	})
	sigA.SetName("A::out")
	sigB.SetName("B::out")
	require.True(t, net.ConnectPoints(sigA, slot, false))
	require.True(t, net.ConnectPoints(sigB, slot, false))

	sigB.Emit(&msgAVal{})
	sigA.Emit(&msgAVal{})
	sigB.Emit(&msgAVal{})
	for net.ProcessNext() {
	}
	assert.Equal(t, []string{"B::out", "A::out", "B::out"}, order, "deliveries keep emission order across signals")
}
