package mpo

import (
	"context"
	"log/slog"
	"sync"

	"github.com/chmike/mpo/pkg/mpo/directory"
	"github.com/chmike/mpo/pkg/mpo/observability"
)

// Network owns everything a routing domain shares: the dispatch queue,
// the signal and slot name directories, and the action map. It is an
// explicitly constructed context object rather than process-global
// state, so tests can run any number of independent networks.
//
// The delivery model is cooperative and single-driver: emission only
// enqueues, and handlers run to completion one at a time as the owner
// repeatedly calls ProcessNext (or Drain). All shared structures are
// nevertheless mutation-safe, since Go callers may emit or rewire from
// several goroutines; handlers are always invoked with no lock held.
type Network struct {
	name  string
	queue *Queue

	// mu guards endpoint names and the link sets on signals and
	// slots. The queue and the directories serialize themselves.
	mu sync.RWMutex

	signals *directory.Directory[*Signal]
	slots   *directory.Directory[*Slot]
	actions *directory.Directory[*Action]

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// Option configures a Network.
type Option func(*Network)

// WithName sets the network name used in trace spans. Default: "mpo".
func WithName(name string) Option {
	return func(n *Network) { n.name = name }
}

// WithLogger sets the structured logger. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Network) { n.logger = logger }
}

// WithMetrics sets the metrics recorder. Default: no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(n *Network) { n.metrics = m }
}

// WithSpans sets the trace span manager. Default: no-op.
func WithSpans(s observability.SpanManager) Option {
	return func(n *Network) { n.spans = s }
}

// NewNetwork creates an empty network with its own queue and
// directories.
func NewNetwork(opts ...Option) *Network {
	n := &Network{
		name:    "mpo",
		queue:   NewQueue(),
		signals: directory.New[*Signal](),
		slots:   directory.New[*Slot](),
		actions: directory.New[*Action](),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Queue returns the network's dispatch queue.
func (n *Network) Queue() *Queue { return n.queue }

// SetNotifier installs the queue's enqueue notifier, typically to wake
// a driver loop. Passing nil clears it.
func (n *Network) SetNotifier(fn func()) {
	n.queue.SetNotifier(fn)
}

// LookupSignal resolves a signal name through the directory.
func (n *Network) LookupSignal(name string) (*Signal, bool) {
	return n.signals.Resolve(name)
}

// LookupSlot resolves a slot name through the directory.
func (n *Network) LookupSlot(name string) (*Slot, bool) {
	return n.slots.Resolve(name)
}

// ConnectPoints establishes a link from a signal to a slot. It returns
// false when either endpoint is nil or belongs to another network, and
// true without any effect when the pair is already linked.
//
// The dispatch strategy is decided here, once: static when forceStatic
// is set or when the signal's declared type is the same as, or a
// subtype of, the slot's accepted type; dynamic otherwise. A caller
// forcing static on an otherwise incompatible pair accepts full
// responsibility for never emitting an incompatible message through
// the link.
func (n *Network) ConnectPoints(signal *Signal, slot *Slot, forceStatic bool) bool {
	if signal == nil || slot == nil || signal.net != n || slot.net != n {
		return false
	}

	n.mu.Lock()
	if signal.connected(slot) {
		n.mu.Unlock()
		return true
	}
	mode := DynamicCast
	if forceStatic || signal.msgType.IsSameOrSubtypeOf(slot.msgType) {
		mode = StaticCast
	}
	l := newLink(signal, slot, mode)
	signal.attach(slot, l)
	slot.attach(l)
	sigName, slotName := signal.name, slot.name
	n.mu.Unlock()

	observability.LogConnect(n.logger, sigName, slotName, l.id, mode.String())
	return true
}

// Connect resolves both names through the directories and links the
// endpoints. Unknown names make it return false.
func (n *Network) Connect(signalName, slotName string, forceStatic bool) bool {
	signal, _ := n.signals.Resolve(signalName)
	slot, _ := n.slots.Resolve(slotName)
	return n.ConnectPoints(signal, slot, forceStatic)
}

// DisconnectPoints removes the link between a signal and a slot,
// purging its pending queue entries. It returns true if a link
// existed.
func (n *Network) DisconnectPoints(signal *Signal, slot *Slot) bool {
	if signal == nil || slot == nil {
		return false
	}
	n.mu.RLock()
	l := signal.links[slot]
	n.mu.RUnlock()
	if l == nil {
		return false
	}
	l.Disconnect()
	return true
}

// Disconnect resolves both names and removes the link between them.
func (n *Network) Disconnect(signalName, slotName string) bool {
	signal, _ := n.signals.Resolve(signalName)
	slot, _ := n.slots.Resolve(slotName)
	return n.DisconnectPoints(signal, slot)
}

// IsConnectedPoints reports whether a link exists between the signal
// and the slot.
func (n *Network) IsConnectedPoints(signal *Signal, slot *Slot) bool {
	if signal == nil || slot == nil {
		return false
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	return signal.connected(slot)
}

// IsConnected resolves both names and reports whether they are linked.
func (n *Network) IsConnected(signalName, slotName string) bool {
	signal, _ := n.signals.Resolve(signalName)
	slot, _ := n.slots.Resolve(slotName)
	return n.IsConnectedPoints(signal, slot)
}

// ProcessNext dispatches the oldest pending delivery, if any, and
// reports whether entries remain afterward. Called on an empty queue
// it returns false without dispatching. The typical driver loop is
//
//	for net.ProcessNext() {
//	}
//
// A handler's own errors are its own: the loop does not recover, so a
// panic propagates to the caller.
func (n *Network) ProcessNext() bool {
	return n.processNext(context.Background())
}

// Drain dispatches pending deliveries until the queue is empty and
// returns the number processed. Handlers that emit extend the drain.
func (n *Network) Drain(ctx context.Context) int {
	ctx, span := n.spans.StartDrainSpan(ctx, n.name)
	defer n.spans.EndSpanWithError(span, nil)

	count := 0
	for !n.queue.Empty() {
		n.processNext(ctx)
		count++
	}
	return count
}

func (n *Network) processNext(ctx context.Context) bool {
	e, err := n.queue.Next()
	if err != nil {
		return false
	}
	if e.Link != nil && !e.Link.severed.Load() {
		n.dispatchEntry(ctx, e)
	}
	return !n.queue.Empty()
}

// dispatchEntry is the only place slot handlers are invoked by the
// queue. No network lock is held, so a handler is free to emit or
// rewire.
func (n *Network) dispatchEntry(ctx context.Context, e Entry) {
	l := e.Link
	mode := l.mode.String()
	sigName, slotName := l.signal.Name(), l.slot.Name()

	ctx, span := n.spans.StartDispatchSpan(ctx, sigName, slotName, mode)
	defer n.spans.EndSpanWithError(span, nil)

	done := observability.TimedOperation()
	l.dispatch(e.Msg)
	n.metrics.RecordDispatch(ctx, slotName, mode, done())
}

func (n *Network) observeEmit(signal string, fanout int) {
	n.metrics.RecordEmit(context.Background(), signal, fanout)
}

func (n *Network) observeDrop(s *Slot, msg Message) {
	name := s.Name()
	observability.LogDispatchDrop(n.logger, name, typeName(msg), s.msgType.Name())
	n.metrics.RecordDrop(context.Background(), name)
}
