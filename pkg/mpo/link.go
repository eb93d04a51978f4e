package mpo

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/chmike/mpo/pkg/mpo/observability"
)

// DispatchMode is the two-variant dispatch strategy of a link, chosen
// exactly once when the link is created and never re-evaluated per
// message.
type DispatchMode uint8

const (
	// StaticCast invokes the slot handler without a runtime type
	// check. Selected when the signal's declared type proves every
	// emitted message compatible, or when the wiring forced it.
	StaticCast DispatchMode = iota

	// DynamicCast checks each message's runtime type against the
	// slot's accepted type and silently drops incompatible ones.
	DynamicCast
)

// String returns "static" or "dynamic".
func (m DispatchMode) String() string {
	if m == StaticCast {
		return "static"
	}
	return "dynamic"
}

// Link binds exactly one signal to exactly one slot. Links are created
// only through the Connect operations on Network, never directly, which
// is what enforces the at-most-one-link-per-pair invariant.
//
// A link exists exactly as long as the wiring is active. Disconnect
// tears it down safely: pending queue entries are purged before the
// endpoints are unlinked, so no later dispatch can reach a dead link.
type Link struct {
	id      string
	signal  *Signal
	slot    *Slot
	mode    DispatchMode
	severed atomic.Bool
}

func newLink(signal *Signal, slot *Slot, mode DispatchMode) *Link {
	return &Link{
		id:     fmt.Sprintf("lnk-%s", uuid.New().String()[:8]),
		signal: signal,
		slot:   slot,
		mode:   mode,
	}
}

// ID returns the link's identifier, used in logs and diagnostics.
func (l *Link) ID() string { return l.id }

// Signal returns the emission endpoint of the link.
func (l *Link) Signal() *Signal { return l.signal }

// Slot returns the reception endpoint of the link.
func (l *Link) Slot() *Slot { return l.slot }

// Mode returns the dispatch strategy decided at creation.
func (l *Link) Mode() DispatchMode { return l.mode }

// dispatch invokes the slot form selected at wiring time with
// (msg, l). Called by the driver loop only.
func (l *Link) dispatch(msg Message) {
	if l.mode == StaticCast {
		l.slot.static(msg, l)
		return
	}
	l.slot.dynamic(msg, l)
}

// Disconnect tears the link down. The order is mandatory: mark the
// link severed and purge its pending queue entries first, then remove
// it from both endpoints' link sets. Disconnecting an already severed
// link is a no-op.
func (l *Link) Disconnect() {
	n := l.signal.net

	l.severed.Store(true)
	purged := n.queue.Purge(l)
	n.metrics.RecordPurge(context.Background(), purged)

	n.mu.Lock()
	if l.signal.links[l.slot] == l {
		l.signal.detach(l.slot)
	}
	l.slot.detach(l)
	sigName, slotName := l.signal.name, l.slot.name
	n.mu.Unlock()

	observability.LogDisconnect(n.logger, sigName, slotName, l.id, purged)
}
