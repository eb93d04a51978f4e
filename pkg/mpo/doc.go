/*
Package mpo provides typed, name-addressable in-process message routing.

# Overview

mpo ("message passing objects") lets independently written components
expose named emission points (signals) and reception points (slots),
wires them together at run time using string names, and delivers typed
messages between them through a deferred, single-driver dispatch queue.
Because wiring is addressed by name, the topology of an application can
live in a configuration file instead of source code.

The model is deliberately small:

  - TypeDef: an immutable, string-named type hierarchy used for all
    runtime compatibility decisions.
  - Message: the payload interface; any value with a TypeDef.
  - Signal: a named, typed source fanning messages out to its links.
  - Slot: a named, typed sink permanently bound to one handler.
  - Link: the only object that may bind a signal to a slot; it owns
    the static-vs-dynamic dispatch decision and safe teardown.
  - Queue: the FIFO of pending (message, link) deliveries.
  - Network: the explicit context object owning the queue, the name
    directories, and the action map.

# Basic Usage

Define a message type, build components with typed endpoints, wire them
by name, then drain the queue:

	var BallType = mpo.NewTypeDef("Ball", mpo.MessageType)

	type Ball struct{ Count int }

	func (*Ball) Type() *mpo.TypeDef { return BallType }

	func main() {
	    net := mpo.NewNetwork()

	    out := mpo.NewSignal(net, BallType)
	    out.SetName("Ping::output")

	    in := mpo.NewSlot(net, BallType, func(b *Ball, _ *mpo.Link) {
	        b.Count++
	    })
	    in.SetName("Pong::input")

	    net.Connect("Ping::output", "Pong::input", false)

	    out.Emit(&Ball{})
	    for net.ProcessNext() {
	    }
	}

# Dispatch strategy

When a link is created the network decides once which of the slot's two
callable forms it will use: the static form when the signal's declared
type proves every message compatible (or when the caller forces it),
and the dynamic form otherwise. The dynamic form checks each message's
runtime TypeDef against the slot's accepted type and silently drops
incompatible messages. Forcing the static path on an incompatible pair
makes any violation the caller's problem; the handler boundary is
deliberately unguarded there.

# Teardown safety

Disconnecting a link first purges every pending queue entry that
references it and only then unlinks the endpoints, so no dispatch can
ever reach a dead link. Closing a signal, slot, or action tears down
all of its links the same way.

# Configuration-driven wiring

The config package loads (from, to, static) link lists from YAML or
JSON; Network.ApplyWiring applies them and Network.SnapshotWiring
exports the live topology back. The store package persists named
snapshots in memory or SQLite.
*/
package mpo
