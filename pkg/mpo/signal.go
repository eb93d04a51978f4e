package mpo

import "github.com/chmike/mpo/pkg/mpo/observability"

// Signal is a named, typed emission point. Emitting a message appends
// one queue entry per attached link; nothing is dispatched
// synchronously, so a handler that emits can never recurse, only grow
// the queue.
//
// At most one link may exist between a given signal and slot at a time.
// Links are attached and detached exclusively by the wiring operations
// on Network.
type Signal struct {
	net     *Network
	name    string
	msgType *TypeDef
	links   map[*Slot]*Link
}

// NewSignal creates a signal emitting messages of the given type.
func NewSignal(n *Network, emits *TypeDef) *Signal {
	return &Signal{
		net:     n,
		msgType: emits,
		links:   make(map[*Slot]*Link),
	}
}

// MessageType returns the type of messages the signal emits.
func (s *Signal) MessageType() *TypeDef { return s.msgType }

// Name returns the signal's registered name, or "" if none.
func (s *Signal) Name() string {
	s.net.mu.RLock()
	defer s.net.mu.RUnlock()
	return s.name
}

// SetName registers the signal in the network's signal directory under
// the given name, replacing any previous registration. An empty name
// just clears the entry.
func (s *Signal) SetName(name string) {
	s.net.mu.Lock()
	old := s.name
	s.name = name
	s.net.mu.Unlock()

	s.net.signals.Unregister(old)
	if name != "" {
		s.net.signals.Register(name, s)
	}
}

// UnregisterName removes the signal from the signal directory and
// clears its name.
func (s *Signal) UnregisterName() {
	s.SetName("")
}

// Links returns the links currently attached to the signal.
func (s *Signal) Links() []*Link {
	s.net.mu.RLock()
	defer s.net.mu.RUnlock()
	links := make([]*Link, 0, len(s.links))
	for _, l := range s.links {
		links = append(links, l)
	}
	return links
}

// Emit fans msg out to every attached link: one queue entry per link,
// each firing the queuing notifier. With no links attached the call is
// a no-op; the message stays with the caller. The caller must ensure
// msg's runtime type is the signal's declared type or a subtype of it.
func (s *Signal) Emit(msg Message) {
	s.net.mu.RLock()
	if len(s.links) == 0 {
		s.net.mu.RUnlock()
		return
	}
	name := s.name
	links := make([]*Link, 0, len(s.links))
	for _, l := range s.links {
		links = append(links, l)
	}
	s.net.mu.RUnlock()

	for _, l := range links {
		s.net.queue.Add(Entry{Msg: msg, Link: l})
	}
	observability.LogEmit(s.net.logger, name, typeName(msg), len(links))
	s.net.observeEmit(name, len(links))
}

// Close disconnects every link still attached to the signal and
// removes its directory entry.
func (s *Signal) Close() {
	for _, l := range s.Links() {
		l.Disconnect()
	}
	s.UnregisterName()
}

// connected reports whether a link to the slot exists. Callers hold the
// network lock.
func (s *Signal) connected(slot *Slot) bool {
	_, ok := s.links[slot]
	return ok
}

// attach and detach are called by link wiring only. Callers hold the
// network lock.

func (s *Signal) attach(slot *Slot, l *Link) {
	s.links[slot] = l
}

func (s *Signal) detach(slot *Slot) {
	delete(s.links, slot)
}

func typeName(msg Message) string {
	if msg == nil || msg.Type() == nil {
		return ""
	}
	return msg.Type().Name()
}
