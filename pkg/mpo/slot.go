package mpo

// Handler is the erased form of a slot's bound handler. The link
// argument identifies the connection the message traversed; it is nil
// when the slot is invoked directly, bypassing the queue.
type Handler func(msg Message, link *Link)

// Slot is a named, typed reception point permanently bound to one
// handler. Two callable forms are derived from the bound handler at
// construction: a dynamic form that checks the message's runtime type
// against the accepted type and silently drops incompatible messages,
// and a static form that trusts a wiring-time compatibility proof and
// invokes the handler without any check.
//
// Which form a delivery uses is decided once, when the link is created,
// never per message.
type Slot struct {
	net     *Network
	name    string
	msgType *TypeDef
	static  Handler
	dynamic Handler
	links   map[*Link]struct{}
}

// NewSlot creates a slot accepting messages of the given type, bound to
// fn for its entire lifetime. The handler closure typically captures
// the owning action so that it can be invoked later with only the
// message and link:
//
//	p := &Pong{}
//	in := mpo.NewSlot(net, BallType, p.receive)
//
// Under the static form an incompatible message reaches the type
// assertion unguarded and panics; that path is only selected when the
// wiring proved compatibility, or when the caller forced it and took
// responsibility for never emitting an incompatible message.
func NewSlot[T Message](n *Network, accepts *TypeDef, fn func(T, *Link)) *Slot {
	s := &Slot{
		net:     n,
		msgType: accepts,
		links:   make(map[*Link]struct{}),
	}
	s.static = func(msg Message, link *Link) {
		fn(msg.(T), link)
	}
	s.dynamic = func(msg Message, link *Link) {
		if msg == nil || !msg.Type().IsSameOrSubtypeOf(accepts) {
			s.net.observeDrop(s, msg)
			return
		}
		m, ok := msg.(T)
		if !ok {
			// Descriptor chain matched but the Go type did not:
			// the descriptors are registered inconsistently.
			s.net.observeDrop(s, msg)
			return
		}
		fn(m, link)
	}
	return s
}

// MessageType returns the type of messages the slot accepts.
func (s *Slot) MessageType() *TypeDef { return s.msgType }

// Name returns the slot's registered name, or "" if none.
func (s *Slot) Name() string {
	s.net.mu.RLock()
	defer s.net.mu.RUnlock()
	return s.name
}

// SetName registers the slot in the network's slot directory under the
// given name, replacing any previous registration. An empty name just
// clears the entry.
func (s *Slot) SetName(name string) {
	s.net.mu.Lock()
	old := s.name
	s.name = name
	s.net.mu.Unlock()

	s.net.slots.Unregister(old)
	if name != "" {
		s.net.slots.Register(name, s)
	}
}

// UnregisterName removes the slot from the slot directory and clears
// its name.
func (s *Slot) UnregisterName() {
	s.SetName("")
}

// Links returns the links currently attached to the slot.
func (s *Slot) Links() []*Link {
	s.net.mu.RLock()
	defer s.net.mu.RUnlock()
	links := make([]*Link, 0, len(s.links))
	for l := range s.links {
		links = append(links, l)
	}
	return links
}

// Invoke delivers a message to the slot synchronously through the
// dynamic form, bypassing the queue. The handler sees a nil link. This
// is the intended path for unit testing a single receiver.
func (s *Slot) Invoke(msg Message) {
	s.dynamic(msg, nil)
}

// Close disconnects every link still attached to the slot and removes
// its directory entry. Pending queue entries for those links are purged
// before the links are unlinked.
func (s *Slot) Close() {
	for _, l := range s.Links() {
		l.Disconnect()
	}
	s.UnregisterName()
}

// attach and detach are called by link wiring only; user code never
// mutates the link set directly. Callers hold the network lock.

func (s *Slot) attach(l *Link) {
	s.links[l] = struct{}{}
}

func (s *Slot) detach(l *Link) {
	delete(s.links, l)
}
