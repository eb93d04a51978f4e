package mpo

import "sync"

// Entry is a pending delivery: a message paired with the link it must
// traverse. A nil link is permitted and silently discarded on dispatch;
// it represents a link removed after enqueue but before a purge, a path
// that is unreachable under correct teardown and kept only as a
// defensive no-op.
type Entry struct {
	Msg  Message
	Link *Link
}

// Queue is the FIFO of pending deliveries shared by every signal and
// link of a Network. Entries are appended on emission and removed
// either by the driver loop or by Purge when a link is torn down.
//
// The queue serializes its own mutation so that emission from multiple
// goroutines is safe, but delivery order guarantees only hold for the
// cooperative single-driver model: first emitted, first dispatched.
type Queue struct {
	mu      sync.Mutex
	entries []Entry
	notify  func()
}

// NewQueue creates an empty dispatch queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends an entry at the recent end of the queue and fires the
// queuing notifier, if one is set, once per entry.
func (q *Queue) Add(e Entry) {
	q.mu.Lock()
	q.entries = append(q.entries, e)
	notify := q.notify
	q.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Next removes and returns the oldest entry. It fails with
// ErrQueueEmpty when the queue is empty; callers are expected to guard
// with Empty or to drive through Network.ProcessNext instead.
func (q *Queue) Next() (Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return Entry{}, ErrQueueEmpty
	}
	e := q.entries[0]
	q.entries[0] = Entry{} // release references held by the slot
	q.entries = q.entries[1:]
	return e, nil
}

// Purge removes every pending entry that references the given link.
// Link teardown calls it before unlinking the endpoints so that no
// later dispatch can touch a severed link. It returns the number of
// entries removed.
func (q *Queue) Purge(link *Link) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.Link != link {
			kept = append(kept, e)
		}
	}
	removed := len(q.entries) - len(kept)
	for i := len(kept); i < len(q.entries); i++ {
		q.entries[i] = Entry{}
	}
	q.entries = kept
	return removed
}

// SetNotifier installs the callback invoked once per enqueued entry,
// replacing any previous one. Passing nil clears it. The notifier is
// typically used to wake a driver loop.
func (q *Queue) SetNotifier(fn func()) {
	q.mu.Lock()
	q.notify = fn
	q.mu.Unlock()
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Empty reports whether the queue holds no pending entries.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}
