package mpo

// Message is implemented by every payload routed through a Network.
//
// A message may be held simultaneously by the caller that created it,
// by any number of pending queue entries, and by the handler currently
// executing; the garbage collector keeps it alive until the last holder
// lets go. Messages carry no routing state: the same message value can
// be emitted on several signals, re-emitted from inside a handler, or
// delivered directly to a slot with Invoke.
//
// Type must return the message's TypeDef, the runtime tag used by the
// dynamic dispatch path and by wiring-time compatibility checks:
//
//	var BallType = mpo.NewTypeDef("Ball", mpo.MessageType)
//
//	type Ball struct {
//	    Count int
//	}
//
//	func (*Ball) Type() *mpo.TypeDef { return BallType }
type Message interface {
	Type() *TypeDef
}
