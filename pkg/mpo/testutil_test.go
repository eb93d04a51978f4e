package mpo_test

import (
	"github.com/chmike/mpo/pkg/mpo"
)

// Test type hierarchy: MsgB is a subtype of MsgA, both descend from the
// Message root. Non-leaf levels are modeled as interfaces so that a Go
// value of a subtype satisfies the supertype's handler signature, the
// same way the descriptor chain declares it.
var (
	msgAType = mpo.NewTypeDef("MsgA", mpo.MessageType)
	msgBType = mpo.NewTypeDef("MsgB", msgAType)
	ballType = mpo.NewTypeDef("Ball", mpo.MessageType)
)

type msgA interface {
	mpo.Message
	isMsgA()
}

type msgAVal struct{}

func (*msgAVal) Type() *mpo.TypeDef { return msgAType }
func (*msgAVal) isMsgA()            {}

type msgBVal struct{}

func (*msgBVal) Type() *mpo.TypeDef { return msgBType }
func (*msgBVal) isMsgA()            {}

// ball mirrors the ping-pong exchange payload: counters shared by both
// sides of the rally.
type ball struct {
	PingCnt  int
	PongCnt  int
	TotCount int
	MaxCount int
}

func (*ball) Type() *mpo.TypeDef { return ballType }

// ping re-emits the ball until the total count reaches the maximum.
type ping struct {
	input  *mpo.Slot
	output *mpo.Signal
}

func newPing(net *mpo.Network, name string) (*ping, error) {
	a, err := mpo.NewAction(net, name, mpo.ActionType)
	if err != nil {
		return nil, err
	}
	p := &ping{}
	p.output = a.AddSignal("output", mpo.NewSignal(net, ballType))
	p.input = a.AddSlot("input", mpo.NewSlot(net, ballType, p.receive))
	return p, nil
}

func (p *ping) start(b *ball, maxCount int) {
	b.MaxCount = maxCount
	b.PingCnt, b.PongCnt, b.TotCount = 0, 0, 0
	p.receive(b, nil)
}

func (p *ping) receive(b *ball, _ *mpo.Link) {
	b.PingCnt++
	if b.TotCount < b.MaxCount {
		b.TotCount++
		p.output.Emit(b)
	}
}

// pong bounces the ball back while the rally is still running.
type pong struct {
	input  *mpo.Slot
	output *mpo.Signal
}

func newPong(net *mpo.Network, name string) (*pong, error) {
	a, err := mpo.NewAction(net, name, mpo.ActionType)
	if err != nil {
		return nil, err
	}
	p := &pong{}
	p.output = a.AddSignal("output", mpo.NewSignal(net, ballType))
	p.input = a.AddSlot("input", mpo.NewSlot(net, ballType, p.receive))
	return p, nil
}

func (p *pong) receive(b *ball, _ *mpo.Link) {
	b.PongCnt++
	if b.TotCount < b.MaxCount {
		p.output.Emit(b)
	}
}
