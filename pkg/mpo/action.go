package mpo

import (
	"fmt"
	"sync"

	"github.com/chmike/mpo/pkg/mpo/directory"
	"github.com/chmike/mpo/pkg/mpo/observability"
)

// Action is the naming glue for an owning component: it gives the
// component a unique, human-readable name and registers the component's
// endpoints under qualified names such as "Ping::output", so that
// wiring can be expressed entirely in configuration.
//
// The routing core itself never depends on actions; endpoints work the
// same whether or not an action named them.
type Action struct {
	net  *Network
	name string
	typ  *TypeDef

	mu      sync.Mutex
	signals []*Signal
	slots   []*Slot
}

// NewAction registers an action under a unique name. A duplicate name
// is a configuration mistake and fails with an explicit error, unlike
// endpoint names which simply re-register.
func NewAction(n *Network, name string, typ *TypeDef) (*Action, error) {
	if name == "" {
		return nil, fmt.Errorf("mpo: action name is required")
	}
	a := &Action{net: n, name: name, typ: typ}
	if !n.actions.RegisterNew(name, a) {
		return nil, fmt.Errorf("mpo: duplicate action name %q", name)
	}
	typName := ""
	if typ != nil {
		typName = typ.Name()
	}
	observability.LogActionRegistered(n.logger, name, typName)
	return a, nil
}

// Name returns the action's unique name.
func (a *Action) Name() string { return a.name }

// Type returns the action's type descriptor, or nil if none was given.
func (a *Action) Type() *TypeDef { return a.typ }

// AddSignal registers a signal under the qualified name
// "<action>::<localName>" and ties its lifetime to the action.
func (a *Action) AddSignal(localName string, s *Signal) *Signal {
	s.SetName(directory.Qualify(a.name, localName))
	a.mu.Lock()
	a.signals = append(a.signals, s)
	a.mu.Unlock()
	return s
}

// AddSlot registers a slot under the qualified name
// "<action>::<localName>" and ties its lifetime to the action.
func (a *Action) AddSlot(localName string, s *Slot) *Slot {
	s.SetName(directory.Qualify(a.name, localName))
	a.mu.Lock()
	a.slots = append(a.slots, s)
	a.mu.Unlock()
	return s
}

// Close disconnects and unregisters every endpoint the action owns,
// then removes the action from the network's action map.
func (a *Action) Close() {
	a.mu.Lock()
	signals := a.signals
	slots := a.slots
	a.signals, a.slots = nil, nil
	a.mu.Unlock()

	for _, s := range signals {
		s.Close()
	}
	for _, s := range slots {
		s.Close()
	}
	a.net.actions.Unregister(a.name)
}

// LookupAction resolves an action name through the action map.
func (n *Network) LookupAction(name string) (*Action, bool) {
	return n.actions.Resolve(name)
}

// RemoveAction closes and unregisters the named action. It returns
// false if no action is registered under that name.
func (n *Network) RemoveAction(name string) bool {
	a, ok := n.actions.Resolve(name)
	if !ok {
		return false
	}
	a.Close()
	return true
}

// ClearActions closes and unregisters every action.
func (n *Network) ClearActions() {
	for _, a := range n.actions.Snapshot() {
		a.Close()
	}
}

// Actions returns the names of all registered actions.
func (n *Network) Actions() []string {
	return n.actions.Names()
}
