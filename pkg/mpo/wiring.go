package mpo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chmike/mpo/pkg/mpo/config"
)

// ApplyWiring connects every link of a wiring description, resolving
// names through the directories. Pairs that are already linked are
// left untouched. It returns a joined error naming every pair that
// could not be resolved; links before and after a failing one are
// still applied.
func (n *Network) ApplyWiring(w config.Wiring) error {
	var errs []error
	for _, l := range w.Links {
		if !n.Connect(l.From, l.To, l.Static) {
			errs = append(errs, fmt.Errorf("mpo: cannot wire %q -> %q: unknown endpoint", l.From, l.To))
		}
	}
	return errors.Join(errs...)
}

// SnapshotWiring exports the network's live topology as a wiring
// description, sorted by (from, to) for stable output. Only links
// whose endpoints both carry names are exported, since anything else
// cannot be re-applied by name. Links using the static path are
// exported with Static set, which re-applies to the same dispatch
// decision whether the path was forced or derived.
func (n *Network) SnapshotWiring() config.Wiring {
	var w config.Wiring

	n.mu.RLock()
	for _, sig := range n.signals.Snapshot() {
		for slot, link := range sig.links {
			if sig.name == "" || slot.name == "" {
				continue
			}
			w.Links = append(w.Links, config.LinkSpec{
				From:   sig.name,
				To:     slot.name,
				Static: link.mode == StaticCast,
			})
		}
	}
	n.mu.RUnlock()

	sort.Slice(w.Links, func(i, j int) bool {
		if w.Links[i].From != w.Links[j].From {
			return w.Links[i].From < w.Links[j].From
		}
		return w.Links[i].To < w.Links[j].To
	})
	return w
}
