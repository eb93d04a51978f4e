// Package config loads application and wiring configuration for mpo
// networks from YAML or JSON.
//
// It provides two things: a map-backed Config with type-safe accessors
// for configuring actions, and the Wiring/LinkSpec types that express
// the network topology as (from, to) pairs of qualified endpoint
// names. Expressing wiring in data rather than code is the point of
// name-addressable endpoints: the same binaries can be rewired by
// editing a file.
//
//	links:
//	  - from: Ping::output
//	    to: Pong::input
//	  - from: Pong::output
//	    to: Ping::input
//	    static: true
//
// A loaded Wiring is applied with Network.ApplyWiring and a live
// topology exported with Network.SnapshotWiring.
package config
