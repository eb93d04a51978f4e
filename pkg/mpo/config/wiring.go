package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LinkSpec describes one wiring: a qualified signal name, a qualified
// slot name, and whether the static dispatch path is forced.
type LinkSpec struct {
	From   string `yaml:"from" json:"from"`
	To     string `yaml:"to" json:"to"`
	Static bool   `yaml:"static,omitempty" json:"static,omitempty"`
}

// Wiring is a declarative list of links between named endpoints. It is
// the unit loaded from configuration files and applied to a network,
// and the unit a network exports when its live topology is
// snapshotted.
type Wiring struct {
	Links []LinkSpec `yaml:"links" json:"links"`
}

// Validate checks that every link names both endpoints.
func (w Wiring) Validate() error {
	for i, l := range w.Links {
		if l.From == "" || l.To == "" {
			return fmt.Errorf("wiring link %d: from and to are required", i)
		}
	}
	return nil
}

// WiringFromFile loads a wiring description from a file, auto-detecting
// format by extension. Supported extensions: .yaml, .yml, .json
func WiringFromFile(path string) (Wiring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Wiring{}, fmt.Errorf("read wiring file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return WiringFromYAML(data)
	case ".json":
		return WiringFromJSON(data)
	default:
		return Wiring{}, fmt.Errorf("unsupported wiring file extension: %s", filepath.Ext(path))
	}
}

// WiringFromYAML parses a YAML wiring description.
func WiringFromYAML(data []byte) (Wiring, error) {
	var w Wiring
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Wiring{}, fmt.Errorf("parse wiring yaml: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Wiring{}, err
	}
	return w, nil
}

// WiringFromJSON parses a JSON wiring description.
func WiringFromJSON(data []byte) (Wiring, error) {
	var w Wiring
	if err := json.Unmarshal(data, &w); err != nil {
		return Wiring{}, fmt.Errorf("parse wiring json: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Wiring{}, err
	}
	return w, nil
}
