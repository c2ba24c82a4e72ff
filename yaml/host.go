// Package yaml loads host description files.
//
// A host file names the active theme, lists the content primitives the host
// can render and carries the structured theme configuration tree. JSON is a
// subset of YAML, so a theme.json style file loads unchanged.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/blockwright"
	"gopkg.in/yaml.v3"
)

// Ensure Host implements the capability interfaces.
var (
	_ blockwright.ThemeConfig       = (*Host)(nil)
	_ blockwright.PrimitiveRegistry = (*Host)(nil)
)

// Host is a parsed host description.
type Host struct {
	Theme      blockwright.ThemeIdentity `yaml:"theme"`
	Primitives []string                  `yaml:"primitives"`
	Config     map[string]any            `yaml:"config"`

	registered map[string]struct{}
}

// LoadFile reads and parses the host file at path.
func LoadFile(path string) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host file: %w", err)
	}
	return Parse(data)
}

// Decode parses a host description from r.
func Decode(r io.Reader) (*Host, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read host file: %w", err)
	}
	return Parse(data)
}

// Parse parses a host description. Unknown top-level keys are rejected.
func Parse(data []byte) (*Host, error) {
	var h Host
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&h); err != nil && !errors.Is(err, io.EOF) {
			return nil, blockwright.Errorf(blockwright.EINVALID, "invalid host file: %v", err)
		}
	}
	h.registered = make(map[string]struct{}, len(h.Primitives))
	for i, name := range h.Primitives {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, blockwright.Errorf(blockwright.EINVALID, "primitives[%d]: empty name", i)
		}
		h.registered[name] = struct{}{}
	}
	return &h, nil
}

// IsPrimitiveRegistered reports whether the host lists the named primitive.
func (h *Host) IsPrimitiveRegistered(name string) bool {
	_, ok := h.registered[name]
	return ok
}

// Lookup returns the config value at the nested key path. Intermediate
// values must be mappings; an empty path never matches.
func (h *Host) Lookup(path ...string) (any, bool) {
	if len(path) == 0 || h.Config == nil {
		return nil, false
	}
	var cur any = h.Config
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// ThemeConfig returns h as a ThemeConfig, or nil when the file declares no
// config tree.
func (h *Host) ThemeConfig() blockwright.ThemeConfig {
	if len(h.Config) == 0 {
		return nil
	}
	return h
}
