package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/theme"
)

// Run executes the fingerprint command.
func (c *FingerprintCmd) Run(deps *Dependencies) error {
	p := theme.NewFingerprinter(deps.Host.Theme, deps.Host.ThemeConfig()).Fingerprint()

	fmt.Fprintf(deps.Stdout, "theme: %s (confidence %.2f)\n", p.Theme, p.Confidence)
	for _, tok := range p.Tokens {
		fmt.Fprintf(deps.Stdout, "%-10s  %-14s  %-9s  %s\n", tok.Category, tok.Name, tok.Source, tok.Value)
	}
	return nil
}

// Run executes the components command.
func (c *ComponentsCmd) Run(deps *Dependencies) error {
	caps := theme.NewComponentMapper(deps.Host).Discover()

	primitives := make([]blockwright.Primitive, 0, len(caps.Capabilities))
	for p := range caps.Capabilities {
		primitives = append(primitives, p)
	}
	slices.Sort(primitives)

	for _, p := range primitives {
		capability := caps.Capabilities[p]
		block := capability.Block
		if capability.Alternate != "" {
			block = capability.Alternate + " (fallback " + capability.Block + ")"
		}
		fmt.Fprintf(deps.Stdout, "%-12s  %.2f  %s\n", p, capability.Confidence, block)
	}
	return nil
}
