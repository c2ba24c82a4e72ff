package mock

import "github.com/fwojciec/blockwright"

var _ blockwright.ThemeConfig = (*ThemeConfig)(nil)

// ThemeConfig is a mock implementation of blockwright.ThemeConfig.
type ThemeConfig struct {
	LookupFn func(path ...string) (any, bool)
}

func (c *ThemeConfig) Lookup(path ...string) (any, bool) {
	return c.LookupFn(path...)
}

var _ blockwright.PrimitiveRegistry = (*PrimitiveRegistry)(nil)

// PrimitiveRegistry is a mock implementation of blockwright.PrimitiveRegistry.
type PrimitiveRegistry struct {
	IsPrimitiveRegisteredFn func(name string) bool
}

func (r *PrimitiveRegistry) IsPrimitiveRegistered(name string) bool {
	return r.IsPrimitiveRegisteredFn(name)
}
