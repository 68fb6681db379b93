// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

// config holds pool construction settings.
type config struct {
	maxMemoryMB int
	maxFree     int
}

func defaultConfig() config {
	return config{maxMemoryMB: DefaultMaxMemoryMB, maxFree: DefaultMaxFree}
}

// Option configures a Pool.
type Option func(*config)

// WithMaxMemoryMB sets the memory budget in megabytes.
func WithMaxMemoryMB(mb int) Option {
	return func(c *config) {
		c.maxMemoryMB = mb
	}
}

// WithMaxFree sets how many released textures are kept for reuse.
func WithMaxFree(n int) Option {
	return func(c *config) {
		c.maxFree = n
	}
}
