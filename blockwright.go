// Package blockwright locates and mutates content inside CMS documents that
// are serialized in mutually incompatible formats (comment-delimited block
// trees, JSON widget trees, shortcode strings and plain markup). It also
// probes the host theme for design tokens and renderable primitives, and
// gates newly injected content behind a confidence threshold.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or serialization format (e.g., sqlite/,
// gutenberg/, elementor/).
package blockwright
