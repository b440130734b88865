// Package template defines recipe-card print templates and the operations that
// edit them.
//
// A [Template] is a named layout for one [PrintSize]. It owns a list of
// [Section] values, each a rectangle in card space (percent of the printable
// area, see package geometry) with a [SectionType] that decides which part of a
// recipe it shows.
//
// # Value Semantics
//
// Templates are values. Every edit ([AddSection], [UpdateSection],
// [RemoveSection], [Rename], ...) returns a new Template and never modifies its
// input, including the input's Sections backing array. Callers decide what to
// keep and hand it to a store for persistence.
//
// # Boundary Constraint
//
// Every section produced by this package passes through [Clamp], which keeps
// it inside the card:
//
//	0 ≤ x,  0 ≤ y,  x + width ≤ 100,  y + height ≤ 100,  width, height ≥ 1
//
// Clamping is total and idempotent; out-of-bounds input is corrected, never
// rejected.
//
// # Default Templates
//
// [Defaults] returns one system template per print size. Default templates are
// marked IsDefault and must never be deleted; the store package enforces this.
package template
