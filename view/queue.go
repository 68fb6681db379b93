// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"cmp"
	"slices"
)

// SortMode orders a render queue.
type SortMode uint8

const (
	// SortFrontToBack draws near elements first, grouped by material.
	SortFrontToBack SortMode = iota

	// SortBackToFront draws far elements first, as blending requires.
	SortBackToFront
)

// RenderQueueElement is one sorted draw of a render element pass.
type RenderQueueElement struct {
	Element   *RenderElement
	Technique int
	Pass      int
	Distance  float32

	// ApplyPass is set when the pipeline state differs from the previous
	// element and must be rebound.
	ApplyPass bool
}

// RenderQueue is a sorted list of draws.
type RenderQueue struct {
	mode     SortMode
	elements []RenderQueueElement
}

// NewRenderQueue creates an empty queue sorted by mode.
func NewRenderQueue(mode SortMode) *RenderQueue {
	return &RenderQueue{mode: mode}
}

// Add queues every pass of the element's technique at distance. Elements
// without a material panic.
func (q *RenderQueue) Add(e *RenderElement, distance float32) {
	if e.Material == nil {
		panic("view: render element has no material")
	}
	passes := 1
	if e.Material.TechniqueCount() > e.Technique {
		passes = e.Material.PassCount(e.Technique)
	}
	for p := 0; p < passes; p++ {
		q.elements = append(q.elements, RenderQueueElement{
			Element:   e,
			Technique: e.Technique,
			Pass:      p,
			Distance:  distance,
		})
	}
}

// Sort orders the queue and recomputes ApplyPass flags.
func (q *RenderQueue) Sort() {
	slices.SortStableFunc(q.elements, func(a, b RenderQueueElement) int {
		if q.mode == SortBackToFront {
			return cmp.Compare(b.Distance, a.Distance)
		}
		if c := cmp.Compare(a.Element.Material.Name(), b.Element.Material.Name()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Pass, b.Pass); c != 0 {
			return c
		}
		return cmp.Compare(a.Distance, b.Distance)
	})

	for i := range q.elements {
		if i == 0 {
			q.elements[i].ApplyPass = true
			continue
		}
		prev, cur := q.elements[i-1], q.elements[i]
		q.elements[i].ApplyPass = prev.Element.Material != cur.Element.Material ||
			prev.Technique != cur.Technique || prev.Pass != cur.Pass
	}
}

// Elements returns the queued draws in order.
func (q *RenderQueue) Elements() []RenderQueueElement { return q.elements }

// Len returns the number of queued draws.
func (q *RenderQueue) Len() int { return len(q.elements) }

// Clear empties the queue.
func (q *RenderQueue) Clear() { q.elements = q.elements[:0] }
