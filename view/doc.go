// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package view holds the per-view and per-scene state the compositor reads:
// target description, render settings, render options, visibility and the
// sorted draw queues.
//
// A View is prepared once per frame before the compositor executes:
//
//	v := view.New("main", props, view.DefaultRenderSettings())
//	v.UpdateTransforms(viewMat, projMat)
//	v.UpdateVisibility(scene)
//	v.PrepareQueues(scene)
package view
