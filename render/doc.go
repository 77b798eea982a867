// Copyright 2026 The facenox Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns an editor state into pixels.
//
// A Renderer resolves image references, applies the state's color matrix,
// and strokes committed drawing paths on top using gg. It also implements
// editor.Processor, so a session can commit crops and face cut-outs
// through it:
//
//	r := render.New()
//	ref := r.Put("photo", img)
//	s := editor.NewSession(editor.NewEditState("", ref), editor.WithProcessor(r))
//
// Images produced by Crop and CutFaces are kept in memory and addressed by
// "mem://" URIs. Any other URI is read from disk through imageio.
package render
