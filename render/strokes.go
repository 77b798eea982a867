// Copyright 2026 The facenox Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/draw"

	"github.com/gogpu/gg"

	editor "github.com/facenox/editor"
)

// DrawPaths strokes paths onto img in order with round caps and joins.
// Each path keeps the color and width it was committed with.
func DrawPaths(img *image.NRGBA, paths []editor.DrawingPath) error {
	if len(paths) == 0 {
		return nil
	}

	dc := gg.NewContextForImage(img)
	defer func() { _ = dc.Close() }()

	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, p := range paths {
		if len(p.Points) < 2 {
			continue
		}
		dc.SetRGBA(p.Color.R, p.Color.G, p.Color.B, p.Color.A)
		dc.SetLineWidth(p.StrokeWidth)
		dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		if err := dc.Stroke(); err != nil {
			return err
		}
	}

	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return nil
}
