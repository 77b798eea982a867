// Copyright 2026 The facenox Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	editor "github.com/facenox/editor"
)

// Crop copies rect out of the referenced image. The rectangle is clipped
// to the image bounds; ErrInvalidRect is returned when nothing remains.
func (r *Renderer) Crop(ctx context.Context, ref editor.ImageRef, rect editor.Rect) (editor.ImageRef, error) {
	src, err := r.Load(ctx, ref)
	if err != nil {
		return editor.ImageRef{}, err
	}

	area, ok := PixelRect(src.Bounds(), rect)
	if !ok {
		return editor.ImageRef{}, fmt.Errorf("render: crop %v: %w", rect, ErrInvalidRect)
	}

	out := image.NewNRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Copy(out, image.Point{}, src, area, draw.Src, nil)

	cropped := r.store("crop", out)
	r.logger.Info("crop committed", "source", ref.URI, "result", cropped.URI,
		"width", cropped.Width, "height", cropped.Height)
	return cropped, nil
}

// CutFaces keeps only the pixels inside the face rectangles; everything
// else becomes transparent. The result has the source dimensions.
func (r *Renderer) CutFaces(ctx context.Context, ref editor.ImageRef, faces []editor.Face) (editor.ImageRef, error) {
	src, err := r.Load(ctx, ref)
	if err != nil {
		return editor.ImageRef{}, err
	}

	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	kept := 0
	for _, f := range faces {
		if err := ctx.Err(); err != nil {
			return editor.ImageRef{}, err
		}
		area, ok := PixelRect(b, f.Rect)
		if !ok {
			continue
		}
		draw.Copy(out, area.Min.Sub(b.Min), src, area, draw.Src, nil)
		kept++
	}
	if kept == 0 {
		return editor.ImageRef{}, fmt.Errorf("render: cut faces: %w", ErrInvalidRect)
	}

	cut := r.store("faces", out)
	r.logger.Info("faces cut", "source", ref.URI, "result", cut.URI, "faces", kept)
	return cut, nil
}

// Thumbnail scales img so that its longer side is at most maxSide pixels.
// Smaller images are returned as an NRGBA copy at their original size.
func Thumbnail(img image.Image, maxSide int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return ToNRGBA(img)
	}

	scale := float64(maxSide) / float64(max(w, h))
	tw := max(1, int(math.Round(float64(w)*scale)))
	th := max(1, int(math.Round(float64(h)*scale)))

	out := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// PixelRect converts r (relative to the image origin) to pixel bounds
// clipped to b. Fractional edges round outwards. The result is false when
// nothing of r lies inside b.
func PixelRect(b image.Rectangle, r editor.Rect) (image.Rectangle, bool) {
	if r.Empty() {
		return image.Rectangle{}, false
	}
	px := image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	).Add(b.Min).Intersect(b)
	return px, !px.Empty()
}
