// Copyright 2026 The facenox Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	editor "github.com/facenox/editor"
	"github.com/facenox/editor/internal/workers"
)

// ApplyColorMatrix transforms every pixel of img in place. Pixels are
// straight alpha, matching the matrix coefficients.
func ApplyColorMatrix(img *image.NRGBA, m editor.ColorMatrix) {
	if img == nil || m.IsIdentity() {
		return
	}
	b := img.Bounds()
	applyRows(img, m, b.Min.Y, b.Max.Y)
}

// applyColorMatrix is ApplyColorMatrix split into row bands on pool.
func applyColorMatrix(pool *workers.Pool, img *image.NRGBA, m editor.ColorMatrix) {
	if pool == nil {
		ApplyColorMatrix(img, m)
		return
	}
	if img == nil || m.IsIdentity() {
		return
	}

	b := img.Bounds()
	bands := workers.Bands(b.Dy(), pool.Workers()*2)
	jobs := make([]func(), len(bands))
	for i, band := range bands {
		jobs[i] = func() {
			applyRows(img, m, b.Min.Y+band.Y0, b.Min.Y+band.Y1)
		}
	}
	pool.Do(jobs)
}

func applyRows(img *image.NRGBA, m editor.ColorMatrix, y0, y1 int) {
	b := img.Bounds()
	for y := y0; y < y1; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			px := row[x*4 : x*4+4 : x*4+4]

			r, g, bl, a := m.Transform(
				float32(px[0]),
				float32(px[1]),
				float32(px[2]),
				float32(px[3]),
			)

			px[0] = clampByte(r)
			px[1] = clampByte(g)
			px[2] = clampByte(bl)
			px[3] = clampByte(a)
		}
	}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
