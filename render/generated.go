// seehuhn.de/go/marker - a freehand marker stroke engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package render

import (
	"image"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"
)

// Generated is the result of rendering a piece of content. The concrete
// types are Full and Partial.
type Generated interface {
	// Patches returns the rendered images.
	Patches() []*Image

	isGenerated()
}

// Full holds images which cover the whole content.
type Full struct {
	Images []*Image
}

// Partial holds images which cover only the part of the content inside
// Viewport. The images must be regenerated when the viewport moves.
type Partial struct {
	Images   []*Image
	Viewport rect.Rect
}

func (g Full) Patches() []*Image    { return g.Images }
func (g Partial) Patches() []*Image { return g.Images }

func (Full) isGenerated()    {}
func (Partial) isGenerated() {}

// Draw composites images onto dst, using the Porter-Duff "over" operator.
// The top-left pixel of dst shows the point (viewport.LLx, viewport.LLy)
// and one document unit covers scale pixels. Images rendered at a different
// scale are resampled.
func Draw(dst *image.RGBA, viewport rect.Rect, scale float64, images ...*Image) {
	origin := image.Point{
		X: int(viewport.LLx*scale + 0.5),
		Y: int(viewport.LLy*scale + 0.5),
	}
	shift := dst.Bounds().Min.Sub(origin)

	for _, img := range images {
		if img == nil || img.Pixels == nil {
			continue
		}
		src := img.Pixels.Bounds()
		if img.Scale == scale {
			draw.Copy(dst, src.Min.Add(shift), img.Pixels, src, draw.Over, nil)
			continue
		}

		target := image.Rect(
			int(img.Bounds.LLx*scale+0.5), int(img.Bounds.LLy*scale+0.5),
			int(img.Bounds.URx*scale+0.5), int(img.Bounds.URy*scale+0.5),
		).Add(shift)
		if target.Empty() || !target.Overlaps(dst.Bounds()) {
			continue
		}
		draw.BiLinear.Scale(dst, target, img.Pixels, src, draw.Over, nil)
	}
}
