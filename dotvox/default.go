// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dotvox

import "image/color"

// DefaultPalette returns the palette MagicaVoxel uses for files
// without an RGBA chunk, indexed by voxel value like [Document.Palette].
// Values 1 to 215 are a 6x6x6 color cube from white down to dark blue,
// followed by ten-step ramps of red, green, blue and gray.
func DefaultPalette() []color.RGBA {
	p := make([]color.RGBA, 1, PaletteSize)
	for r := 0xff; r >= 0; r -= 0x33 {
		for g := 0xff; g >= 0; g -= 0x33 {
			for b := 0xff; b >= 0; b -= 0x33 {
				if r == 0 && g == 0 && b == 0 {
					continue
				}
				p = append(p, color.RGBA{uint8(r), uint8(g), uint8(b), 0xff})
			}
		}
	}
	ramp := []uint8{0xee, 0xdd, 0xbb, 0xaa, 0x88, 0x77, 0x55, 0x44, 0x22, 0x11}
	for ch := range 4 {
		for _, v := range ramp {
			c := color.RGBA{A: 0xff}
			switch ch {
			case 0:
				c.R = v
			case 1:
				c.G = v
			case 2:
				c.B = v
			default:
				c.R, c.G, c.B = v, v, v
			}
			p = append(p, c)
		}
	}
	return p
}
