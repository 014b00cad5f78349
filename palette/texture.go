// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"
)

// TextureSize is the width and height of every palette texture:
// one texel per element.
const TextureSize = 16

// TextureName is the label of a [Texture]; textures are linked
// to a [Material] by name.
type TextureName string

// Formats are the pixel formats of a [Texture].
type Formats int32

const (
	// RGBA8 is 8 bit unsigned normalized RGBA.
	RGBA8 Formats = iota

	// RGBA8SRGB is RGBA8 with sRGB encoded color channels.
	RGBA8SRGB

	// RGBA32F is little-endian 32 bit float RGBA.
	RGBA32F

	// RGBA16 is little-endian 16 bit unsigned normalized RGBA.
	RGBA16

	// R16 is a single little-endian 16 bit unsigned normalized channel.
	R16
)

// BytesPerPixel returns the size of one texel in the format.
func (f Formats) BytesPerPixel() int {
	switch f {
	case RGBA32F:
		return 16
	case RGBA16:
		return 8
	case R16:
		return 2
	}
	return 4
}

func (f Formats) String() string {
	switch f {
	case RGBA8:
		return "RGBA8"
	case RGBA8SRGB:
		return "RGBA8SRGB"
	case RGBA32F:
		return "RGBA32F"
	case RGBA16:
		return "RGBA16"
	case R16:
		return "R16"
	}
	return "Formats(?)"
}

// Texture is a packed pixel buffer, ready for GPU upload.
type Texture struct {
	// Name is the label of the texture.
	Name TextureName

	Width, Height int

	Format Formats

	// Pix holds Width*Height texels, row by row.
	Pix []byte
}

func newTexture(name TextureName, format Formats) *Texture {
	return &Texture{Name: name, Width: TextureSize, Height: TextureSize, Format: format,
		Pix: make([]byte, 0, TextureSize*TextureSize*format.BytesPerPixel())}
}

func (tx *Texture) appendF32(v float32) {
	tx.Pix = binary.LittleEndian.AppendUint32(tx.Pix, math.Float32bits(v))
}

// appendUnorm16 appends v in [0, 1] as a 16 bit unsigned normalized value.
func (tx *Texture) appendUnorm16(v float32) {
	tx.Pix = binary.LittleEndian.AppendUint16(tx.Pix, unorm16(v))
}

func unorm16(v float32) uint16 {
	return uint16(min(max(v, 0), 1) * math.MaxUint16)
}

// Image returns the texture as an image for inspection. Float
// channels are clamped to [0, 1]; R16 gives a gray image.
func (tx *Texture) Image() image.Image {
	r := image.Rect(0, 0, tx.Width, tx.Height)
	bpp := tx.Format.BytesPerPixel()
	switch tx.Format {
	case R16:
		img := image.NewGray16(r)
		copy(img.Pix, be16(tx.Pix))
		return img
	case RGBA16:
		img := image.NewNRGBA64(r)
		copy(img.Pix, be16(tx.Pix))
		return img
	case RGBA32F:
		img := image.NewNRGBA64(r)
		for i := range tx.Width * tx.Height {
			var c [4]uint16
			for ch := range 4 {
				o := i*bpp + ch*4
				c[ch] = unorm16(math.Float32frombits(binary.LittleEndian.Uint32(tx.Pix[o:])))
			}
			img.SetNRGBA64(i%tx.Width, i/tx.Width, color.NRGBA64{c[0], c[1], c[2], c[3]})
		}
		return img
	}
	img := image.NewNRGBA(r)
	copy(img.Pix, tx.Pix)
	return img
}

// be16 swaps little-endian 16 bit samples to the big-endian
// order used by the image package.
func be16(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i := 0; i+1 < len(pix); i += 2 {
		out[i], out[i+1] = pix[i+1], pix[i]
	}
	return out
}
