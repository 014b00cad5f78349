// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Texture labels of the packed palette channels.
const (
	ColorTexture                TextureName = "material_color"
	EmissionTexture             TextureName = "material_emission"
	MetallicRoughnessTexture    TextureName = "material_metallic_roughness"
	SpecularTransmissionTexture TextureName = "material_specular_transmission"
)

// epsilon is the spread below which a property is treated as uniform.
const epsilon = 0.001

// Material is a physically based material descriptor. Each scalar
// factor multiplies the matching texture, when there is one.
// Textures are linked by name.
type Material struct {
	// BaseColorTexture is always set, with one texel per element.
	BaseColorTexture TextureName

	// Emissive is white when EmissiveTexture is set, else black.
	Emissive color.RGBA

	EmissiveTexture TextureName

	Roughness float32

	Metalness float32

	// MetallicRoughnessTexture has roughness in G and metalness in B.
	MetallicRoughnessTexture TextureName

	SpecularTransmission float32

	SpecularTransmissionTexture TextureName

	// IOR is the index of refraction of translucent voxels.
	IOR float32

	// Thickness is the volumetric thickness used for transmission.
	Thickness float32
}

// CreateMaterial packs the palette into textures and returns the
// translucent material descriptor. The color texture is always built;
// the emission, metallic-roughness and specular-transmission textures
// are only built when their values vary across elements, and the
// matching factor is set to the uniform value otherwise. add is called
// with each texture and returns the name to link it by.
func (p *Palette) CreateMaterial(add func(label TextureName, tx *Texture) TextureName) *Material {
	emission := p.values(func(e *Element) float32 { return e.Emission })
	rough := p.values(func(e *Element) float32 { return e.Roughness })
	metal := p.values(func(e *Element) float32 { return e.Metalness })
	trans := p.values(func(e *Element) float32 { return e.Translucency })

	maxRough := maxOf(rough)
	maxMetal := maxOf(metal)
	maxTrans := maxOf(trans)
	hasEmission := maxOf(emission) > 0
	hasRoughMetal := spread(rough) > epsilon || spread(metal) > epsilon
	hasTrans := spread(trans) > epsilon

	mt := &Material{IOR: 1.5, Emissive: color.RGBA{0, 0, 0, 255}}

	format := RGBA8
	if p.SRGB {
		format = RGBA8SRGB
	}
	ctx := newTexture(ColorTexture, format)
	for _, e := range p.Elements {
		ctx.Pix = append(ctx.Pix, e.Color.R, e.Color.G, e.Color.B, e.Color.A)
	}
	mt.BaseColorTexture = add(ColorTexture, ctx)

	if hasEmission {
		etx := newTexture(EmissionTexture, RGBA32F)
		for _, e := range p.Elements {
			c := p.linear(e.Color)
			etx.appendF32(c[0] * e.Emission)
			etx.appendF32(c[1] * e.Emission)
			etx.appendF32(c[2] * e.Emission)
			etx.appendF32(c[3])
		}
		mt.EmissiveTexture = add(EmissionTexture, etx)
		mt.Emissive = color.RGBA{255, 255, 255, 255}
	}

	if hasRoughMetal {
		mtx := newTexture(MetallicRoughnessTexture, RGBA16)
		for i := range rough {
			mtx.appendUnorm16(0)
			mtx.appendUnorm16(rough[i])
			mtx.appendUnorm16(metal[i])
			mtx.appendUnorm16(0)
		}
		mt.MetallicRoughnessTexture = add(MetallicRoughnessTexture, mtx)
		mt.Roughness, mt.Metalness = 1, 1
	} else {
		mt.Roughness, mt.Metalness = maxRough, maxMetal
	}

	if hasTrans {
		ttx := newTexture(SpecularTransmissionTexture, R16)
		for _, t := range trans {
			ttx.appendUnorm16(t)
		}
		mt.SpecularTransmissionTexture = add(SpecularTransmissionTexture, ttx)
		mt.SpecularTransmission = 1
	} else {
		mt.SpecularTransmission = maxTrans
	}
	return mt
}

// Clone returns a copy of the material.
func (mt *Material) Clone() *Material {
	cp := *mt
	return &cp
}

// Opaque returns a copy of the material with transmission disabled,
// for models without any translucent voxel.
func (mt *Material) Opaque() *Material {
	cp := mt.Clone()
	cp.SpecularTransmission = 0
	cp.SpecularTransmissionTexture = ""
	return cp
}

// NoEmission returns a copy of the material that does not glow.
func (mt *Material) NoEmission() *Material {
	cp := mt.Clone()
	cp.EmissiveTexture = ""
	cp.Emissive = color.RGBA{0, 0, 0, 255}
	return cp
}

// Translucent returns a copy of the material for one translucent
// model with the given refraction index and thickness.
func (mt *Material) Translucent(ior, thickness float32) *Material {
	cp := mt.Clone()
	cp.IOR = ior
	cp.Thickness = thickness
	return cp
}

// linear returns the color as float channels, decoding the sRGB
// transfer function when the palette is display-encoded.
func (p *Palette) linear(c color.RGBA) [4]float32 {
	out := [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
	if p.SRGB {
		for i := range 3 {
			out[i] = srgbToLinear(out[i])
		}
	}
	return out
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// compare orders a and b. It panics on NaN.
func compare(a, b float32) int {
	if math32.IsNaN(a) || math32.IsNaN(b) {
		panic("tried to compare NaN")
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func maxOf(vs []float32) float32 {
	m := vs[0]
	for _, v := range vs[1:] {
		if compare(v, m) > 0 {
			m = v
		}
	}
	return m
}

func minOf(vs []float32) float32 {
	m := vs[0]
	for _, v := range vs[1:] {
		if compare(v, m) < 0 {
			m = v
		}
	}
	return m
}

func spread(vs []float32) float32 {
	return maxOf(vs) - minOf(vs)
}
