// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palette compiles the 256 entry material table of a .vox file
// into a [Palette] of physical [Element]s, and packs it into the
// textures and [Material] descriptor used to render voxel meshes.
package palette

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/vox/dotvox"
	"github.com/chewxy/math32"
)

// Size is the number of elements in every [Palette].
const Size = dotvox.PaletteSize

// ErrNaN is returned when a material property of the table is not a number.
var ErrNaN = errors.New("palette: material value is NaN")

// Pink is the color of palette slots that were never assigned.
var Pink = color.RGBA{255, 192, 203, 255}

// Element can be thought of as a voxel material: a kind of voxel brick
// with physical properties such as color and roughness.
type Element struct {
	// Color is the base color of the voxel.
	Color color.RGBA

	// Emission is the emissive strength, multiplied by Color to
	// give the emissive color.
	Emission float32

	// Roughness is the perceptual roughness, from 0 to 1.
	Roughness float32

	// Metalness is from 0 to 1.
	Metalness float32

	// Translucency is the transmissiveness, from 0 (opaque) to 1.
	Translucency float32

	// RefractionIndex is only meaningful when Translucency > 0.
	RefractionIndex float32
}

// DefaultElement returns the element used for unassigned slots.
func DefaultElement() Element {
	return Element{Color: Pink, Roughness: 0.5, RefractionIndex: 1.5}
}

// Property describes how one material property is distributed
// across the elements of a [Palette].
type Property int32

const (
	// Uniform properties have the same value for every element.
	Uniform Property = iota

	// VariesPerElement properties need a texture.
	VariesPerElement
)

func (p Property) String() string {
	if p == VariesPerElement {
		return "VariesPerElement"
	}
	return "Uniform"
}

// Palette holds exactly [Size] elements indexed by voxel value.
// It is created once per file and is read-only after that.
type Palette struct {
	Elements []Element

	// SRGB is whether colors are display-encoded; it selects the
	// format of the color texture and the decoding of emission.
	SRGB bool

	// Emission is whether emission varies per element.
	Emission Property
}

// New returns a palette of the given elements, padded with
// [DefaultElement] or truncated to exactly [Size] elements.
func New(elements []Element) *Palette {
	els := make([]Element, Size)
	n := copy(els, elements)
	for i := n; i < Size; i++ {
		els[i] = DefaultElement()
	}
	p := &Palette{Elements: els, SRGB: true}
	if spread(p.values(func(e *Element) float32 { return e.Emission })) > epsilon {
		p.Emission = VariesPerElement
	}
	return p
}

// NewFromColors returns a palette with the given colors and
// default values for every other property.
func NewFromColors(colors []color.RGBA) *Palette {
	els := make([]Element, len(colors))
	for i, c := range colors {
		els[i] = DefaultElement()
		els[i].Color = c
	}
	return New(els)
}

// NewFromData derives the palette from the color and material tables
// of a document. Missing materials behave as an empty property set,
// and a document without colors uses [dotvox.DefaultPalette].
// diffuseRoughness replaces the roughness of the "_diffuse" type, which
// MagicaVoxel does not let users set; emissionStrength scales emission.
func NewFromData(doc *dotvox.Document, diffuseRoughness, emissionStrength float32, srgb bool) (*Palette, error) {
	colors := doc.Palette
	if colors == nil {
		colors = dotvox.DefaultPalette()
	}
	n := min(len(colors), Size)
	els := make([]Element, n)
	for i := range n {
		var mat dotvox.Material
		if i < len(doc.Materials) {
			mat = doc.Materials[i]
		}
		el, err := elementFromMaterial(colors[i], &mat, diffuseRoughness, emissionStrength)
		if err != nil {
			return nil, fmt.Errorf("palette index %d: %w", i, err)
		}
		els[i] = el
	}
	p := New(els)
	p.SRGB = srgb
	return p, nil
}

func elementFromMaterial(c color.RGBA, mat *dotvox.Material, diffuseRoughness, emissionStrength float32) (Element, error) {
	el := Element{Color: c, RefractionIndex: 1.5}
	emit, _ := mat.Emission()
	flux, _ := mat.RadiantFlux()
	el.Emission = emit * (flux + 1) * emissionStrength
	tp, _ := mat.Type()
	if tp == "_diffuse" {
		el.Roughness = diffuseRoughness
	} else {
		el.Roughness, _ = mat.Roughness()
	}
	el.Metalness, _ = mat.Metalness()
	el.Translucency, _ = mat.Opacity()
	if tp == "_glass" {
		ior, _ := mat.RefractiveIndex()
		el.RefractionIndex = 1 + ior
	}
	for _, v := range []float32{el.Emission, el.Roughness, el.Metalness, el.Translucency, el.RefractionIndex} {
		if math32.IsNaN(v) {
			return el, ErrNaN
		}
	}
	return el, nil
}

// IORForVoxel returns the refraction index of every voxel value
// whose element is translucent.
func (p *Palette) IORForVoxel() map[uint8]float32 {
	ior := make(map[uint8]float32)
	for i, e := range p.Elements {
		if e.Translucency > 0 {
			ior[uint8(i)] = e.RefractionIndex
		}
	}
	return ior
}

// HasTranslucency returns whether any element is translucent.
func (p *Palette) HasTranslucency() bool {
	for i := range p.Elements {
		if p.Elements[i].Translucency > 0 {
			return true
		}
	}
	return false
}

func (p *Palette) values(f func(e *Element) float32) []float32 {
	vs := make([]float32, len(p.Elements))
	for i := range p.Elements {
		vs[i] = f(&p.Elements[i])
	}
	return vs
}
