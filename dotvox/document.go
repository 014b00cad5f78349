// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dotvox reads and writes MagicaVoxel .vox files into a
// structured [Document]: the palette, the material table, the models
// with their voxels, the scene node array and the layer table.
package dotvox

import (
	"image/color"
	"strconv"

	"cogentcore.org/core/math32"
)

// PaletteSize is the number of palette slots in a .vox file,
// indexed by voxel value. Slot 0 is the empty voxel.
const PaletteSize = 256

// MaxSize is the largest model size along any axis.
const MaxSize = 256

// Document is a fully decoded .vox file.
type Document struct {
	// Version is the file format version (150 or 200 in practice).
	Version int

	// Palette has one color per voxel value; index 0 is unused.
	// It is nil when the file has no RGBA chunk.
	Palette []color.RGBA

	// Materials has one entry per voxel value, aligned with Palette.
	// Entries without a MATL chunk have a nil Properties dict.
	Materials []Material

	// Models are the voxel models in file order.
	Models []Model

	// Nodes is the scene node array, indexed by node id. Node 0 is the root.
	Nodes []Node

	// Layers is the layer table, indexed by layer id.
	Layers []Layer
}

// Voxel is one voxel of a [Model]. Index is the palette index (1-255).
type Voxel struct {
	X, Y, Z, Index uint8
}

// Model is one voxel model as stored in the file: its declared
// size and its sparse list of voxels, in the file's Z-up space.
type Model struct {
	Size   math32.Vector3i
	Voxels []Voxel
}

// Dict is a string dictionary as used for node, layer,
// frame and material attributes.
type Dict map[string]string

// String returns the value for the given key.
func (d Dict) String(key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

// Float returns the value for the given key parsed as a float32.
// Missing or unparsable values return false.
func (d Dict) Float(key string) (float32, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

// Bool returns whether the given key is set to "1".
func (d Dict) Bool(key string) bool {
	return d[key] == "1"
}

// Material is one MATL chunk.
type Material struct {
	ID         int
	Properties Dict
}

// Type returns the material type tag (_diffuse, _metal, _glass, _emit, ...).
func (m *Material) Type() (string, bool) { return m.Properties.String("_type") }

// Emission returns the _emit property.
func (m *Material) Emission() (float32, bool) { return m.Properties.Float("_emit") }

// RadiantFlux returns the _flux property.
func (m *Material) RadiantFlux() (float32, bool) { return m.Properties.Float("_flux") }

// Roughness returns the _rough property.
func (m *Material) Roughness() (float32, bool) { return m.Properties.Float("_rough") }

// Metalness returns the _metal property.
func (m *Material) Metalness() (float32, bool) { return m.Properties.Float("_metal") }

// Opacity returns the translucency of the material, read from _trans
// and falling back on _alpha. 0 is fully opaque.
func (m *Material) Opacity() (float32, bool) {
	if v, ok := m.Properties.Float("_trans"); ok {
		return v, true
	}
	return m.Properties.Float("_alpha")
}

// RefractiveIndex returns the _ior property. MagicaVoxel stores the
// index of refraction minus one.
func (m *Material) RefractiveIndex() (float32, bool) { return m.Properties.Float("_ior") }

// NodeKinds are the kinds of scene [Node].
type NodeKinds int32

const (
	// TransformNode has a local transform and exactly one child.
	TransformNode NodeKinds = iota

	// GroupNode has an ordered list of children.
	GroupNode

	// ShapeNode references one or more models.
	ShapeNode
)

func (k NodeKinds) String() string {
	switch k {
	case TransformNode:
		return "Transform"
	case GroupNode:
		return "Group"
	case ShapeNode:
		return "Shape"
	}
	return "NodeKinds(" + strconv.Itoa(int(k)) + ")"
}

// Node is one entry of the scene node array.
type Node struct {
	Kind       NodeKinds
	Attributes Dict

	// Child is the node id of the single child of a TransformNode.
	Child int

	// Layer is the layer id of a TransformNode, or -1.
	Layer int

	// Frames are the animation frames of a TransformNode.
	Frames []Frame

	// Children are the node ids of the children of a GroupNode.
	Children []int

	// Models are the models referenced by a ShapeNode.
	Models []ShapeModel
}

// ShapeModel is one model reference of a ShapeNode.
type ShapeModel struct {
	ModelID    int
	Attributes Dict
}

// Layer is one LAYR chunk.
type Layer struct {
	ID         int
	Attributes Dict
}

// Name returns the _name attribute of the layer.
func (l *Layer) Name() string { return l.Attributes["_name"] }

// Hidden returns whether the layer is hidden.
func (l *Layer) Hidden() bool { return l.Attributes.Bool("_hidden") }
