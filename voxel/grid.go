// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package voxel provides the dense voxel [Grid] of one model, the
// face visibility rules used for meshing, and edit [Region]s.
//
// Grid coordinates use the .vox convention: left-handed and Z-up.
// [ToYUp] converts them to the right-handed Y-up convention used
// for rendering.
package voxel

import (
	"slices"

	"cogentcore.org/core/math32"
	"cogentcore.org/vox/dotvox"
)

// Voxel is a palette index: 0 is empty, 1-255 is solid with that material.
type Voxel uint8

// Empty is the empty (air) voxel.
const Empty Voxel = 0

// IsEmpty returns whether the voxel is [Empty].
func (v Voxel) IsEmpty() bool { return v == Empty }

// Reader is read-only access to a grid of voxels.
type Reader interface {
	// At returns the voxel at p, or [Empty] outside of the grid.
	At(p math32.Vector3i) Voxel

	// Extent returns the size of the grid.
	Extent() math32.Vector3i
}

// Grid is a dense box of voxels. Coordinates outside of Size are empty.
type Grid struct {
	// Size is the extent of the grid along each axis.
	Size math32.Vector3i

	// MeshOuterFaces is whether faces on the boundary of the grid are
	// visible. It is false for models tiled against each other.
	MeshOuterFaces bool

	// Voxels are stored with x varying fastest, then y, then z.
	Voxels []Voxel
}

// New returns an empty grid of the given size.
func New(size math32.Vector3i, meshOuterFaces bool) *Grid {
	size = size.Max(math32.Vector3i{})
	return &Grid{Size: size, MeshOuterFaces: meshOuterFaces, Voxels: make([]Voxel, int(size.X)*int(size.Y)*int(size.Z))}
}

// Load returns the grid of a decoded model. Voxels outside of the
// declared size of the model are dropped.
func Load(m dotvox.Model, meshOuterFaces bool) *Grid {
	g := New(m.Size, meshOuterFaces)
	for _, v := range m.Voxels {
		p := math32.Vec3i(int32(v.X), int32(v.Y), int32(v.Z))
		if g.InBounds(p) {
			g.Set(p, Voxel(v.Index))
		}
	}
	return g
}

// Model returns the grid in the sparse form of a .vox file.
func (g *Grid) Model() dotvox.Model {
	m := dotvox.Model{Size: g.Size}
	g.Range(func(p math32.Vector3i, v Voxel) {
		if !v.IsEmpty() {
			m.Voxels = append(m.Voxels, dotvox.Voxel{X: uint8(p.X), Y: uint8(p.Y), Z: uint8(p.Z), Index: uint8(v)})
		}
	})
	return m
}

// Extent returns the size of the grid.
func (g *Grid) Extent() math32.Vector3i { return g.Size }

// InBounds returns whether p is inside of the grid.
func (g *Grid) InBounds(p math32.Vector3i) bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 && p.X < g.Size.X && p.Y < g.Size.Y && p.Z < g.Size.Z
}

func (g *Grid) index(p math32.Vector3i) int {
	return int(p.X) + int(g.Size.X)*(int(p.Y)+int(g.Size.Y)*int(p.Z))
}

// At returns the voxel at p, or [Empty] outside of the grid.
func (g *Grid) At(p math32.Vector3i) Voxel {
	if !g.InBounds(p) {
		return Empty
	}
	return g.Voxels[g.index(p)]
}

// Set sets the voxel at p. Positions outside of the grid are ignored.
func (g *Grid) Set(p math32.Vector3i, v Voxel) {
	if g.InBounds(p) {
		g.Voxels[g.index(p)] = v
	}
}

// Clone returns a copy of the grid that shares no storage with it.
func (g *Grid) Clone() *Grid {
	cp := *g
	cp.Voxels = slices.Clone(g.Voxels)
	return &cp
}

// Range calls fn for every position of the grid in storage order.
func (g *Grid) Range(fn func(p math32.Vector3i, v Voxel)) {
	g.RangeBox(math32.Vector3i{}, g.Size, fn)
}

// RangeBox calls fn for every position p of the grid with lo <= p < hi.
func (g *Grid) RangeBox(lo, hi math32.Vector3i, fn func(p math32.Vector3i, v Voxel)) {
	lo = lo.Max(math32.Vector3i{})
	hi = hi.Min(g.Size)
	for z := lo.Z; z < hi.Z; z++ {
		for y := lo.Y; y < hi.Y; y++ {
			for x := lo.X; x < hi.X; x++ {
				p := math32.Vec3i(x, y, z)
				fn(p, g.Voxels[g.index(p)])
			}
		}
	}
}

// Thickness returns the smallest extent of the given size, used as the
// volumetric thickness of a translucent material.
func Thickness(size math32.Vector3i) float32 {
	return float32(min(size.X, size.Y, size.Z))
}
