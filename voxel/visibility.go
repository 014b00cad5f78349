// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package voxel

import (
	"cogentcore.org/core/math32"
)

// Directions are the six axis-aligned face directions of a voxel.
type Directions int32

const (
	PosX Directions = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// DirectionsN is the number of face directions.
const DirectionsN = 6

var directionNames = [DirectionsN]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

func (d Directions) String() string { return directionNames[d] }

// Axis returns the axis the direction is normal to.
func (d Directions) Axis() math32.Dims { return math32.Dims(d / 2) }

// Positive returns whether the direction points along its axis.
func (d Directions) Positive() bool { return d%2 == 0 }

// Normal returns the unit step in the direction.
func (d Directions) Normal() math32.Vector3i {
	var n math32.Vector3i
	s := int32(1)
	if !d.Positive() {
		s = -1
	}
	n.SetDim(d.Axis(), s)
	return n
}

// Translucency reports whether a voxel value has a translucent material.
type Translucency func(v Voxel) bool

// Opaque is the [Translucency] of palettes without translucent materials.
func Opaque(v Voxel) bool { return false }

// TranslucentIn returns the [Translucency] of the voxel values
// present in the given refraction index table.
func TranslucentIn(ior map[uint8]float32) Translucency {
	return func(v Voxel) bool {
		_, ok := ior[uint8(v)]
		return ok
	}
}

// FaceVisible returns whether the face of the voxel at p in direction d
// must be meshed. It must be non-empty, and the neighbor must either be
// outside of the grid with MeshOuterFaces set, be empty, or be a
// translucent voxel of a different value.
func (g *Grid) FaceVisible(p math32.Vector3i, d Directions, translucent Translucency) bool {
	v := g.At(p)
	if v.IsEmpty() {
		return false
	}
	q := p.Add(d.Normal())
	if !g.InBounds(q) {
		return g.MeshOuterFaces
	}
	n := g.At(q)
	if n.IsEmpty() {
		return true
	}
	return n != v && translucent(n)
}

// IsVisible returns whether any face of the voxel at p is visible.
func (g *Grid) IsVisible(p math32.Vector3i, translucent Translucency) bool {
	for d := range Directions(DirectionsN) {
		if g.FaceVisible(p, d, translucent) {
			return true
		}
	}
	return false
}

// VisibleVoxel is one voxel with at least one visible face.
type VisibleVoxel struct {
	Pos   math32.Vector3i
	Index Voxel
}

// VisibleVoxels returns the visible voxels with lo <= position < hi,
// in storage order.
func (g *Grid) VisibleVoxels(lo, hi math32.Vector3i, translucent Translucency) []VisibleVoxel {
	var vis []VisibleVoxel
	g.RangeBox(lo, hi, func(p math32.Vector3i, v Voxel) {
		if g.IsVisible(p, translucent) {
			vis = append(vis, VisibleVoxel{Pos: p, Index: v})
		}
	})
	return vis
}

// VisibleIOR returns the mean refraction index of the translucent
// voxels among visible, and false if there are none.
func VisibleIOR(visible []VisibleVoxel, ior map[uint8]float32) (float32, bool) {
	var c Counts
	for _, v := range visible {
		c[v.Index]++
	}
	return c.IOR(ior)
}

// Counts holds the number of visible voxels of each value.
type Counts [256]int

// CountVisible returns the counts of the visible voxels with
// lo <= position < hi.
func (g *Grid) CountVisible(lo, hi math32.Vector3i, translucent Translucency) Counts {
	var c Counts
	g.RangeBox(lo, hi, func(p math32.Vector3i, v Voxel) {
		if g.IsVisible(p, translucent) {
			c[v]++
		}
	})
	return c
}

// Add returns c + o.
func (c Counts) Add(o Counts) Counts {
	for i := range c {
		c[i] += o[i]
	}
	return c
}

// Sub returns c - o.
func (c Counts) Sub(o Counts) Counts {
	for i := range c {
		c[i] -= o[i]
	}
	return c
}

// Total returns the number of visible voxels.
func (c Counts) Total() int {
	n := 0
	for _, k := range c {
		n += k
	}
	return n
}

// IOR returns the mean refraction index over the counted voxels whose
// value is in ior, and false if there are none.
func (c Counts) IOR(ior map[uint8]float32) (float32, bool) {
	var sum float32
	n := 0
	for v, k := range c {
		if k == 0 {
			continue
		}
		if r, ok := ior[uint8(v)]; ok {
			sum += r * float32(k)
			n += k
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float32(n), true
}
