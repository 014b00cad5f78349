// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh builds quad-merged surface meshes of voxel grids
// with greedy meshing, and supports remeshing a bounded region.
package mesh

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/vox/voxel"
)

// Quad is a rectangle of coplanar faces of the same voxel value,
// in the plane of one layer of a [Surface].
type Quad struct {
	// U and V are the in-plane position of the corner with the
	// smallest coordinates, along the two axes after the normal axis.
	U, V int32

	// W and H are the extent along U and V, in voxels.
	W, H int32

	// Index is the voxel value of all of the faces.
	Index voxel.Voxel
}

// Surface holds the greedy quads of a grid for each face direction
// and each layer along the normal axis of that direction. Layers are
// immutable once built, so surfaces can share them.
type Surface struct {
	// Size is the size of the meshed grid.
	Size math32.Vector3i

	// Translucent is the translucency the surface was built with.
	Translucent voxel.Translucency

	// Layers[d][k] are the quads of the faces in direction d of
	// the voxels at coordinate k along the normal axis.
	Layers [voxel.DirectionsN][][]Quad
}

// inPlane returns the two axes of the plane normal to axis,
// in cyclic order.
func inPlane(axis math32.Dims) (u, v math32.Dims) {
	return (axis + 1) % 3, (axis + 2) % 3
}

// Build returns the greedy surface of g. A nil translucent treats
// every voxel as opaque.
func Build(g *voxel.Grid, translucent voxel.Translucency) *Surface {
	if translucent == nil {
		translucent = voxel.Opaque
	}
	s := &Surface{Size: g.Size, Translucent: translucent}
	for d := range voxel.Directions(voxel.DirectionsN) {
		n := g.Size.Dim(d.Axis())
		s.Layers[d] = make([][]Quad, n)
		for k := range n {
			s.Layers[d][k] = buildLayer(g, d, k, translucent)
		}
	}
	return s
}

// Remesh returns a surface of g in which only the layers that may
// have changed after an edit of the box lo <= p < hi are rebuilt:
// those within one voxel of the box. The result equals Build(g).
// The receiver is not modified.
func (s *Surface) Remesh(g *voxel.Grid, lo, hi math32.Vector3i) *Surface {
	if g.Size != s.Size {
		return Build(g, s.Translucent)
	}
	ns := &Surface{Size: s.Size, Translucent: s.Translucent}
	for d := range voxel.Directions(voxel.DirectionsN) {
		axis := d.Axis()
		ns.Layers[d] = append([][]Quad(nil), s.Layers[d]...)
		from := max(lo.Dim(axis)-1, 0)
		to := min(hi.Dim(axis)+1, s.Size.Dim(axis))
		for k := from; k < to; k++ {
			ns.Layers[d][k] = buildLayer(g, d, k, s.Translucent)
		}
	}
	return ns
}

// buildLayer computes the mask of visible faces in direction d of the
// voxels at coordinate k along the normal axis, and merges it greedily:
// first into runs along U, then by extending runs along V.
func buildLayer(g *voxel.Grid, d voxel.Directions, k int32, translucent voxel.Translucency) []Quad {
	axis := d.Axis()
	ua, va := inPlane(axis)
	nu, nv := g.Size.Dim(ua), g.Size.Dim(va)
	mask := make([]voxel.Voxel, nu*nv)
	found := false
	var p math32.Vector3i
	p.SetDim(axis, k)
	for j := range nv {
		p.SetDim(va, j)
		for i := range nu {
			p.SetDim(ua, i)
			if g.FaceVisible(p, d, translucent) {
				mask[i+j*nu] = g.At(p)
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	var quads []Quad
	for j := range nv {
		for i := int32(0); i < nu; {
			v := mask[i+j*nu]
			if v.IsEmpty() {
				i++
				continue
			}
			w := int32(1)
			for i+w < nu && mask[i+w+j*nu] == v {
				w++
			}
			h := int32(1)
		rows:
			for j+h < nv {
				for x := i; x < i+w; x++ {
					if mask[x+(j+h)*nu] != v {
						break rows
					}
				}
				h++
			}
			for y := j; y < j+h; y++ {
				for x := i; x < i+w; x++ {
					mask[x+y*nu] = voxel.Empty
				}
			}
			quads = append(quads, Quad{U: i, V: j, W: w, H: h, Index: v})
			i += w
		}
	}
	return quads
}

// NumQuads returns the total number of quads.
func (s *Surface) NumQuads() int {
	n := 0
	for d := range s.Layers {
		for _, l := range s.Layers[d] {
			n += len(l)
		}
	}
	return n
}

// IsEmpty returns whether the surface has no quads.
func (s *Surface) IsEmpty() bool { return s.NumQuads() == 0 }

// Equal returns whether both surfaces have the same quads.
func (s *Surface) Equal(o *Surface) bool {
	if s.Size != o.Size {
		return false
	}
	for d := range s.Layers {
		if len(s.Layers[d]) != len(o.Layers[d]) {
			return false
		}
		for k, l := range s.Layers[d] {
			ol := o.Layers[d][k]
			if len(l) != len(ol) {
				return false
			}
			for i := range l {
				if l[i] != ol[i] {
					return false
				}
			}
		}
	}
	return true
}

// Visible returns the voxels with at least one visible face, with
// the same visibility rules used to build the surface.
func (s *Surface) Visible(g *voxel.Grid) []voxel.VisibleVoxel {
	return g.VisibleVoxels(math32.Vector3i{}, g.Size, s.Translucent)
}
