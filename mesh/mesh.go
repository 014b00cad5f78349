// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/vox/palette"
	"cogentcore.org/vox/voxel"
)

// Options control the vertex attributes of a [Mesh].
type Options struct {
	// FlipV flips the quad-local texture coordinates vertically,
	// for graphics APIs with a top-left texture origin.
	FlipV bool
}

// Mesh is an indexed triangle mesh in the right-handed Y-up
// convention, centered on the model. Every quad has four vertices
// and two counter-clockwise triangles. The per-vertex palette index
// and palette UV let one mesh use many materials through the
// palette textures.
type Mesh struct {
	// Vertex has 3 floats per vertex.
	Vertex math32.ArrayF32

	// Normal has 3 floats per vertex; one of the six axis directions.
	Normal math32.ArrayF32

	// TexCoord has 2 floats per vertex, in voxel units across the quad.
	TexCoord math32.ArrayF32

	// PaletteUV has 2 floats per vertex: the texel center of the
	// voxel value in the palette textures.
	PaletteUV math32.ArrayF32

	// PaletteIndex has the voxel value of each vertex.
	PaletteIndex math32.ArrayU32

	// Index has 3 vertex indexes per triangle.
	Index math32.ArrayU32

	// BBox is the bounding box of the vertices.
	BBox math32.Box3
}

// NumVertex returns the number of vertices.
func (ms *Mesh) NumVertex() int { return len(ms.Vertex) / 3 }

// NumIndex returns the number of indexes.
func (ms *Mesh) NumIndex() int { return len(ms.Index) }

// IsEmpty returns whether the mesh has no vertices. An empty mesh is
// valid and is the mesh of a model without visible voxels.
func (ms *Mesh) IsEmpty() bool { return len(ms.Vertex) == 0 }

// MeshSize returns the sizes to allocate for [Mesh.Set].
func (ms *Mesh) MeshSize() (numVertex, numIndex int, hasColor bool) {
	return ms.NumVertex(), ms.NumIndex(), false
}

// Set copies the mesh into arrays allocated from [Mesh.MeshSize].
func (ms *Mesh) Set(vertex, normal, texcoord, clrs math32.ArrayF32, index math32.ArrayU32) {
	copy(vertex, ms.Vertex)
	copy(normal, ms.Normal)
	copy(texcoord, ms.TexCoord)
	copy(index, ms.Index)
}

// PaletteUV returns the texel center of voxel value v in the
// palette textures.
func PaletteUV(v voxel.Voxel) math32.Vector2 {
	const n = palette.TextureSize
	return math32.Vec2((float32(int(v)%n)+0.5)/n, (float32(int(v)/n)+0.5)/n)
}

// Mesh returns the vertex buffers of the surface.
func (s *Surface) Mesh(opts Options) *Mesh {
	ms := &Mesh{BBox: math32.B3Empty()}
	nq := s.NumQuads()
	if nq == 0 {
		ms.BBox = math32.Box3{}
		return ms
	}
	ms.Vertex = make(math32.ArrayF32, 0, nq*12)
	ms.Normal = make(math32.ArrayF32, 0, nq*12)
	ms.TexCoord = make(math32.ArrayF32, 0, nq*8)
	ms.PaletteUV = make(math32.ArrayF32, 0, nq*8)
	ms.PaletteIndex = make(math32.ArrayU32, 0, nq*4)
	ms.Index = make(math32.ArrayU32, 0, nq*6)
	center := voxel.Center(s.Size)
	for d := range voxel.Directions(voxel.DirectionsN) {
		for k, quads := range s.Layers[d] {
			for _, q := range quads {
				ms.addQuad(d, int32(k), q, center, opts)
			}
		}
	}
	return ms
}

func (ms *Mesh) addQuad(d voxel.Directions, k int32, q Quad, center math32.Vector3, opts Options) {
	axis := d.Axis()
	ua, va := inPlane(axis)
	plane := float32(k)
	if d.Positive() {
		plane++
	}
	corner := func(du, dv int32) math32.Vector3 {
		var p math32.Vector3
		p.SetDim(axis, plane)
		p.SetDim(ua, float32(q.U+du))
		p.SetDim(va, float32(q.V+dv))
		return voxel.ToYUp(p.Sub(center))
	}
	pos := [4]math32.Vector3{corner(0, 0), corner(q.W, 0), corner(q.W, q.H), corner(0, q.H)}
	w, h := float32(q.W), float32(q.H)
	uv := [4]math32.Vector2{math32.Vec2(0, 0), math32.Vec2(w, 0), math32.Vec2(w, h), math32.Vec2(0, h)}
	if opts.FlipV {
		for i := range uv {
			uv[i].Y = h - uv[i].Y
		}
	}
	n := d.Normal()
	normal := voxel.ToYUp(math32.Vec3(float32(n.X), float32(n.Y), float32(n.Z)))
	puv := PaletteUV(q.Index)

	base := uint32(ms.NumVertex())
	for i := range pos {
		ms.Vertex = append(ms.Vertex, pos[i].X, pos[i].Y, pos[i].Z)
		ms.Normal = append(ms.Normal, normal.X, normal.Y, normal.Z)
		ms.TexCoord = append(ms.TexCoord, uv[i].X, uv[i].Y)
		ms.PaletteUV = append(ms.PaletteUV, puv.X, puv.Y)
		ms.PaletteIndex = append(ms.PaletteIndex, uint32(q.Index))
		ms.BBox.ExpandByPoint(pos[i])
	}
	// counter-clockwise seen from the side the normal points to
	if pos[1].Sub(pos[0]).Cross(pos[2].Sub(pos[0])).Dot(normal) > 0 {
		ms.Index = append(ms.Index, base, base+1, base+2, base, base+2, base+3)
	} else {
		ms.Index = append(ms.Index, base, base+2, base+1, base, base+3, base+2)
	}
}
