// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/vox/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cuboid(size math32.Vector3i, v voxel.Voxel, outer bool) *voxel.Grid {
	g := voxel.New(size, outer)
	for i := range g.Voxels {
		g.Voxels[i] = v
	}
	return g
}

// vec3 returns vertex i of an array with 3 floats per vertex.
func vec3(a math32.ArrayF32, i int) math32.Vector3 {
	return math32.Vec3(a[i*3], a[i*3+1], a[i*3+2])
}

func TestSolidCuboid(t *testing.T) {
	g := cuboid(math32.Vec3i(2, 3, 4), 1, true)
	s := Build(g, nil)
	assert.Equal(t, 6, s.NumQuads())
	for d := range voxel.Directions(voxel.DirectionsN) {
		n := 0
		for _, l := range s.Layers[d] {
			for _, q := range l {
				n++
				assert.Equal(t, voxel.Voxel(1), q.Index)
			}
		}
		assert.Equal(t, 1, n, d.String())
	}

	ms := s.Mesh(Options{FlipV: true})
	assert.Equal(t, 24, ms.NumVertex())
	assert.Equal(t, 36, ms.NumIndex())
	assert.Len(t, ms.Normal, 72)
	assert.Len(t, ms.TexCoord, 48)
	assert.Len(t, ms.PaletteUV, 48)
	assert.Len(t, ms.PaletteIndex, 24)
	assert.Equal(t, math32.Vec3(-1, -2, -1.5), ms.BBox.Min)
	assert.Equal(t, math32.Vec3(1, 2, 1.5), ms.BBox.Max)

	// every triangle is counter-clockwise around its normal
	for i := 0; i < len(ms.Index); i += 3 {
		a := vec3(ms.Vertex, int(ms.Index[i]))
		b := vec3(ms.Vertex, int(ms.Index[i+1]))
		c := vec3(ms.Vertex, int(ms.Index[i+2]))
		n := vec3(ms.Normal, int(ms.Index[i]))
		assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Dot(n), float32(0))
		// the normal points away from the center
		assert.Greater(t, a.Add(b).Add(c).Dot(n), float32(0))
	}

	vs, is, hasColor := ms.MeshSize()
	assert.False(t, hasColor)
	vtx := make(math32.ArrayF32, vs*3)
	idx := make(math32.ArrayU32, is)
	ms.Set(vtx, make(math32.ArrayF32, vs*3), make(math32.ArrayF32, vs*2), nil, idx)
	assert.Equal(t, ms.Vertex, vtx)
	assert.Equal(t, ms.Index, idx)
}

func TestNoOuterFaces(t *testing.T) {
	g := cuboid(math32.Vec3i(3, 3, 3), 4, false)
	s := Build(g, nil)
	assert.True(t, s.IsEmpty())
	ms := s.Mesh(Options{})
	assert.True(t, ms.IsEmpty())
	assert.Equal(t, 0, ms.NumIndex())
	assert.Empty(t, s.Visible(g))

	empty := Build(voxel.New(math32.Vec3i(4, 4, 4), true), nil)
	assert.True(t, empty.Mesh(Options{}).IsEmpty())
}

func TestGreedyMerge(t *testing.T) {
	g := voxel.New(math32.Vec3i(2, 1, 1), true)
	g.Set(math32.Vec3i(0, 0, 0), 1)
	g.Set(math32.Vec3i(1, 0, 0), 2)
	s := Build(g, nil)
	assert.Equal(t, 10, s.NumQuads())
	require.Len(t, s.Layers[voxel.PosX], 2)
	assert.Empty(t, s.Layers[voxel.PosX][0])
	assert.Equal(t, []Quad{{U: 0, V: 0, W: 1, H: 1, Index: 2}}, s.Layers[voxel.PosX][1])

	g.Set(math32.Vec3i(1, 0, 0), 1)
	s = Build(g, nil)
	assert.Equal(t, 6, s.NumQuads())
	// +Z plane: U is X and V is Y
	assert.Equal(t, []Quad{{U: 0, V: 0, W: 2, H: 1, Index: 1}}, s.Layers[voxel.PosZ][0])
}

func TestTexCoords(t *testing.T) {
	g := voxel.New(math32.Vec3i(3, 1, 1), true)
	for x := range int32(3) {
		g.Set(math32.Vec3i(x, 0, 0), 17)
	}
	s := Build(g, nil)
	ms := s.Mesh(Options{})
	flipped := s.Mesh(Options{FlipV: true})
	uv := PaletteUV(17)
	assert.Equal(t, math32.Vec2(1.5/16, 1.5/16), uv)
	for i := range ms.NumVertex() {
		assert.Equal(t, uint32(17), ms.PaletteIndex[i])
		assert.Equal(t, uv.X, ms.PaletteUV[i*2])
		assert.Equal(t, uv.Y, ms.PaletteUV[i*2+1])
		// texture coordinates span the quad in voxel units
		u, v := ms.TexCoord[i*2], ms.TexCoord[i*2+1]
		assert.True(t, u == 0 || u == 1 || u == 3, u)
		assert.True(t, v == 0 || v == 1 || v == 3, v)
		assert.Equal(t, u, flipped.TexCoord[i*2])
	}
	// the first quad is +X, 1x1
	assert.Equal(t, float32(0), ms.TexCoord[1])
	assert.Equal(t, float32(1), flipped.TexCoord[1])
	assert.Equal(t, math32.Vec2(0.5/16, 0.5/16), PaletteUV(0))
}

func TestRemesh(t *testing.T) {
	g := cuboid(math32.Vec3i(5, 4, 3), 3, true)
	g.Set(math32.Vec3i(4, 0, 0), 9)
	s := Build(g, nil)
	ms := s.Mesh(Options{})

	// remeshing an unmodified region reproduces the same mesh
	again := s.Remesh(g, math32.Vec3i(1, 1, 1), math32.Vec3i(3, 3, 2))
	assert.True(t, again.Equal(s))
	ma := again.Mesh(Options{})
	assert.Equal(t, ms.NumVertex(), ma.NumVertex())
	assert.Equal(t, ms.NumIndex(), ma.NumIndex())
	assert.Equal(t, ms.Vertex, ma.Vertex)

	// carve a hole and remesh only around it
	edited := g.Clone()
	edited.Set(math32.Vec3i(2, 1, 2), voxel.Empty)
	edited.Set(math32.Vec3i(2, 2, 2), voxel.Empty)
	rs := s.Remesh(edited, math32.Vec3i(2, 1, 2), math32.Vec3i(3, 3, 3))
	full := Build(edited, nil)
	assert.True(t, rs.Equal(full))
	assert.False(t, rs.Equal(s))
	assert.True(t, Build(g, nil).Equal(s), "receiver unchanged")
	assert.Equal(t, full.Mesh(Options{}).Vertex, rs.Mesh(Options{}).Vertex)
}

func TestTranslucentSurface(t *testing.T) {
	g := voxel.New(math32.Vec3i(2, 1, 1), false)
	g.Set(math32.Vec3i(0, 0, 0), 1)
	g.Set(math32.Vec3i(1, 0, 0), 200)
	assert.True(t, Build(g, nil).IsEmpty())

	ior := map[uint8]float32{200: 1.3}
	s := Build(g, voxel.TranslucentIn(ior))
	assert.Equal(t, 1, s.NumQuads())
	assert.Equal(t, []Quad{{W: 1, H: 1, Index: 1}}, s.Layers[voxel.PosX][0])
	vis := s.Visible(g)
	require.Len(t, vis, 1)
	assert.Equal(t, voxel.Voxel(1), vis[0].Index)
}
