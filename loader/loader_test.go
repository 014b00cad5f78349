// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/vox/dotvox"
	"cogentcore.org/vox/mesh"
	"cogentcore.org/vox/model"
	"cogentcore.org/vox/palette"
	"cogentcore.org/vox/scene"
	"cogentcore.org/vox/voxel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const glass = 200

func cube(size int32, v uint8) dotvox.Model {
	m := dotvox.Model{Size: math32.Vec3i(size, size, size)}
	for z := range size {
		for y := range size {
			for x := range size {
				m.Voxels = append(m.Voxels, dotvox.Voxel{X: uint8(x), Y: uint8(y), Z: uint8(z), Index: v})
			}
		}
	}
	return m
}

func frame() []dotvox.Frame { return []dotvox.Frame{{Attributes: dotvox.Dict{}}} }

// testDocument has an opaque crate and a glass window pane.
func testDocument() *dotvox.Document {
	doc := &dotvox.Document{Version: 150}
	doc.Palette = make([]color.RGBA, dotvox.PaletteSize)
	for i := range doc.Palette {
		doc.Palette[i] = color.RGBA{uint8(i), 128, 64, 255}
	}
	doc.Materials = make([]dotvox.Material, dotvox.PaletteSize)
	for i := range doc.Materials {
		doc.Materials[i].ID = i
	}
	doc.Materials[3].Properties = dotvox.Dict{"_type": "_emit", "_emit": "0.5"}
	doc.Materials[glass].Properties = dotvox.Dict{"_type": "_glass", "_trans": "0.5", "_ior": "0.3"}
	doc.Models = []dotvox.Model{cube(2, 1), cube(3, glass)}
	doc.Nodes = []dotvox.Node{
		{Kind: dotvox.TransformNode, Attributes: dotvox.Dict{}, Child: 1, Layer: -1, Frames: frame()},
		{Kind: dotvox.GroupNode, Attributes: dotvox.Dict{}, Layer: -1, Children: []int{2, 4}},
		{Kind: dotvox.TransformNode, Attributes: dotvox.Dict{"_name": "crate"}, Child: 3, Layer: 0, Frames: frame()},
		{Kind: dotvox.ShapeNode, Attributes: dotvox.Dict{}, Layer: -1,
			Models: []dotvox.ShapeModel{{ModelID: 0, Attributes: dotvox.Dict{}}}},
		{Kind: dotvox.TransformNode, Attributes: dotvox.Dict{"_name": "window"}, Child: 5, Layer: 0, Frames: frame()},
		{Kind: dotvox.ShapeNode, Attributes: dotvox.Dict{}, Layer: -1,
			Models: []dotvox.ShapeModel{{ModelID: 1, Attributes: dotvox.Dict{"_name": "pane"}}}},
	}
	doc.Layers = []dotvox.Layer{{ID: 0, Attributes: dotvox.Dict{"_name": "props"}}}
	return doc
}

func TestLoad(t *testing.T) {
	as, err := New(nil).Load("room.vox", dotvox.Encode(testDocument()))
	require.NoError(t, err)
	assert.Equal(t, "room.vox", as.Path)
	assert.NotEqual(t, uuid.Nil, as.ID)

	require.Len(t, as.Scene.Models, 2)
	assert.Equal(t, "crate", as.Scene.Models[0].Name)
	assert.Equal(t, "window-pane", as.Scene.Models[1].Name)
	assert.Equal(t, []scene.LayerInfo{{Name: "props"}}, as.Scene.Layers)
	assert.Equal(t, []string{"crate", "window"}, as.Scenes.Keys())

	labels := as.Labels()
	for _, l := range []string{"", "material", NoEmissionMaterial, PaletteLabel,
		string(palette.ColorTexture), string(palette.EmissionTexture), string(palette.SpecularTransmissionTexture),
		"crate@mesh", "crate@model", "window-pane@mesh", "window-pane@material", "window-pane@model",
		"crate", "window"} {
		assert.Contains(t, labels, l)
	}
	assert.NotContains(t, labels, "crate@material")

	v, err := as.Get("")
	require.NoError(t, err)
	assert.Same(t, as.Scene, v)

	v, err = as.Get("crate@mesh")
	require.NoError(t, err)
	require.IsType(t, &mesh.Mesh{}, v)
	assert.Equal(t, 24, v.(*mesh.Mesh).NumVertex())

	v, err = as.Get("window-pane@material")
	require.NoError(t, err)
	require.IsType(t, &palette.Material{}, v)
	mt := v.(*palette.Material)
	assert.InDelta(t, 1.3, mt.IOR, 1e-6)
	assert.Equal(t, float32(3), mt.Thickness)

	v, err = as.Get("crate@material")
	require.NoError(t, err)
	shared, _ := as.Materials.ValueByKeyTry(model.OpaqueMaterial)
	assert.Same(t, shared, v)

	v, err = as.Get("window")
	require.NoError(t, err)
	sub := v.(*scene.VoxelScene)
	assert.Equal(t, []*model.VoxelModel{as.Scene.Models[1]}, sub.ModelsOf(sub.Root))

	v, err = as.Get(PaletteLabel)
	require.NoError(t, err)
	assert.Same(t, as.Palette, v)
	assert.InDelta(t, 1.3, as.Palette.IORForVoxel()[glass], 1e-6)

	ne, ok := as.Materials.ValueByKeyTry(NoEmissionMaterial)
	require.True(t, ok)
	assert.Equal(t, float32(1), ne.SpecularTransmission)
	assert.Equal(t, palette.SpecularTransmissionTexture, ne.SpecularTransmissionTexture)
	assert.Empty(t, ne.EmissiveTexture)

	_, err = as.Get("chair@mesh")
	assert.True(t, errors.Is(err, ErrNoLabel))
}

func TestLoadSceneShadowsSharedLabel(t *testing.T) {
	doc := testDocument()
	doc.Nodes[2].Attributes = dotvox.Dict{"_name": "material"}
	as, err := New(nil).Load("", dotvox.Encode(doc))
	require.NoError(t, err)
	v, err := as.Get("material")
	require.NoError(t, err)
	require.IsType(t, &scene.VoxelScene{}, v)
	assert.Equal(t, "material", v.(*scene.VoxelScene).Root.Name)

	_, ok := as.Materials.ValueByKeyTry(model.OpaqueMaterial)
	assert.True(t, ok)
	n := 0
	for _, l := range as.Labels() {
		if l == "material" {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestLoadWithoutPalette(t *testing.T) {
	doc := testDocument()
	doc.Palette = nil
	as, err := New(nil).Load("", dotvox.Encode(doc))
	require.NoError(t, err)
	assert.Nil(t, as.Document.Palette)
	assert.Equal(t, dotvox.DefaultPalette()[1], as.Palette.Elements[1].Color)
	assert.Equal(t, dotvox.DefaultPalette()[glass], as.Palette.Elements[glass].Color)
	assert.NotEqual(t, as.Palette.Elements[1].Color, as.Palette.Elements[2].Color)
}

func TestLoadWithoutNodes(t *testing.T) {
	doc := testDocument()
	doc.Nodes = nil
	s := DefaultSettings()
	s.Workers = 1
	as, err := New(s).Load("", dotvox.Encode(doc))
	require.NoError(t, err)
	assert.Equal(t, "model-0", as.Scene.Models[0].Name)
	assert.Equal(t, "model-1", as.Scene.Models[1].Name)
	assert.Equal(t, 0, as.Scenes.Len())
	assert.Equal(t, scene.Group, as.Scene.Root.Kind)
	_, ok := as.Model("model-1")
	assert.True(t, ok)
}

func TestLoadUniformEmission(t *testing.T) {
	doc := testDocument()
	doc.Materials[3].Properties = nil
	as, err := New(nil).Load("", dotvox.Encode(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{model.OpaqueMaterial}, as.Materials.Keys())
	_, has := as.Textures.ValueByKeyTry(palette.EmissionTexture)
	assert.False(t, has)
}

func TestLoadErrors(t *testing.T) {
	ld := New(nil)
	_, err := ld.Load("text.txt", []byte("not a vox file"))
	assert.True(t, errors.Is(err, ErrDecode))

	b := dotvox.Encode(testDocument())
	_, err = ld.Load("short.vox", b[:30])
	assert.True(t, errors.Is(err, ErrDecode))

	doc := testDocument()
	doc.Models = nil
	doc.Nodes = nil
	_, err = ld.Load("empty.vox", dotvox.Encode(doc))
	assert.True(t, errors.Is(err, ErrNoModels))

	doc = testDocument()
	doc.Materials[9].Properties = dotvox.Dict{"_type": "_metal", "_metal": "NaN"}
	_, err = ld.Load("nan.vox", dotvox.Encode(doc))
	assert.True(t, errors.Is(err, palette.ErrNaN))

	doc = testDocument()
	doc.Models[0].Size = math32.Vec3i(65536, 65536, 1)
	assert.NotPanics(t, func() {
		_, err = ld.Load("huge.vox", dotvox.Encode(doc))
	})
	assert.True(t, errors.Is(err, ErrDecode))
	assert.True(t, errors.Is(err, dotvox.ErrInvalid))
}

func TestDecoder(t *testing.T) {
	calls := 0
	ld := New(nil)
	ld.Decoder = DecoderFunc(func(b []byte) (*dotvox.Document, error) {
		calls++
		return testDocument(), nil
	})
	as, err := ld.Load("", []byte("a custom format"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, as.Models.Len())

	ld.Decoder = DecoderFunc(func(b []byte) (*dotvox.Document, error) {
		return nil, errors.New("broken")
	})
	_, err = ld.Load("", []byte(dotvox.Magic))
	assert.True(t, errors.Is(err, ErrDecode))

	ld.Decoder = DecoderFunc(func(b []byte) (*dotvox.Document, error) {
		doc := testDocument()
		doc.Models[1].Size = math32.Vec3i(3, 3, 100000)
		return doc, nil
	})
	assert.NotPanics(t, func() {
		_, err = ld.Load("", nil)
	})
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestEncodeEdits(t *testing.T) {
	ld := New(nil)
	as, err := ld.Load("", dotvox.Encode(testDocument()))
	require.NoError(t, err)
	crate, ok := as.Model("crate")
	require.True(t, ok)
	require.True(t, crate.Modify(voxel.Box, voxel.NewRegion(math32.Vec3i(0, 0, 0), math32.Vec3i(1, 1, 1)), model.Fill(voxel.Empty)))

	again, err := ld.Load("", as.Encode())
	require.NoError(t, err)
	assert.NotEqual(t, as.ID, again.ID)
	crate2, ok := again.Model("crate")
	require.True(t, ok)
	v, err := crate2.VoxelAt(math32.Vec3i(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, voxel.Empty, v)
	assert.Equal(t, crate.State().Grid.Voxels, crate2.State().Grid.Voxels)
	assert.Len(t, as.Document.Models[0].Voxels, 8, "the loaded document is not changed")
}

func TestSettings(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.MeshOuterFaces)
	assert.Equal(t, float32(2), s.EmissionStrength)
	assert.True(t, s.UsesSRGB)
	assert.Equal(t, float32(0.8), s.DiffuseRoughness)
	assert.Equal(t, "/", s.NameSeparator)
	assert.True(t, s.FlipV)
	assert.Equal(t, 0, s.Workers)

	dir := t.TempDir()
	for _, name := range []string{"vox.toml", "vox.yaml"} {
		fn := filepath.Join(dir, name)
		s.NameSeparator = "."
		s.MeshOuterFaces = false
		s.Workers = 3
		require.NoError(t, s.Save(fn))
		got, err := OpenSettings(fn)
		require.NoError(t, err)
		assert.Equal(t, s, got, name)
	}

	fn := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(fn, []byte("emission_strength = 5\n"), 0666))
	got, err := OpenSettings(fn)
	require.NoError(t, err)
	assert.Equal(t, float32(5), got.EmissionStrength)
	assert.True(t, got.MeshOuterFaces)
	assert.Equal(t, "/", got.NameSeparator)

	_, err = OpenSettings(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
	assert.Error(t, s.Save(filepath.Join(dir, "vox.ini")))
}

func TestLoadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "room.vox")
	require.NoError(t, os.WriteFile(fn, dotvox.Encode(testDocument()), 0666))
	s := DefaultSettings()
	s.MeshOuterFaces = false
	as, err := New(s).LoadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, fn, as.Path)
	crate, _ := as.Model("crate")
	assert.True(t, crate.Mesh().IsEmpty())
}
