// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package library

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/vox/dotvox"
	"cogentcore.org/vox/loader"
	"cogentcore.org/vox/mesh"
	"cogentcore.org/vox/model"
	"cogentcore.org/vox/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeVox writes a file with a single named model of n voxels in a row.
func writeVox(t *testing.T, fn string, n int32) {
	doc := &dotvox.Document{Version: 150, Palette: make([]color.RGBA, dotvox.PaletteSize)}
	for i := range doc.Palette {
		doc.Palette[i] = color.RGBA{uint8(i), uint8(i), uint8(i), 255}
	}
	m := dotvox.Model{Size: math32.Vec3i(n, 1, 1)}
	for x := range n {
		m.Voxels = append(m.Voxels, dotvox.Voxel{X: uint8(x), Index: 1})
	}
	doc.Models = []dotvox.Model{m}
	doc.Nodes = []dotvox.Node{
		{Kind: dotvox.TransformNode, Attributes: dotvox.Dict{"_name": "bar"}, Child: 1, Layer: -1,
			Frames: []dotvox.Frame{{Attributes: dotvox.Dict{}}}},
		{Kind: dotvox.ShapeNode, Attributes: dotvox.Dict{}, Layer: -1,
			Models: []dotvox.ShapeModel{{ModelID: 0, Attributes: dotvox.Dict{}}}},
	}
	// write and rename, so that watchers never see a partial file
	tmp := fn + ".tmp"
	require.NoError(t, os.WriteFile(tmp, dotvox.Encode(doc), 0666))
	require.NoError(t, os.Rename(tmp, fn))
}

func TestSplitRef(t *testing.T) {
	path, label := SplitRef("models/room.vox#crate@mesh")
	assert.Equal(t, "models/room.vox", path)
	assert.Equal(t, "crate@mesh", label)
	path, label = SplitRef("room.vox")
	assert.Equal(t, "room.vox", path)
	assert.Equal(t, "", label)
}

func TestAsset(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "bar.vox")
	writeVox(t, fn, 3)

	lb := New(nil)
	as, err := lb.Open(fn)
	require.NoError(t, err)
	again, err := lb.Open(filepath.Join(dir, ".", "bar.vox"))
	require.NoError(t, err)
	assert.Same(t, as, again)
	assert.Equal(t, []string{fn}, lb.Files())

	v, err := lb.Asset(fn + "#bar@mesh")
	require.NoError(t, err)
	assert.Equal(t, 6*4, v.(*mesh.Mesh).NumVertex())
	v, err = lb.Asset(fn + "#bar")
	require.NoError(t, err)
	assert.NotNil(t, v)

	_, err = lb.Asset(fn + "#nothing")
	assert.True(t, errors.Is(err, loader.ErrNoLabel))
	_, err = lb.Asset(filepath.Join(dir, "missing.vox#bar"))
	assert.Error(t, err)

	lb.Forget(fn)
	assert.Empty(t, lb.Files())
	fresh, err := lb.Open(fn)
	require.NoError(t, err)
	assert.NotSame(t, as, fresh)
}

func TestSave(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bar.vox")
	writeVox(t, fn, 4)
	lb := New(nil)
	as, err := lb.Open(fn)
	require.NoError(t, err)
	bar, ok := as.Model("bar")
	require.True(t, ok)
	require.True(t, bar.Modify(voxel.Box, voxel.NewRegion(math32.Vec3i(1, 0, 0), math32.Vec3i(2, 1, 1)), model.Fill(voxel.Empty)))
	require.NoError(t, lb.Save(fn))

	as, err = lb.Reload(fn)
	require.NoError(t, err)
	bar, _ = as.Model("bar")
	assert.Equal(t, []voxel.Voxel{1, 0, 0, 1}, bar.State().Grid.Voxels)

	assert.Error(t, lb.Save(filepath.Join(t.TempDir(), "other.vox")))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "bar.vox")
	writeVox(t, fn, 2)

	lb := New(nil)
	reloaded := make(chan *loader.Assets, 8)
	lb.OnReload = func(path string, as *loader.Assets, err error) {
		if err == nil && path == fn {
			reloaded <- as
		}
	}
	_, err := lb.Open(fn)
	require.NoError(t, err)
	require.NoError(t, lb.Watch())
	require.NoError(t, lb.Watch())
	defer func() { assert.NoError(t, lb.Close()) }()

	writeVox(t, fn, 5)
	select {
	case as := <-reloaded:
		bar, ok := as.Model("bar")
		require.True(t, ok)
		assert.Equal(t, math32.Vec3i(5, 1, 1), bar.Size())
		cur, err := lb.Open(fn)
		require.NoError(t, err)
		assert.Equal(t, math32.Vec3i(5, 1, 1), cur.Scene.Models[0].Size())
	case <-time.After(5 * time.Second):
		t.Fatal("file was not reloaded")
	}
}

func TestCloseWithoutWatch(t *testing.T) {
	lb := New(nil)
	assert.NoError(t, lb.Close())
	require.NoError(t, lb.Watch())
	assert.NoError(t, lb.Close())
	assert.NoError(t, lb.Close())
}
