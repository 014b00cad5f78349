// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader turns the bytes of a MagicaVoxel .vox file into
// labeled [Assets]: a scene graph, one editable model per voxel model,
// and the materials and textures of the palette.
package loader

import (
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/vox/dotvox"
	"cogentcore.org/vox/mesh"
	"cogentcore.org/vox/model"
	"cogentcore.org/vox/palette"
	"cogentcore.org/vox/scene"
	"cogentcore.org/vox/voxel"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"golang.org/x/sync/errgroup"
)

// Decoder decodes the bytes of a .vox file.
type Decoder interface {
	Decode(b []byte) (*dotvox.Document, error)
}

// DecoderFunc is a function implementing [Decoder].
type DecoderFunc func(b []byte) (*dotvox.Document, error)

func (f DecoderFunc) Decode(b []byte) (*dotvox.Document, error) { return f(b) }

// Loader loads .vox files with its [Settings].
type Loader struct {
	Settings *Settings

	// Decoder decodes files; [dotvox.Decode] is used when it is nil.
	Decoder Decoder
}

// New returns a new loader with the given settings,
// or the default settings if s is nil.
func New(s *Settings) *Loader {
	if s == nil {
		s = DefaultSettings()
	}
	return &Loader{Settings: s}
}

func (ld *Loader) decode(b []byte) (*dotvox.Document, error) {
	var doc *dotvox.Document
	var err error
	if ld.Decoder != nil {
		doc, err = ld.Decoder.Decode(b)
	} else {
		if !filetype.Is(b, dotvox.Extension) {
			return nil, fmt.Errorf("%w: missing %q header", ErrDecode, dotvox.Magic)
		}
		doc, err = dotvox.Decode(b)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	for i, m := range doc.Models {
		if m.Size.X > dotvox.MaxSize || m.Size.Y > dotvox.MaxSize || m.Size.Z > dotvox.MaxSize {
			return nil, fmt.Errorf("%w: model %d size %v exceeds %d", ErrDecode, i, m.Size, dotvox.MaxSize)
		}
	}
	return doc, nil
}

// LoadFile loads the .vox file with the given name.
func (ld *Loader) LoadFile(filename string) (*Assets, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ld.Load(filename, b)
}

// Load loads the given .vox file contents; path is only used to
// identify the file in assets, errors and logs. Nothing is returned
// on failure.
func (ld *Loader) Load(path string, b []byte) (*Assets, error) {
	s := ld.Settings
	doc, err := ld.decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(doc.Models) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoModels)
	}
	pal, err := palette.NewFromData(doc, s.DiffuseRoughness, s.EmissionStrength, s.UsesSRGB)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	as := newAssets(uuid.New(), path)
	as.Document = doc
	as.Palette = pal
	slog.Info("loading vox file", "path", path, "id", as.ID, "version", doc.Version,
		"models", len(doc.Models), "nodes", len(doc.Nodes))

	translucent := pal.CreateMaterial(as.addTexture)
	opaque := translucent.Opaque()
	as.Materials.Add(model.OpaqueMaterial, opaque)
	if pal.Emission == palette.VariesPerElement {
		as.Materials.Add(NoEmissionMaterial, translucent.NoEmission())
	}

	root := scene.Resolve(doc.Nodes, 0, s.NameSeparator)
	var names []string
	if root == nil {
		names = make([]string, len(doc.Models))
		for i := range names {
			names[i] = scene.FallbackName(i)
		}
		root = scene.Synthesize(names)
	} else {
		names = scene.ModelNames(root, len(doc.Models))
	}

	models := make([]*model.VoxelModel, len(doc.Models))
	opts := mesh.Options{FlipV: s.FlipV}
	var eg errgroup.Group
	eg.SetLimit(s.workers())
	for i := range doc.Models {
		eg.Go(func() error {
			g := voxel.Load(doc.Models[i], s.MeshOuterFaces)
			models[i] = model.New(names[i], i, g, pal, translucent, opaque, opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, vm := range models {
		as.Models.Add(vm.Label(), vm)
	}

	as.Scene = &scene.VoxelScene{Root: root, Models: models, Layers: scene.Layers(doc)}
	// named nodes in traversal order
	byName := scene.NodesByName(root)
	root.Walk(func(n *scene.Node) bool {
		if nd, ok := byName[n.Name]; ok && nd == n {
			as.Scenes.Add(n.Name, as.Scene.SubScene(n))
		}
		return true
	})
	return as, nil
}
