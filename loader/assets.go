// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/vox/dotvox"
	"cogentcore.org/vox/model"
	"cogentcore.org/vox/palette"
	"cogentcore.org/vox/scene"
	"github.com/google/uuid"
)

// Labels of the assets shared by all models of a file.
const (
	// NoEmissionMaterial is the label of the palette material without
	// emission, only present when emission varies across the palette.
	NoEmissionMaterial = "material-no-emission"

	// PaletteLabel is the label of the palette itself.
	PaletteLabel = "material-palette"
)

// Assets are the labeled assets of one loaded file. Model meshes and
// materials are resolved from the current state of each model, so
// they follow edits made with [model.VoxelModel.Modify].
type Assets struct {
	// ID identifies this load of the file.
	ID uuid.UUID

	// Path is the file the assets were loaded from, if any.
	Path string

	// Document is the decoded file.
	Document *dotvox.Document

	// Scene is the primary scene, with label "".
	Scene *scene.VoxelScene

	// Palette is the palette shared by all models.
	Palette *palette.Palette

	// Textures are the palette textures by label.
	Textures *ordmap.Map[palette.TextureName, *palette.Texture]

	// Materials are the shared materials by label.
	Materials *ordmap.Map[string, *palette.Material]

	// Models are the models by their label, in file order. Models
	// sharing a name share a label, and the last one wins; all models
	// are in the Models of the Scene.
	Models *ordmap.Map[string, *model.VoxelModel]

	// Scenes are the sub-scenes of named nodes by name.
	Scenes *ordmap.Map[string, *scene.VoxelScene]
}

func newAssets(id uuid.UUID, path string) *Assets {
	return &Assets{ID: id, Path: path,
		Textures:  ordmap.New[palette.TextureName, *palette.Texture](),
		Materials: ordmap.New[string, *palette.Material](),
		Models:    ordmap.New[string, *model.VoxelModel](),
		Scenes:    ordmap.New[string, *scene.VoxelScene](),
	}
}

// addTexture is the texture callback of [palette.Palette.CreateMaterial].
func (as *Assets) addTexture(label palette.TextureName, tx *palette.Texture) palette.TextureName {
	as.Textures.Add(label, tx)
	return label
}

// Model returns the model with the given name.
func (as *Assets) Model(name string) (*model.VoxelModel, bool) {
	return as.Models.ValueByKeyTry(name + model.ModelSuffix)
}

// Get returns the asset with the given label:
//   - "" is the primary [scene.VoxelScene]
//   - "<name>" is the sub-scene of a named node
//   - "<name>@model" is a [model.VoxelModel]
//   - "<name>@mesh" is the current [mesh.Mesh] of a model
//   - "<name>@material" is the current [palette.Material] of a model
//   - "material" and "material-no-emission" are shared materials
//   - "material-palette" is the [palette.Palette]
//   - "material_*" are palette [palette.Texture]s
//
// A sub-scene shadows a shared label of the same name; the shared
// assets stay available in Materials, Textures and Palette.
func (as *Assets) Get(label string) (any, error) {
	if label == "" {
		return as.Scene, nil
	}
	if name, ok := strings.CutSuffix(label, model.MeshSuffix); ok {
		if vm, ok := as.Model(name); ok {
			return vm.Mesh(), nil
		}
	}
	if name, ok := strings.CutSuffix(label, model.MaterialSuffix); ok {
		if vm, ok := as.Model(name); ok {
			mt, _ := vm.Material()
			return mt, nil
		}
	}
	if vm, ok := as.Models.ValueByKeyTry(label); ok {
		return vm, nil
	}
	if sc, ok := as.Scenes.ValueByKeyTry(label); ok {
		return sc, nil
	}
	if label == PaletteLabel {
		return as.Palette, nil
	}
	if mt, ok := as.Materials.ValueByKeyTry(label); ok {
		return mt, nil
	}
	if tx, ok := as.Textures.ValueByKeyTry(palette.TextureName(label)); ok {
		return tx, nil
	}
	return nil, fmt.Errorf("%w %q in %s", ErrNoLabel, label, as.Path)
}

// Labels returns the labels of all assets, as accepted by [Assets.Get].
// The material label of a model is only listed while the model is
// translucent; opaque models use the shared "material".
func (as *Assets) Labels() []string {
	labels := []string{""}
	for _, tx := range as.Textures.Keys() {
		labels = append(labels, string(tx))
	}
	labels = append(labels, as.Materials.Keys()...)
	labels = append(labels, PaletteLabel)
	for _, vm := range as.Models.Values() {
		labels = append(labels, vm.MeshLabel())
		if _, mlabel := vm.Material(); mlabel != model.OpaqueMaterial {
			labels = append(labels, mlabel)
		}
		labels = append(labels, vm.Label())
	}
	labels = append(labels, as.Scenes.Keys()...)
	seen := make(map[string]bool, len(labels))
	return slices.DeleteFunc(labels, func(l string) bool {
		dup := seen[l]
		seen[l] = true
		return dup
	})
}

// Encode returns the .vox encoding of the document with the current
// voxels of every model.
func (as *Assets) Encode() []byte {
	doc := *as.Document
	doc.Models = make([]dotvox.Model, len(as.Document.Models))
	copy(doc.Models, as.Document.Models)
	for _, vm := range as.Scene.Models {
		doc.Models[vm.Index] = vm.State().Grid.Model()
	}
	return dotvox.Encode(&doc)
}
