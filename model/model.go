// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model provides [VoxelModel], a loaded voxel model with its
// grid, mesh and material, which can be edited in place with
// [VoxelModel.Modify].
package model

import (
	"fmt"
	"sync"
	"sync/atomic"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/vox/mesh"
	"cogentcore.org/vox/palette"
	"cogentcore.org/vox/voxel"
)

// ErrOutOfBounds is returned for voxel queries outside of the model.
var ErrOutOfBounds = errors.New("model: position out of bounds")

// Label suffixes of the sub-assets of a model.
const (
	MeshSuffix     = "@mesh"
	MaterialSuffix = "@material"
	ModelSuffix    = "@model"
)

// OpaqueMaterial is the label of the material shared by all
// models without translucent voxels.
const OpaqueMaterial = "material"

// State is an immutable snapshot of the geometry of a [VoxelModel].
// A new State is published as a whole after every edit.
type State struct {
	Grid    *voxel.Grid
	Surface *mesh.Surface
	Mesh    *mesh.Mesh

	// Visible counts the visible voxels of each value.
	Visible voxel.Counts

	// Translucent is whether any visible voxel is translucent,
	// and IOR is then their mean refraction index.
	Translucent bool
	IOR         float32

	// Material is the material of the model and MaterialLabel its label:
	// [OpaqueMaterial], or the name of the model with [MaterialSuffix].
	Material      *palette.Material
	MaterialLabel string
}

// VoxelModel is one model of a loaded file. Its identity and labels
// stay the same across edits; its [State] is replaced atomically, so
// readers see either the state before or after an edit.
type VoxelModel struct {
	// Name is the resolved name of the model, used in its labels.
	Name string

	// Index is the index of the model in the file.
	Index int

	// Palette is shared with every model of the file. It is read-only.
	Palette *palette.Palette

	// MeshOptions are used every time the mesh is rebuilt.
	MeshOptions mesh.Options

	ior      map[uint8]float32
	material *palette.Material
	opaque   *palette.Material

	// mu serializes writers.
	mu    sync.Mutex
	state atomic.Pointer[State]
}

// New returns the model of grid g, meshed with the given options.
// material is the translucent material of the palette and opaque
// its opaque variant; they can be nil when no material is needed.
func New(name string, index int, g *voxel.Grid, pal *palette.Palette, material, opaque *palette.Material, opts mesh.Options) *VoxelModel {
	vm := &VoxelModel{Name: name, Index: index, Palette: pal, MeshOptions: opts,
		ior: pal.IORForVoxel(), material: material, opaque: opaque}
	tr := vm.translucency()
	surf := mesh.Build(g, tr)
	vm.state.Store(vm.newState(g, surf, g.CountVisible(math32.Vector3i{}, g.Size, tr)))
	return vm
}

func (vm *VoxelModel) translucency() voxel.Translucency {
	if len(vm.ior) == 0 {
		return voxel.Opaque
	}
	return voxel.TranslucentIn(vm.ior)
}

// newState returns the state for the given grid, surface and counts,
// classifying the model as translucent or opaque.
func (vm *VoxelModel) newState(g *voxel.Grid, surf *mesh.Surface, visible voxel.Counts) *State {
	st := &State{Grid: g, Surface: surf, Mesh: surf.Mesh(vm.MeshOptions), Visible: visible,
		Material: vm.opaque, MaterialLabel: OpaqueMaterial}
	st.IOR, st.Translucent = visible.IOR(vm.ior)
	if st.Translucent {
		st.MaterialLabel = vm.Name + MaterialSuffix
		if vm.material != nil {
			st.Material = vm.material.Translucent(st.IOR, voxel.Thickness(g.Size))
		}
	}
	return st
}

// State returns the current state.
func (vm *VoxelModel) State() *State { return vm.state.Load() }

// Mesh returns the current mesh.
func (vm *VoxelModel) Mesh() *mesh.Mesh { return vm.State().Mesh }

// Material returns the current material and its label.
func (vm *VoxelModel) Material() (*palette.Material, string) {
	st := vm.State()
	return st.Material, st.MaterialLabel
}

// IsTranslucent returns whether the model has visible translucent voxels.
func (vm *VoxelModel) IsTranslucent() bool { return vm.State().Translucent }

// MeshLabel returns the label of the mesh of the model.
func (vm *VoxelModel) MeshLabel() string { return vm.Name + MeshSuffix }

// Label returns the label of the model itself.
func (vm *VoxelModel) Label() string { return vm.Name + ModelSuffix }

// Size returns the size of the model grid.
func (vm *VoxelModel) Size() math32.Vector3i { return vm.State().Grid.Size }

// VoxelAt returns the voxel at p, in grid coordinates.
func (vm *VoxelModel) VoxelAt(p math32.Vector3i) (voxel.Voxel, error) {
	g := vm.State().Grid
	if !g.InBounds(p) {
		return voxel.Empty, fmt.Errorf("%w: %v in %v", ErrOutOfBounds, p, g.Size)
	}
	return g.At(p), nil
}

// PointToVoxel returns the grid position of the voxel containing a
// point given in the local space of the mesh: Y-up and centered.
func (vm *VoxelModel) PointToVoxel(local math32.Vector3) math32.Vector3i {
	p := voxel.FromYUp(local).Add(voxel.Center(vm.Size()))
	return math32.Vec3i(int32(math32.Floor(p.X)), int32(math32.Floor(p.Y)), int32(math32.Floor(p.Z)))
}

// VoxelToPoint returns the center of the voxel at grid position p,
// in the local space of the mesh.
func (vm *VoxelModel) VoxelToPoint(p math32.Vector3i) math32.Vector3 {
	c := math32.Vec3(float32(p.X)+0.5, float32(p.Y)+0.5, float32(p.Z)+0.5)
	return voxel.ToYUp(c.Sub(voxel.Center(vm.Size())))
}
