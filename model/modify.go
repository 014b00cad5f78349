// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/vox/voxel"
)

// EditFunc returns the new voxel at pos given its current value v.
// g is the grid as it was before the edit started: it never shows
// the writes of the edit in progress.
type EditFunc func(pos math32.Vector3i, v voxel.Voxel, g voxel.Reader) voxel.Voxel

// Modify applies fn to every voxel of region, or of the whole model
// in [voxel.Full] mode, and publishes the result. The region is clipped
// to the model. Only the layers of the surface and the visible voxel
// counts within one voxel of the region are recomputed. It returns
// false and does nothing when the region is not valid or does not
// intersect the model.
func (vm *VoxelModel) Modify(mode voxel.RegionModes, region voxel.Region, fn EditFunc) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	st := vm.state.Load()
	old := st.Grid
	if mode == voxel.Full {
		region = voxel.NewRegion(math32.Vector3i{}, old.Size)
	}
	if !region.Valid() {
		return false
	}
	r, ok := region.Clip(old.Size)
	if !ok {
		return false
	}
	next := old.Clone()
	old.RangeBox(r.Origin, r.Max(), func(p math32.Vector3i, v voxel.Voxel) {
		next.Set(p, fn(p, v, old))
	})

	ex := r.Expand(1)
	tr := st.Surface.Translucent
	visible := st.Visible.
		Sub(old.CountVisible(ex.Origin, ex.Max(), tr)).
		Add(next.CountVisible(ex.Origin, ex.Max(), tr))
	surf := st.Surface.Remesh(next, r.Origin, r.Max())
	vm.state.Store(vm.newState(next, surf, visible))
	return true
}

// Fill returns an [EditFunc] that sets every voxel to v.
func Fill(v voxel.Voxel) EditFunc {
	return func(math32.Vector3i, voxel.Voxel, voxel.Reader) voxel.Voxel { return v }
}

// Repaint returns an [EditFunc] that sets every non-empty voxel to v.
func Repaint(v voxel.Voxel) EditFunc {
	return func(_ math32.Vector3i, cur voxel.Voxel, _ voxel.Reader) voxel.Voxel {
		if cur.IsEmpty() {
			return cur
		}
		return v
	}
}
