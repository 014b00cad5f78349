// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package voxel

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// RegionModes select which voxels an edit visits.
type RegionModes int32

const (
	// Box visits the voxels of the [Region].
	Box RegionModes = iota

	// Full visits every voxel of the model.
	Full
)

func (m RegionModes) String() string {
	if m == Full {
		return "Full"
	}
	return "Box"
}

// Region is an axis-aligned integer box. A valid region has
// positive extent on every axis.
type Region struct {
	Origin math32.Vector3i
	Size   math32.Vector3i
}

// NewRegion returns the region with the given origin and size.
func NewRegion(origin, size math32.Vector3i) Region {
	return Region{Origin: origin, Size: size}
}

func (r Region) String() string {
	return fmt.Sprintf("Region(%v, %v, %v; %v x %v x %v)", r.Origin.X, r.Origin.Y, r.Origin.Z, r.Size.X, r.Size.Y, r.Size.Z)
}

// Valid returns whether the region has positive extent on every axis.
func (r Region) Valid() bool {
	return r.Size.X > 0 && r.Size.Y > 0 && r.Size.Z > 0
}

// Max returns the exclusive upper corner of the region.
func (r Region) Max() math32.Vector3i {
	return r.Origin.Add(r.Size)
}

// Contains returns whether p is inside of the region.
func (r Region) Contains(p math32.Vector3i) bool {
	mx := r.Max()
	return p.X >= r.Origin.X && p.Y >= r.Origin.Y && p.Z >= r.Origin.Z && p.X < mx.X && p.Y < mx.Y && p.Z < mx.Z
}

// Clip returns the part of the region inside of a grid of the given
// size, and whether it is valid.
func (r Region) Clip(size math32.Vector3i) (Region, bool) {
	lo := r.Origin.Max(math32.Vector3i{})
	hi := r.Max().Min(size)
	c := Region{Origin: lo, Size: hi.Sub(lo)}
	return c, c.Valid()
}

// Expand returns the region grown by n cells on every side.
func (r Region) Expand(n int32) Region {
	return Region{Origin: r.Origin.SubScalar(n), Size: r.Size.AddScalar(2 * n)}
}
