// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package voxel

import "cogentcore.org/core/math32"

// ToYUp converts a vector from the .vox Z-up convention to Y-up:
// (x, y, z) becomes (x, z, -y).
func ToYUp(v math32.Vector3) math32.Vector3 {
	return math32.Vec3(v.X, v.Z, -v.Y)
}

// FromYUp is the inverse of [ToYUp].
func FromYUp(v math32.Vector3) math32.Vector3 {
	return math32.Vec3(v.X, -v.Z, v.Y)
}

// ToYUpi is [ToYUp] for integer vectors.
func ToYUpi(v math32.Vector3i) math32.Vector3i {
	return math32.Vec3i(v.X, v.Z, -v.Y)
}

// FromYUpi is [FromYUp] for integer vectors.
func FromYUpi(v math32.Vector3i) math32.Vector3i {
	return math32.Vec3i(v.X, -v.Z, v.Y)
}

// Center returns the center of a grid of the given size, in grid space.
// Meshes are centered on it.
func Center(size math32.Vector3i) math32.Vector3 {
	return math32.Vec3(float32(size.X), float32(size.Y), float32(size.Z)).MulScalar(0.5)
}
