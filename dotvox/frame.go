// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dotvox

import (
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
)

// Frame is one animation frame of a TransformNode.
type Frame struct {
	Attributes Dict
}

// Translation returns the _t attribute of the frame, in the file's Z-up space.
func (f *Frame) Translation() (math32.Vector3i, bool) {
	s, ok := f.Attributes["_t"]
	if !ok {
		return math32.Vector3i{}, false
	}
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return math32.Vector3i{}, false
	}
	var v [3]int32
	for i, fs := range fields {
		n, err := strconv.ParseInt(fs, 10, 32)
		if err != nil {
			return math32.Vector3i{}, false
		}
		v[i] = int32(n)
	}
	return math32.Vec3i(v[0], v[1], v[2]), true
}

// Rotation returns the _r attribute of the frame.
func (f *Frame) Rotation() (Rotation, bool) {
	s, ok := f.Attributes["_r"]
	if !ok {
		return IdentityRotation, false
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return IdentityRotation, false
	}
	return Rotation(n), true
}

// Rotation is a packed signed permutation matrix:
// bits 0-1 give the column of the non-zero entry of row 0,
// bits 2-3 that of row 1 (row 2 takes the remaining column),
// and bits 4, 5, 6 are set when rows 0, 1, 2 are negative.
type Rotation uint8

// IdentityRotation is the rotation with no effect.
const IdentityRotation Rotation = 0b0000100

// Valid returns whether the two column indexes are distinct and in range.
func (r Rotation) Valid() bool {
	c0 := int(r & 3)
	c1 := int((r >> 2) & 3)
	return c0 < 3 && c1 < 3 && c0 != c1
}

// Rows returns the rotation as a row-major 3x3 matrix.
// An invalid rotation returns the identity.
func (r Rotation) Rows() [3][3]float32 {
	var m [3][3]float32
	if !r.Valid() {
		m[0][0], m[1][1], m[2][2] = 1, 1, 1
		return m
	}
	c0 := int(r & 3)
	c1 := int((r >> 2) & 3)
	c2 := 3 - c0 - c1
	cols := [3]int{c0, c1, c2}
	for row, col := range cols {
		v := float32(1)
		if r&(1<<(4+row)) != 0 {
			v = -1
		}
		m[row][col] = v
	}
	return m
}
