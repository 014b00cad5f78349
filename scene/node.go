// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene resolves the node graph of a .vox file into a tree
// of named [Node]s, and assembles [VoxelScene]s from it.
package scene

import (
	"strconv"

	"cogentcore.org/core/math32"
)

// NodeKinds are the kinds of [Node].
type NodeKinds int32

const (
	// Transform has a local transform and a single child.
	Transform NodeKinds = iota

	// Group has an ordered list of children.
	Group

	// Shape is a leaf referencing one or more models.
	Shape
)

func (k NodeKinds) String() string {
	switch k {
	case Transform:
		return "Transform"
	case Group:
		return "Group"
	case Shape:
		return "Shape"
	}
	return "NodeKinds(" + strconv.Itoa(int(k)) + ")"
}

// Node is one resolved scene node.
type Node struct {
	Kind NodeKinds

	// Name is the composed path-style name of a Transform node,
	// or "" when it and all of its ancestors are unnamed.
	Name string

	// Transform is the local transform of a Transform node in
	// the Y-up convention, and the identity for other kinds.
	Transform math32.Matrix4

	// Hidden is whether a Transform node is hidden in the editor.
	Hidden bool

	// Layer is the layer id of a Transform node, or -1.
	Layer int

	// Children are the child nodes: one for a Transform,
	// any number for a Group, and none for a Shape.
	Children []*Node

	// Models are the models of a Shape node.
	Models []ShapeModel
}

// ShapeModel is one model referenced by a Shape node.
type ShapeModel struct {
	// Index is the model index in the file.
	Index int

	// Name is the resolved name of the model.
	Name string
}

// Walk calls fn for n and its descendants, depth-first in order.
// It stops descending into a node when fn returns false.
func (n *Node) Walk(fn func(n *Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Identity returns the identity matrix.
func Identity() math32.Matrix4 {
	return math32.Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns the translation part of a transform.
func Translation(m math32.Matrix4) math32.Vector3 {
	return math32.Vec3(m[12], m[13], m[14])
}

// LayerInfo is the name and visibility of one layer.
type LayerInfo struct {
	Name   string
	Hidden bool
}
