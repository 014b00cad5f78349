// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/vox/dotvox"
	"cogentcore.org/vox/voxel"
)

// DefaultSeparator joins the names of nested transforms.
const DefaultSeparator = "/"

// ModelSeparator joins the inherited name of a shape with the own
// name of one of its models.
const ModelSeparator = "-"

// FallbackName returns the name of a model that has no name.
func FallbackName(index int) string {
	return fmt.Sprintf("model-%d", index)
}

// Resolve resolves the node graph rooted at nodes[root], depth-first.
// A Transform joins its _name to the name it inherits with sep;
// a Group passes the name it inherits to each of its children; and
// a Shape names each of its models with the inherited name, falling
// back on [FallbackName]. Child ids out of range and cycles are skipped
// with a warning. It returns nil when root is out of range.
func Resolve(nodes []dotvox.Node, root int, sep string) *Node {
	if sep == "" {
		sep = DefaultSeparator
	}
	r := &resolver{nodes: nodes, sep: sep, path: map[int]bool{}}
	return r.resolve(root, "")
}

type resolver struct {
	nodes []dotvox.Node
	sep   string

	// path has the ids of the nodes being resolved.
	path map[int]bool
}

func (r *resolver) resolve(id int, inherited string) *Node {
	if id < 0 || id >= len(r.nodes) {
		slog.Warn("vox scene: node id out of range", "id", id, "nodes", len(r.nodes))
		return nil
	}
	if r.path[id] {
		slog.Warn("vox scene: cycle in node graph", "id", id)
		return nil
	}
	r.path[id] = true
	defer delete(r.path, id)

	src := &r.nodes[id]
	n := &Node{Transform: Identity(), Layer: -1}
	switch src.Kind {
	case dotvox.TransformNode:
		n.Kind = Transform
		n.Name = join(inherited, src.Attributes["_name"], r.sep)
		n.Hidden = src.Attributes.Bool("_hidden")
		n.Layer = src.Layer
		if len(src.Frames) > 0 {
			n.Transform = frameTransform(&src.Frames[0])
		}
		if c := r.resolve(src.Child, n.Name); c != nil {
			n.Children = []*Node{c}
		}
	case dotvox.GroupNode:
		n.Kind = Group
		for _, cid := range src.Children {
			if c := r.resolve(cid, inherited); c != nil {
				n.Children = append(n.Children, c)
			}
		}
	case dotvox.ShapeNode:
		n.Kind = Shape
		for _, m := range src.Models {
			name := join(inherited, m.Attributes["_name"], ModelSeparator)
			if name == "" {
				name = FallbackName(m.ModelID)
			}
			n.Models = append(n.Models, ShapeModel{Index: m.ModelID, Name: name})
		}
	}
	return n
}

// join returns parent and local joined by sep when both are set,
// else whichever one is set.
func join(parent, local, sep string) string {
	switch {
	case parent == "":
		return local
	case local == "":
		return parent
	}
	return parent + sep + local
}

// frameTransform returns the transform of a frame in the Y-up convention.
func frameTransform(f *dotvox.Frame) math32.Matrix4 {
	m := Identity()
	rot, _ := f.Rotation()
	rows := rot.Rows()
	// column j is the image of Y-up basis vector j
	for j := range 3 {
		var e math32.Vector3
		e.SetDim(math32.Dims(j), 1)
		z := voxel.FromYUp(e)
		var rz math32.Vector3
		for i := range 3 {
			rz.SetDim(math32.Dims(i), rows[i][0]*z.X+rows[i][1]*z.Y+rows[i][2]*z.Z)
		}
		c := voxel.ToYUp(rz)
		m[j*4], m[j*4+1], m[j*4+2] = c.X, c.Y, c.Z
	}
	if t, ok := f.Translation(); ok {
		ty := voxel.ToYUp(math32.Vec3(float32(t.X), float32(t.Y), float32(t.Z)))
		m[12], m[13], m[14] = ty.X, ty.Y, ty.Z
	}
	return m
}

// ModelNames returns the resolved name of each of n models, indexed by
// model index. When a model is referenced more than once the last
// reference in traversal order wins; unreferenced models get
// [FallbackName].
func ModelNames(root *Node, n int) []string {
	names := make([]string, n)
	root.Walk(func(nd *Node) bool {
		for _, m := range nd.Models {
			if m.Index >= 0 && m.Index < n {
				names[m.Index] = m.Name
			}
		}
		return true
	})
	for i, nm := range names {
		if nm == "" {
			names[i] = FallbackName(i)
		}
	}
	return names
}

// NodesByName returns the named nodes of the tree by name. When two
// nodes have the same name, the later one in traversal order wins.
func NodesByName(root *Node) map[string]*Node {
	byName := map[string]*Node{}
	root.Walk(func(nd *Node) bool {
		if nd.Name != "" {
			byName[nd.Name] = nd
		}
		return true
	})
	return byName
}
