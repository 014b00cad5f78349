// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"

	"cogentcore.org/vox/dotvox"
	"cogentcore.org/vox/model"
)

// VoxelScene is a root node with the models and layers of the file
// it comes from. The named sub-scenes of a file share the model list
// and layer table of the primary scene.
type VoxelScene struct {
	Root   *Node
	Models []*model.VoxelModel
	Layers []LayerInfo
}

// Layers returns the layer table of a document.
func Layers(doc *dotvox.Document) []LayerInfo {
	ls := make([]LayerInfo, len(doc.Layers))
	for i := range doc.Layers {
		ls[i] = LayerInfo{Name: doc.Layers[i].Name(), Hidden: doc.Layers[i].Hidden()}
	}
	return ls
}

// Synthesize returns a root group with one shape per model, named
// with names, for files without a node graph.
func Synthesize(names []string) *Node {
	root := &Node{Kind: Group, Transform: Identity(), Layer: -1}
	for i, nm := range names {
		root.Children = append(root.Children, &Node{Kind: Shape, Transform: Identity(), Layer: -1,
			Models: []ShapeModel{{Index: i, Name: nm}}})
	}
	return root
}

// SubScene returns the scene rooted at node, sharing the models and
// layers of sc.
func (sc *VoxelScene) SubScene(node *Node) *VoxelScene {
	return &VoxelScene{Root: node, Models: sc.Models, Layers: sc.Layers}
}

// SubScenes returns the sub-scenes of every named node of sc by name.
func (sc *VoxelScene) SubScenes() map[string]*VoxelScene {
	byName := NodesByName(sc.Root)
	subs := make(map[string]*VoxelScene, len(byName))
	for nm, nd := range byName {
		subs[nm] = sc.SubScene(nd)
	}
	return subs
}

// ModelsOf returns the models referenced by the subtree of node,
// in traversal order and without duplicates.
func (sc *VoxelScene) ModelsOf(node *Node) []*model.VoxelModel {
	var ms []*model.VoxelModel
	node.Walk(func(n *Node) bool {
		for _, m := range n.Models {
			if m.Index < 0 || m.Index >= len(sc.Models) {
				continue
			}
			if vm := sc.Models[m.Index]; !slices.Contains(ms, vm) {
				ms = append(ms, vm)
			}
		}
		return true
	})
	return ms
}

// VisibleLayer returns whether the layer with the given id is shown.
// Nodes without a layer are always shown.
func (sc *VoxelScene) VisibleLayer(id int) bool {
	if id < 0 || id >= len(sc.Layers) {
		return true
	}
	return !sc.Layers[id].Hidden
}
