// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dotvox

import (
	"bytes"
	"encoding/binary"
	"maps"
	"slices"
)

// Encode writes the document in the .vox format. The output decodes
// back to an equivalent document with [Decode].
func Encode(doc *Document) []byte {
	var kids writer
	for _, m := range doc.Models {
		var sz writer
		sz.int32(m.Size.X)
		sz.int32(m.Size.Y)
		sz.int32(m.Size.Z)
		kids.chunk("SIZE", sz.Bytes(), nil)
		var xyzi writer
		xyzi.int32(int32(len(m.Voxels)))
		for _, v := range m.Voxels {
			xyzi.Write([]byte{v.X, v.Y, v.Z, v.Index})
		}
		kids.chunk("XYZI", xyzi.Bytes(), nil)
	}
	for id, nd := range doc.Nodes {
		var w writer
		w.int32(int32(id))
		w.dict(nd.Attributes)
		switch nd.Kind {
		case TransformNode:
			w.int32(int32(nd.Child))
			w.int32(-1)
			w.int32(int32(nd.Layer))
			w.int32(int32(len(nd.Frames)))
			for _, f := range nd.Frames {
				w.dict(f.Attributes)
			}
			kids.chunk("nTRN", w.Bytes(), nil)
		case GroupNode:
			w.int32(int32(len(nd.Children)))
			for _, c := range nd.Children {
				w.int32(int32(c))
			}
			kids.chunk("nGRP", w.Bytes(), nil)
		case ShapeNode:
			w.int32(int32(len(nd.Models)))
			for _, m := range nd.Models {
				w.int32(int32(m.ModelID))
				w.dict(m.Attributes)
			}
			kids.chunk("nSHP", w.Bytes(), nil)
		}
	}
	for _, l := range doc.Layers {
		var w writer
		w.int32(int32(l.ID))
		w.dict(l.Attributes)
		w.int32(-1)
		kids.chunk("LAYR", w.Bytes(), nil)
	}
	if doc.Palette != nil {
		var w writer
		for i := 1; i <= PaletteSize; i++ {
			c := [4]byte{}
			if i < len(doc.Palette) {
				p := doc.Palette[i]
				c = [4]byte{p.R, p.G, p.B, p.A}
			}
			w.Write(c[:])
		}
		kids.chunk("RGBA", w.Bytes(), nil)
	}
	for _, m := range doc.Materials {
		if m.Properties == nil {
			continue
		}
		var w writer
		w.int32(int32(m.ID))
		w.dict(m.Properties)
		kids.chunk("MATL", w.Bytes(), nil)
	}
	var out writer
	out.WriteString(Magic)
	out.int32(int32(max(doc.Version, 150)))
	out.chunk("MAIN", nil, kids.Bytes())
	return out.Bytes()
}

type writer struct {
	bytes.Buffer
}

func (w *writer) int32(v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.Write(b[:])
}

func (w *writer) string(s string) {
	w.int32(int32(len(s)))
	w.WriteString(s)
}

// dict writes the entries in sorted key order so output is deterministic.
func (w *writer) dict(d Dict) {
	w.int32(int32(len(d)))
	for _, k := range slices.Sorted(maps.Keys(d)) {
		w.string(k)
		w.string(d[k])
	}
}

func (w *writer) chunk(id string, content, children []byte) {
	w.WriteString(id)
	w.int32(int32(len(content)))
	w.int32(int32(len(children)))
	w.Write(content)
	w.Write(children)
}
