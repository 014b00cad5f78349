// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dotvox

import (
	"encoding/binary"
	"fmt"
	"image/color"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

// Magic is the 4 byte signature of a .vox file.
const Magic = "VOX "

// ErrInvalid is returned (wrapped) for any malformed input.
var ErrInvalid = errors.New("dotvox: invalid .vox data")

// Decode decodes a complete .vox file held in b.
func Decode(b []byte) (*Document, error) {
	r := &reader{buf: b}
	magic, err := r.bytes(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalid, magic)
	}
	version, err := r.int32()
	if err != nil {
		return nil, err
	}
	doc := &Document{Version: int(version)}
	id, _, children, err := r.chunk()
	if err != nil {
		return nil, err
	}
	if id != "MAIN" {
		return nil, fmt.Errorf("%w: first chunk is %q, not MAIN", ErrInvalid, id)
	}
	d := &decoder{Document: doc, maxID: int32(len(children) / minNodeChunk)}
	if err := d.readChunks(&reader{buf: children}); err != nil {
		return nil, err
	}
	return doc, nil
}

// minNodeChunk is the size of the smallest node or layer chunk:
// a chunk header, an id, an empty dict and one more int32.
const minNodeChunk = 24

// decoder fills a Document from the chunks of a MAIN chunk.
type decoder struct {
	*Document

	// maxID bounds node and layer ids: ids are dense, so a valid file
	// has fewer of them than it has room for node chunks.
	maxID int32
}

func (d *decoder) readChunks(r *reader) error {
	for !r.done() {
		id, content, children, err := r.chunk()
		if err != nil {
			return err
		}
		cr := &reader{buf: content}
		switch id {
		case "SIZE":
			err = d.readSize(cr)
		case "XYZI":
			err = d.readVoxels(cr)
		case "RGBA":
			err = d.readPalette(cr)
		case "MATL":
			err = d.readMaterial(cr)
		case "nTRN":
			err = d.readTransform(cr)
		case "nGRP":
			err = d.readGroup(cr)
		case "nSHP":
			err = d.readShape(cr)
		case "LAYR":
			err = d.readLayer(cr)
		}
		if err != nil {
			return fmt.Errorf("%s chunk: %w", id, err)
		}
		if len(children) > 0 {
			if err := d.readChunks(&reader{buf: children}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) readSize(r *reader) error {
	var v [3]int32
	for i := range v {
		n, err := r.int32()
		if err != nil {
			return err
		}
		if n < 0 || n > MaxSize {
			return fmt.Errorf("%w: model size %d out of range [0, %d]", ErrInvalid, n, MaxSize)
		}
		v[i] = n
	}
	d.Models = append(d.Models, Model{Size: math32.Vec3i(v[0], v[1], v[2])})
	return nil
}

func (d *decoder) readVoxels(r *reader) error {
	if len(d.Models) == 0 {
		return fmt.Errorf("%w: XYZI before SIZE", ErrInvalid)
	}
	n, err := r.count(4)
	if err != nil {
		return err
	}
	raw, err := r.bytes(n * 4)
	if err != nil {
		return err
	}
	vox := make([]Voxel, n)
	for i := range vox {
		o := i * 4
		vox[i] = Voxel{X: raw[o], Y: raw[o+1], Z: raw[o+2], Index: raw[o+3]}
	}
	d.Models[len(d.Models)-1].Voxels = vox
	return nil
}

// readPalette stores the 256 colors of the chunk shifted by one,
// so that Palette[i] is the color of voxel value i.
func (d *decoder) readPalette(r *reader) error {
	raw, err := r.bytes(PaletteSize * 4)
	if err != nil {
		return err
	}
	d.Palette = make([]color.RGBA, PaletteSize)
	for i := 0; i < PaletteSize-1; i++ {
		o := i * 4
		d.Palette[i+1] = color.RGBA{raw[o], raw[o+1], raw[o+2], raw[o+3]}
	}
	return nil
}

func (d *decoder) readMaterial(r *reader) error {
	id, err := r.int32()
	if err != nil {
		return err
	}
	props, err := r.dict()
	if err != nil {
		return err
	}
	if id < 0 || id >= PaletteSize {
		return nil
	}
	if d.Materials == nil {
		d.Materials = make([]Material, PaletteSize)
		for i := range d.Materials {
			d.Materials[i].ID = i
		}
	}
	d.Materials[id] = Material{ID: int(id), Properties: props}
	return nil
}

// node returns the node with the given id, growing the node array as needed.
func (d *decoder) node(id int32) (*Node, error) {
	if id < 0 || id >= d.maxID {
		return nil, fmt.Errorf("%w: node id %d out of range [0, %d)", ErrInvalid, id, d.maxID)
	}
	for int(id) >= len(d.Nodes) {
		d.Nodes = append(d.Nodes, Node{Kind: GroupNode, Layer: -1})
	}
	return &d.Nodes[id], nil
}

func (d *decoder) readTransform(r *reader) error {
	id, err := r.int32()
	if err != nil {
		return err
	}
	attrs, err := r.dict()
	if err != nil {
		return err
	}
	child, err := r.int32()
	if err != nil {
		return err
	}
	if _, err := r.int32(); err != nil { // reserved
		return err
	}
	layer, err := r.int32()
	if err != nil {
		return err
	}
	nf, err := r.count(4)
	if err != nil {
		return err
	}
	frames := make([]Frame, 0, nf)
	for range nf {
		fa, err := r.dict()
		if err != nil {
			return err
		}
		frames = append(frames, Frame{Attributes: fa})
	}
	nd, err := d.node(id)
	if err != nil {
		return err
	}
	*nd = Node{Kind: TransformNode, Attributes: attrs, Child: int(child), Layer: int(layer), Frames: frames}
	return nil
}

func (d *decoder) readGroup(r *reader) error {
	id, err := r.int32()
	if err != nil {
		return err
	}
	attrs, err := r.dict()
	if err != nil {
		return err
	}
	nc, err := r.count(4)
	if err != nil {
		return err
	}
	children := make([]int, 0, nc)
	for range nc {
		c, err := r.int32()
		if err != nil {
			return err
		}
		children = append(children, int(c))
	}
	nd, err := d.node(id)
	if err != nil {
		return err
	}
	*nd = Node{Kind: GroupNode, Attributes: attrs, Layer: -1, Children: children}
	return nil
}

func (d *decoder) readShape(r *reader) error {
	id, err := r.int32()
	if err != nil {
		return err
	}
	attrs, err := r.dict()
	if err != nil {
		return err
	}
	nm, err := r.count(8)
	if err != nil {
		return err
	}
	models := make([]ShapeModel, 0, nm)
	for range nm {
		mid, err := r.int32()
		if err != nil {
			return err
		}
		ma, err := r.dict()
		if err != nil {
			return err
		}
		models = append(models, ShapeModel{ModelID: int(mid), Attributes: ma})
	}
	nd, err := d.node(id)
	if err != nil {
		return err
	}
	*nd = Node{Kind: ShapeNode, Attributes: attrs, Layer: -1, Models: models}
	return nil
}

func (d *decoder) readLayer(r *reader) error {
	id, err := r.int32()
	if err != nil {
		return err
	}
	attrs, err := r.dict()
	if err != nil {
		return err
	}
	if id < 0 || id >= d.maxID {
		return fmt.Errorf("%w: layer id %d out of range [0, %d)", ErrInvalid, id, d.maxID)
	}
	for int(id) >= len(d.Layers) {
		d.Layers = append(d.Layers, Layer{ID: len(d.Layers)})
	}
	d.Layers[id] = Layer{ID: int(id), Attributes: attrs}
	return nil
}

// reader is a bounds-checked little-endian cursor over a byte slice.
type reader struct {
	buf []byte
	off int
}

func (r *reader) done() bool { return r.off >= len(r.buf) }

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInvalid, n, r.off, len(r.buf)-r.off)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) int32() (int32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// count reads the number of entries that follow, each of which
// takes at least size bytes, and checks that they fit in the input.
func (r *reader) count(size int) (int, error) {
	n, err := r.int32()
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > (len(r.buf)-r.off)/size {
		return 0, fmt.Errorf("%w: count %d at offset %d exceeds the %d bytes left", ErrInvalid, n, r.off-4, len(r.buf)-r.off)
	}
	return int(n), nil
}

func (r *reader) string() (string, error) {
	n, err := r.int32()
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) dict() (Dict, error) {
	n, err := r.count(8)
	if err != nil {
		return nil, err
	}
	d := make(Dict, n)
	for range n {
		k, err := r.string()
		if err != nil {
			return nil, err
		}
		v, err := r.string()
		if err != nil {
			return nil, err
		}
		d[k] = v
	}
	return d, nil
}

// chunk reads one chunk header and returns its id, content and children.
func (r *reader) chunk() (id string, content, children []byte, err error) {
	idb, err := r.bytes(4)
	if err != nil {
		return "", nil, nil, err
	}
	nc, err := r.int32()
	if err != nil {
		return "", nil, nil, err
	}
	nch, err := r.int32()
	if err != nil {
		return "", nil, nil, err
	}
	content, err = r.bytes(int(nc))
	if err != nil {
		return "", nil, nil, err
	}
	children, err = r.bytes(int(nch))
	if err != nil {
		return "", nil, nil, err
	}
	return string(idb), content, children, nil
}
