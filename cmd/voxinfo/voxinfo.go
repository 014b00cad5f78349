// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command voxinfo loads a MagicaVoxel .vox file and prints its
// labeled assets, optionally saving the palette textures as PNG files.
package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"cogentcore.org/core/cli"
	"cogentcore.org/vox/loader"
	"cogentcore.org/vox/mesh"
	"cogentcore.org/vox/model"
	"cogentcore.org/vox/palette"
	"cogentcore.org/vox/scene"
	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/draw"
)

// Config is the configuration of voxinfo.
type Config struct {

	// Input is the .vox file to load.
	Input string `posarg:"0"`

	// Settings is an optional TOML or YAML file of loader settings.
	Settings string `flag:"s,settings"`

	// Textures is a directory to save the palette textures to as PNG files.
	Textures string `flag:"t,textures"`

	// Scale is the factor by which saved textures are enlarged.
	Scale int `default:"8"`
}

func main() {
	opts := cli.DefaultOptions("voxinfo", "Voxinfo prints the assets of a MagicaVoxel .vox file.")
	cli.Run(opts, &Config{}, Info)
}

// Info loads the input file and prints its assets.
func Info(c *Config) error {
	s := loader.DefaultSettings()
	if c.Settings != "" {
		var err error
		s, err = loader.OpenSettings(c.Settings)
		if err != nil {
			return err
		}
	}
	as, err := loader.New(s).LoadFile(c.Input)
	if err != nil {
		return err
	}
	fmt.Printf("%s: version %d, id %s\n", as.Path, as.Document.Version, as.ID)
	for _, label := range as.Labels() {
		v, err := as.Get(label)
		if err != nil {
			return err
		}
		fmt.Printf("%-32q %s\n", label, describe(v))
	}
	if c.Textures == "" {
		return nil
	}
	if err := os.MkdirAll(c.Textures, 0777); err != nil {
		return err
	}
	for _, kv := range as.Textures.Order {
		fn := filepath.Join(c.Textures, string(kv.Key)+".png")
		if err := imgio.Save(fn, scale(kv.Value.Image(), c.Scale), imgio.PNGEncoder()); err != nil {
			return err
		}
		fmt.Println("saved", fn)
	}
	return nil
}

func describe(v any) string {
	switch v := v.(type) {
	case *scene.VoxelScene:
		return fmt.Sprintf("scene: %s %q with %d models", v.Root.Kind, v.Root.Name, len(v.ModelsOf(v.Root)))
	case *model.VoxelModel:
		st := v.State()
		_, mlabel := v.Material()
		return fmt.Sprintf("model %d: size %v, %d visible voxels, material %q", v.Index, st.Grid.Size, st.Visible.Total(), mlabel)
	case *palette.Material:
		return fmt.Sprintf("material: ior %g, transmission %g, thickness %g", v.IOR, v.SpecularTransmission, v.Thickness)
	case *palette.Palette:
		return fmt.Sprintf("palette: emission %s, srgb %v", v.Emission, v.SRGB)
	case *palette.Texture:
		return fmt.Sprintf("texture: %dx%d %s", v.Width, v.Height, v.Format)
	case *mesh.Mesh:
		return fmt.Sprintf("mesh: %d vertices, %d indices", v.NumVertex(), v.NumIndex())
	}
	return fmt.Sprintf("%T", v)
}

// scale enlarges img by the given factor without smoothing.
func scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA64(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
