// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the options of a [Loader].
type Settings struct {
	// MeshOuterFaces is whether the outermost faces of models are meshed.
	// Turn it off for models whose outer faces are never seen, such as
	// the tiles of a 3D tileset.
	MeshOuterFaces bool `default:"true" toml:"mesh_outer_faces" yaml:"mesh_outer_faces"`

	// EmissionStrength multiplies the emission of every material.
	EmissionStrength float32 `default:"2" toml:"emission_strength" yaml:"emission_strength"`

	// UsesSRGB is whether palette colors are sRGB encoded, which more
	// accurately reflects the colors shown in MagicaVoxel.
	UsesSRGB bool `default:"true" toml:"uses_srgb" yaml:"uses_srgb"`

	// DiffuseRoughness is the roughness of the "diffuse" material type,
	// which MagicaVoxel does not let users adjust.
	DiffuseRoughness float32 `default:"0.8" toml:"diffuse_roughness" yaml:"diffuse_roughness"`

	// NameSeparator joins the names of nested transforms.
	NameSeparator string `default:"/" toml:"name_separator" yaml:"name_separator"`

	// FlipV flips mesh texture coordinates vertically.
	FlipV bool `default:"true" toml:"flip_v" yaml:"flip_v"`

	// Workers is the number of models meshed in parallel;
	// 0 means one per CPU.
	Workers int `toml:"workers" yaml:"workers"`
}

// Defaults sets the default values of the settings.
func (s *Settings) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(s))
}

// DefaultSettings returns new settings with default values.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.Defaults()
	return s
}

func (s *Settings) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// OpenSettings reads settings from a TOML or YAML file, selected by
// its extension, on top of the default values.
func OpenSettings(filename string) (*Settings, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s := DefaultSettings()
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		err = toml.Unmarshal(b, s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, s)
	default:
		err = fmt.Errorf("unsupported settings file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("vox settings %s: %w", filename, err)
	}
	return s, nil
}

// Save writes the settings to a TOML or YAML file, selected by its extension.
func (s *Settings) Save(filename string) error {
	var b []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		b, err = toml.Marshal(s)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(s)
	default:
		err = fmt.Errorf("unsupported settings file extension %q", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
