// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dotvox

import (
	"github.com/h2non/filetype"
)

// Extension is the file extension of .vox files, without the dot.
const Extension = "vox"

// Type is the file type registered with [filetype] for .vox data,
// so that filetype.Is(buf, "vox") and filetype.Match recognize it.
var Type = filetype.NewType(Extension, "model/x-magicavoxel")

func init() {
	filetype.AddMatcher(Type, Match)
}

// Match reports whether buf starts with the .vox signature.
func Match(buf []byte) bool {
	return len(buf) >= len(Magic) && string(buf[:len(Magic)]) == Magic
}
