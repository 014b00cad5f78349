// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import "cogentcore.org/core/base/errors"

var (
	// ErrDecode is returned (wrapped) when the input is not a valid .vox file.
	// Nothing is loaded in that case.
	ErrDecode = errors.New("vox: decode failure")

	// ErrNoModels is returned for files without any model.
	ErrNoModels = errors.New("vox: no models found in file")

	// ErrNoLabel is returned for labels that name no asset.
	ErrNoLabel = errors.New("vox: no asset with label")
)
