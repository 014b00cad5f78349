// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package library caches loaded .vox files by path, resolves asset
// references of the form "file.vox#label", and reloads files when
// they change on disk.
package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/vox/loader"
	"github.com/fsnotify/fsnotify"
)

// Library is a cache of loaded files. It is safe for concurrent use.
type Library struct {
	// Loader loads every file of the library.
	Loader *loader.Loader

	// OnReload, if set, is called after a watched file is reloaded,
	// with the new assets, or the error that kept the old ones in place.
	OnReload func(path string, as *loader.Assets, err error)

	mu      sync.Mutex
	files   map[string]*loader.Assets
	watcher *fsnotify.Watcher
	watched map[string]bool
	done    chan bool
}

// New returns a new library loading files with the given settings,
// or the default settings if s is nil.
func New(s *loader.Settings) *Library {
	return &Library{Loader: loader.New(s), files: map[string]*loader.Assets{}}
}

// SplitRef splits an asset reference "file.vox#label" into the file
// path and the label, which is "" for the primary scene.
func SplitRef(ref string) (path, label string) {
	path, label, _ = strings.Cut(ref, "#")
	return
}

func clean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Open returns the assets of the given file, loading it the first time.
func (lb *Library) Open(path string) (*loader.Assets, error) {
	path = clean(path)
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if as, ok := lb.files[path]; ok {
		return as, nil
	}
	as, err := lb.Loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	lb.files[path] = as
	if lb.watcher != nil {
		lb.watchDir(path)
	}
	return as, nil
}

// Asset returns the asset of the given reference "file.vox#label".
func (lb *Library) Asset(ref string) (any, error) {
	path, label := SplitRef(ref)
	as, err := lb.Open(path)
	if err != nil {
		return nil, err
	}
	return as.Get(label)
}

// Files returns the paths of the loaded files.
func (lb *Library) Files() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	paths := make([]string, 0, len(lb.files))
	for p := range lb.files {
		paths = append(paths, p)
	}
	return paths
}

// Reload loads the given file again and replaces its cached assets.
// The cached assets are kept if loading fails.
func (lb *Library) Reload(path string) (*loader.Assets, error) {
	path = clean(path)
	as, err := lb.Loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	lb.mu.Lock()
	lb.files[path] = as
	lb.mu.Unlock()
	return as, nil
}

// Save writes the cached assets of the given file back to it,
// with the current voxels of every model.
func (lb *Library) Save(path string) error {
	path = clean(path)
	lb.mu.Lock()
	as, ok := lb.files[path]
	lb.mu.Unlock()
	if !ok {
		return fmt.Errorf("vox library: %s is not loaded", path)
	}
	return os.WriteFile(path, as.Encode(), 0666)
}

// Forget removes the given file from the cache.
func (lb *Library) Forget(path string) {
	lb.mu.Lock()
	delete(lb.files, clean(path))
	lb.mu.Unlock()
}

// Watch starts reloading the loaded files, and files loaded later,
// when they are written. It is safe to call multiple times.
func (lb *Library) Watch() error {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if lb.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	lb.watcher = w
	lb.watched = map[string]bool{}
	lb.done = make(chan bool)
	for path := range lb.files {
		lb.watchDir(path)
	}
	go lb.watch(w, lb.done)
	return nil
}

// watchDir watches the directory of path; lb.mu must be held.
func (lb *Library) watchDir(path string) {
	dir := filepath.Dir(path)
	if lb.watched[dir] {
		return
	}
	if errors.Log(lb.watcher.Add(dir)) == nil {
		lb.watched[dir] = true
	}
}

func (lb *Library) watch(w *fsnotify.Watcher, done chan bool) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				lb.update(event.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("vox library watcher", "err", err)
		}
	}
}

// update reloads path if it is in the cache.
func (lb *Library) update(path string) {
	path = clean(path)
	lb.mu.Lock()
	_, ok := lb.files[path]
	lb.mu.Unlock()
	if !ok {
		return
	}
	as, err := lb.Reload(path)
	if err != nil {
		slog.Error("vox library reload", "path", path, "err", err)
	}
	if lb.OnReload != nil {
		lb.OnReload(path, as, err)
	}
}

// Close stops watching files.
func (lb *Library) Close() error {
	lb.mu.Lock()
	w := lb.watcher
	if w == nil {
		lb.mu.Unlock()
		return nil
	}
	close(lb.done)
	lb.watcher = nil
	lb.watched = nil
	lb.done = nil
	lb.mu.Unlock()
	if err := w.Close(); err != nil {
		return fmt.Errorf("vox library: %w", err)
	}
	return nil
}
