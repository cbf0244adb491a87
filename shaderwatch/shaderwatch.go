// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaderwatch signals when shader source files change, so
// that a render loop can rebuild its programs. It never calls into
// OpenGL itself.
package shaderwatch

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/gldraw/base/errors"
)

// Watcher watches a set of files. Editors often save by replacing a
// file, so the directories of the files are watched and events are
// filtered by name.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changes chan struct{}
	done    chan struct{}
}

// New starts watching the given files.
func New(files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Log(err)
	}
	w := &Watcher{
		watcher: fw,
		files:   make(map[string]bool, len(files)),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, errors.Log(err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Log(err)
		}
	}
	go w.run()
	return w, nil
}

// Changes returns the channel that receives a value after any of the
// files has changed. Changes made before the value is received are
// coalesced into one.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching. The Changes channel is not closed.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			slog.Debug("shaderwatch: changed", "file", event.Name, "op", event.Op.String())
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("shaderwatch: watcher error: " + err.Error())
		}
	}
}
