package fms

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/team6458/powerup/pkg/log"
)

// FileSource reads the field message from a drop file and keeps it current by
// watching the containing directory. A missing file means "not attached",
// which lets a practice run start with no signal and pick one up later.
type FileSource struct {
	path  string
	log   log.Logger
	state latest
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a source for the given path and performs an initial
// read.
func NewFileSource(path string) *FileSource {
	f := &FileSource{
		path: path,
		log:  log.WithName("fms"),
	}
	f.reload()
	return f
}

func (f *FileSource) Message() string {
	raw, _ := f.state.get()
	return raw
}

func (f *FileSource) Attached() bool {
	_, attached := f.state.get()
	return attached
}

// Watch re-reads the file whenever it changes, until ctx is cancelled. The
// watch is on the parent directory so that editors replacing the file via
// rename are still observed.
func (f *FileSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return err
	}
	f.log.Info("watching field message file", "path", f.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name == f.path {
				f.reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.log.Error(err, "field message watch error")
		}
	}
}

func (f *FileSource) reload() {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Error(err, "failed to read field message file", "path", f.path)
		}
		f.state.set("", false)
		return
	}
	f.state.set(strings.TrimSpace(string(data)), true)
}
