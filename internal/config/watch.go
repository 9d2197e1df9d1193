package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls a callback whenever a single file is written, created or
// replaced. It watches the parent directory so that editors which save by
// renaming a temp file over the original are still observed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(path string)
	onError  func(error)

	stopOnce sync.Once
	done     chan struct{}
}

// WatchFile starts watching path. onError may be nil.
func WatchFile(path string, onChange func(path string), onError func(error)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	fw := &FileWatcher{
		watcher:  w,
		path:     abs,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *FileWatcher) loop() {
	defer close(fw.done)
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				fw.onChange(fw.path)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			if fw.onError != nil {
				fw.onError(err)
			}
		}
	}
}

// Close stops the watcher and waits for the event loop to exit.
func (fw *FileWatcher) Close() error {
	var err error
	fw.stopOnce.Do(func() {
		err = fw.watcher.Close()
		<-fw.done
	})
	return err
}
