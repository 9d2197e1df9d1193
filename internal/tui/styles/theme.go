package styles

import (
	"github.com/cb-innovatekare/hokage/internal/config"
)

// Watcher reloads a theme file whenever it changes on disk.
type Watcher struct {
	fw *config.FileWatcher
}

// WatchTheme loads path once and then calls onChange with freshly built
// Styles after every change. Parse failures go to onError and keep the
// previous styles in place.
func WatchTheme(path string, onChange func(*Styles), onError func(error)) (*Styles, *Watcher, error) {
	initial, err := LoadStyles(path)
	if err != nil {
		return nil, nil, err
	}

	fw, err := config.WatchFile(path, func(string) {
		s, err := LoadStyles(path)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(s)
	}, onError)
	if err != nil {
		return nil, nil, err
	}
	return initial, &Watcher{fw: fw}, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	if w == nil || w.fw == nil {
		return nil
	}
	return w.fw.Close()
}

// LoadStyles builds Styles from a theme file, or the default palette when
// path is empty.
func LoadStyles(path string) (*Styles, error) {
	if path == "" {
		return New(DefaultPalette()), nil
	}
	theme, err := LoadThemeFile(path)
	if err != nil {
		return nil, err
	}
	return New(theme.ToPalette()), nil
}
