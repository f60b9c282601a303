package capability

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reload results reported to a ReloadObserver.
const (
	ReloadSuccess = "success"
	ReloadError   = "error"
)

// MaxFileSize bounds the capability file.
const MaxFileSize = 1 << 20

// File is the on-disk capability document:
//
//	categories:
//	  book: [alpha_sort]
//	  film: [alpha_sort, featured]
type File struct {
	Categories map[string][]string `yaml:"categories"`
}

// ReloadObserver receives the outcome of each reload.
type ReloadObserver interface {
	RecordRegistryReload(result string, categories int)
}

// Parse decodes a capability document. path is used only in errors.
func Parse(data []byte, path string) (map[string][]string, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string][]string{}, nil
		}
		return nil, &ParseError{FilePath: path, Message: "invalid YAML", Cause: err}
	}

	for name := range f.Categories {
		if strings.TrimSpace(name) == "" {
			return nil, &ParseError{FilePath: path, Message: "category names must not be empty"}
		}
	}
	if f.Categories == nil {
		f.Categories = map[string][]string{}
	}
	return f.Categories, nil
}

// LoadFile reads and parses a capability file.
func LoadFile(path string) (map[string][]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Cause: err}
	}
	if info.Size() > MaxFileSize {
		return nil, &LoadError{FilePath: path, Cause: errors.New("file exceeds 1 MiB")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Cause: err}
	}
	return Parse(data, path)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the loader logger.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithReloadObserver reports reload outcomes to o.
func WithReloadObserver(o ReloadObserver) LoaderOption {
	return func(l *Loader) {
		l.observer = o
	}
}

// Loader fills a Registry from inline configuration and an optional file.
// File entries replace inline entries for the same category.
type Loader struct {
	registry *Registry
	path     string
	inline   map[string][]string
	observer ReloadObserver
	logger   *slog.Logger
}

// NewLoader creates a loader for registry. path may be empty.
func NewLoader(registry *Registry, path string, inline map[string][]string, opts ...LoaderOption) *Loader {
	l := &Loader{
		registry: registry,
		path:     path,
		inline:   inline,
		logger:   slog.Default().With("component", "capability.loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the watched capability file, if any.
func (l *Loader) Path() string {
	return l.path
}

// Reload rebuilds the registry. On failure the previous snapshot stays
// in place.
func (l *Loader) Reload() error {
	merged := make(map[string][]string, len(l.inline))
	for name, features := range l.inline {
		merged[name] = features
	}

	if l.path != "" {
		fromFile, err := LoadFile(l.path)
		if err != nil {
			l.record(ReloadError)
			l.logger.Error("capability reload failed",
				"path", l.path,
				"error", err,
			)
			return err
		}
		for name, features := range fromFile {
			merged[name] = features
		}
	}

	previous := l.registry.Version()
	l.registry.Replace(merged)
	l.record(ReloadSuccess)

	if l.registry.Version() != previous {
		l.logger.Info("capabilities loaded",
			"path", l.path,
			"categories", l.registry.Count(),
			"version", l.registry.Version(),
		)
	}
	return nil
}

func (l *Loader) record(result string) {
	if l.observer != nil {
		l.observer.RecordRegistryReload(result, l.registry.Count())
	}
}
