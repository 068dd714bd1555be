package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/pubkit/core/logger"
)

// Watcher reloads a config file on change and reports each decoded value.
type Watcher[T any] struct {
	path     string
	base     T
	onChange func(T)
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// WatchOption configures a Watcher.
type WatchOption func(*watchOptions)

type watchOptions struct {
	logger *slog.Logger
}

// WithWatchLogger sets the logger used for reload and decode errors.
func WithWatchLogger(log *slog.Logger) WatchOption {
	return func(o *watchOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// NewWatcher starts watching path. Each reload decodes the file on top of a
// copy of base. The parent directory is watched so that editors that
// replace files by rename are handled.
func NewWatcher[T any](path string, base T, onChange func(T), opts ...WatchOption) (*Watcher[T], error) {
	o := watchOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchingFile, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchingFile, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrWatchingFile, path, err)
	}

	return &Watcher[T]{
		path:     abs,
		base:     base,
		onChange: onChange,
		logger:   o.logger,
		fsw:      fsw,
	}, nil
}

// Run processes file events until ctx is canceled. It always closes the
// underlying watcher and returns nil on cancellation.
func (w *Watcher[T]) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload(ctx)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "config watcher error",
				logger.Component("config"),
				logger.File(w.path),
				logger.Error(err),
			)
		}
	}
}

func (w *Watcher[T]) reload(ctx context.Context) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.WarnContext(ctx, "config reload failed", logger.Component("config"), logger.File(w.path), logger.Error(err))
		return
	}

	next := w.base
	if err := decode(w.path, data, &next); err != nil {
		w.logger.WarnContext(ctx, "config reload failed", logger.Component("config"), logger.File(w.path), logger.Error(err))
		return
	}

	w.logger.InfoContext(ctx, "config reloaded", logger.Component("config"), logger.File(w.path))
	w.onChange(next)
}

// Watch is NewWatcher followed by Run.
func Watch[T any](ctx context.Context, path string, base T, onChange func(T), opts ...WatchOption) error {
	w, err := NewWatcher(path, base, onChange, opts...)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
