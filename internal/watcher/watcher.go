// Package watcher feeds transcripts dropped into an inbox directory to a handler.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"textdigest/internal/service"
)

// settleDelay gives writers time to finish a freshly created file.
const settleDelay = 500 * time.Millisecond

// EventHandler handles one new transcript.
type EventHandler func(ctx context.Context, path string) error

// Watcher monitors a directory until its context is canceled.
type Watcher struct {
	inputDir  string
	handler   EventHandler
	log       *slog.Logger
	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	settle    time.Duration
	wg        sync.WaitGroup
}

// New watches inputDir, running at most maxConcurrent handlers at once.
func New(inputDir string, handler EventHandler, log *slog.Logger, maxConcurrent int) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(inputDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		inputDir:  inputDir,
		handler:   handler,
		log:       log,
		watcher:   fw,
		semaphore: make(chan struct{}, maxConcurrent),
		settle:    settleDelay,
	}, nil
}

// Start blocks dispatching new .txt files to the handler. On cancellation
// it waits for running handlers and returns ctx.Err().
func (w *Watcher) Start(ctx context.Context) error {
	w.log.InfoContext(ctx, "watching for transcripts", "dir", w.inputDir, "max_concurrent", cap(w.semaphore))

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			w.log.InfoContext(ctx, "watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.wg.Wait()
				return errors.New("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !service.IsTranscriptFile(event.Name) {
				w.log.DebugContext(ctx, "ignoring non-transcript file", "path", event.Name)
				continue
			}
			w.log.InfoContext(ctx, "new transcript detected", "path", event.Name)
			if err := w.dispatch(ctx, event.Name); err != nil {
				w.wg.Wait()
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.wg.Wait()
				return errors.New("watcher errors channel closed")
			}
			w.log.ErrorContext(ctx, "watcher error", "error", err)
		}
	}
}

func (w *Watcher) dispatch(ctx context.Context, path string) error {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		select {
		case <-time.After(w.settle):
		case <-ctx.Done():
			return
		}
		if err := w.handler(ctx, path); err != nil {
			w.log.ErrorContext(ctx, "failed to process transcript", "path", path, "error", err)
		}
	}()
	return nil
}

// Stop closes the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
