// Package processor turns transcript files into report files.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"textdigest/internal/domain"
	"textdigest/internal/report"
	"textdigest/internal/service"
)

// Processor handles one transcript file.
type Processor interface {
	Process(ctx context.Context, path string) error
}

type implProcessor struct {
	svc        domain.DigestService
	outputDir  string
	percentage int
	log        *slog.Logger
	now        func() time.Time
}

// New creates a Processor writing reports into outputDir.
func New(svc domain.DigestService, outputDir string, percentage int, log *slog.Logger) Processor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &implProcessor{svc: svc, outputDir: outputDir, percentage: percentage, log: log, now: time.Now}
}

// Process reads the transcript at path, digests it and writes its report.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	start := p.now()
	p.log.InfoContext(ctx, "processing transcript", "path", path)

	doc, err := service.LoadDocument(path)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}
	digest, err := p.svc.Digest(ctx, doc, p.percentage)
	if err != nil {
		return fmt.Errorf("digest %s: %w", filepath.Base(path), err)
	}
	out, err := report.Write(p.outputDir, digest, start)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	p.log.InfoContext(ctx, "transcript processed",
		"path", path,
		"report", out,
		"duration", time.Since(start),
	)
	return nil
}

// ProcessAll runs p over paths with at most maxConcurrent files in flight
// and joins every failure.
func ProcessAll(ctx context.Context, p Processor, paths []string, maxConcurrent int) error {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	sem := newSemaphore(maxConcurrent)

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for _, path := range paths {
		err := ctx.Err()
		if err == nil {
			err = sem.acquire(ctx)
		}
		if err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.release()
			if err := p.Process(ctx, path); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(path)
	}
	wg.Wait()
	return errors.Join(errs...)
}
