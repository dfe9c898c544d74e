// Package pipeline runs extraction over a set of specification versions.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dgallion1/specgest/internal/config"
	"github.com/dgallion1/specgest/internal/specdoc"
)

// Orchestrator runs one job per version on a bounded worker pool. Each
// document is processed by a single worker; a failed version does not stop
// the others.
type Orchestrator struct {
	assembler *specdoc.Assembler
	log       *slog.Logger
	cfg       config.Config
}

func NewOrchestrator(cfg config.Config, assembler *specdoc.Assembler, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		assembler: assembler,
		log:       log,
		cfg:       cfg,
	}
}

// SourcePath returns <source-root>/<version>.md.
func (o *Orchestrator) SourcePath(version string) string {
	return filepath.Join(o.cfg.SourceRoot, version+".md")
}

// OutputPath returns <target-root>/<version>.json.
func (o *Orchestrator) OutputPath(version string) string {
	return filepath.Join(o.cfg.TargetRoot, version+".json")
}

// Run processes versions and returns their final state in input order.
// The error is non-nil when at least one version failed.
func (o *Orchestrator) Run(ctx context.Context, versions []string) ([]JobSnapshot, error) {
	if err := os.MkdirAll(o.cfg.TargetRoot, 0755); err != nil {
		return nil, fmt.Errorf("create target root: %w", err)
	}

	jobs := make([]*Job, len(versions))
	queue := make(chan *Job, len(versions))
	for i, v := range versions {
		jobs[i] = NewJob(v, o.SourcePath(v), o.OutputPath(v))
		queue <- jobs[i]
	}
	close(queue)

	workers := min(o.cfg.Workers, len(versions))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := NewWorker(o.assembler, o.log, o.cfg.WriteTree)
			for job := range queue {
				w.Process(ctx, job)
			}
		}()
	}
	wg.Wait()

	snaps := make([]JobSnapshot, len(jobs))
	failed := 0
	for i, j := range jobs {
		snaps[i] = j.Snapshot()
		if snaps[i].Status == StatusFailed {
			failed++
		}
	}
	o.log.Info("run complete", "versions", len(versions), "failed", failed)
	if failed > 0 {
		return snaps, fmt.Errorf("%d of %d versions failed", failed, len(versions))
	}
	return snaps, nil
}
