package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/specgest/internal/specdoc"
)

// Worker processes a single version job.
type Worker struct {
	assembler *specdoc.Assembler
	log       *slog.Logger
	writeTree bool
}

func NewWorker(assembler *specdoc.Assembler, log *slog.Logger, writeTree bool) *Worker {
	return &Worker{
		assembler: assembler,
		log:       log,
		writeTree: writeTree,
	}
}

// Process reads the job's source, extracts the record and writes it out.
// Failures are recorded on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("version", job.Version, "source", job.SourcePath)

	if err := ctx.Err(); err != nil {
		job.Fail("queued", err)
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	src, err := os.ReadFile(job.SourcePath)
	if err != nil {
		log.Error("read source failed", "error", err)
		job.Fail("parsing", fmt.Errorf("read source: %w", err))
		return
	}
	job.SetContentHash(ContentHashHex(src))

	// Phase 2: Extract
	job.SetStatus(StatusExtracting, "extracting")
	res, err := Extract(src, w.assembler)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.Fail("extracting", err)
		return
	}
	if res.Specification.Version != job.Version {
		log.Warn("document version differs from file name", "document_version", res.Specification.Version)
	}
	job.SetCounts(len(res.Specification.Schemas), res.FieldCount())

	// Phase 3: Write
	job.SetStatus(StatusWriting, "writing")
	if err := writeFile(job.OutputPath, res.Specification); err != nil {
		log.Error("write failed", "output", job.OutputPath, "error", err)
		job.Fail("writing", err)
		return
	}
	if w.writeTree {
		treePath := strings.TrimSuffix(job.OutputPath, ".json") + ".tree.json"
		if err := writeFile(treePath, res.Tree.Dump()); err != nil {
			log.Error("tree write failed", "output", treePath, "error", err)
			job.Fail("writing", err)
			return
		}
	}

	job.SetStatus(StatusCompleted, "done")
	log.Info("version extracted", "output", job.OutputPath, "schemas", len(res.Specification.Schemas), "fields", res.FieldCount())
}

func writeFile(path string, v any) error {
	data, err := marshalJSON(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
