package api

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/specgest/internal/pipeline"
)

// handleConvert extracts a record from the Markdown request body without
// storing it.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "document exceeds max size", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		jsonError(w, "document body is required", http.StatusBadRequest)
		return
	}

	res, err := pipeline.Extract(data, s.assembler)
	if err != nil {
		s.log.Info("conversion rejected", "error", err, "content_hash", pipeline.ContentHashHex(data)[:16])
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, res.Specification)
}

// handleListSpecifications lists the versions with a record under the target root.
func (s *Server) handleListSpecifications(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.TargetRoot)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		jsonError(w, "failed to list specifications: "+err.Error(), http.StatusInternalServerError)
		return
	}

	versions := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".tree.json") {
			continue
		}
		versions = append(versions, strings.TrimSuffix(name, ".json"))
	}
	slices.Sort(versions)

	writeJSON(w, http.StatusOK, map[string]any{"versions": versions})
}

// handleGetSpecification returns a stored record as written by the batch.
func (s *Server) handleGetSpecification(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "version")
	if !validVersion(version) {
		jsonError(w, "invalid version", http.StatusBadRequest)
		return
	}

	data, err := os.ReadFile(s.orchestrator.OutputPath(version))
	if errors.Is(err, fs.ErrNotExist) {
		jsonError(w, "specification not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to read specification: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func validVersion(v string) bool {
	return v != "" && v != "." && filepath.Base(v) == v && !strings.Contains(v, "..") && !strings.ContainsAny(v, `/\`)
}
