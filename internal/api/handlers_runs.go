package api

import (
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

type runRequest struct {
	Versions []string `json:"versions"`
}

// handleRun extracts the configured versions, or those named in the body,
// and reports every job. The request blocks until the batch finishes.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			jsonError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	versions := s.cfg.Versions
	if len(req.Versions) > 0 {
		for _, v := range req.Versions {
			if !validVersion(v) {
				jsonError(w, "invalid version: "+v, http.StatusBadRequest)
				return
			}
		}
		versions = req.Versions
	}

	jobs, err := s.orchestrator.Run(r.Context(), versions)
	if jobs == nil && err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := map[string]any{"jobs": jobs}
	status := http.StatusOK
	if err != nil {
		resp["error"] = err.Error()
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}
