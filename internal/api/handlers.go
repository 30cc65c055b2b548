package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cogview/internal/cognitive"
	"cogview/internal/errors"
	"cogview/internal/version"
)

// HealthResponse reports daemon liveness.
type HealthResponse struct {
	Status            string `json:"status"`
	Version           string `json:"version"`
	AnalysisAvailable bool   `json:"analysisAvailable"`
}

// StatusResponse reports what the daemon is serving.
type StatusResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	Root          string    `json:"root"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
	CacheEnabled  bool      `json:"cacheEnabled"`
}

// ScanRequest is the body of POST /api/scan. Path narrows the scan to a
// subdirectory of the served root; empty scans the whole root.
type ScanRequest struct {
	Path string `json:"path,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	WriteJSON(w, HealthResponse{
		Status:            "ok",
		Version:           version.Version,
		AnalysisAvailable: cognitive.IsAvailable(),
	}, http.StatusOK)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	WriteJSON(w, StatusResponse{
		Status:        "serving",
		Timestamp:     time.Now().UTC(),
		Version:       version.Version,
		Root:          s.root,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		CacheEnabled:  s.cfg.Cache.Enabled,
	}, http.StatusOK)
}

// handleScores scores a single file. The path query parameter is relative
// to the served root.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	rel := r.URL.Query().Get("path")
	if rel == "" {
		BadRequest(w, "missing required query parameter: path")
		return
	}

	abs, err := s.resolve(rel)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	info, err := os.Stat(abs)
	if err != nil {
		NotFound(w, "no such file: "+rel)
		return
	}
	if info.IsDir() {
		BadRequest(w, "path is a directory, use POST /api/scan: "+rel)
		return
	}

	score, err := s.scanner.ScanFile(r.Context(), abs, filepath.ToSlash(rel))
	if err != nil {
		if cogErr, ok := err.(*errors.CogError); ok {
			WriteCogError(w, cogErr)
			return
		}
		InternalError(w, err.Error())
		return
	}

	WriteJSON(w, score, http.StatusOK)
}

// handleScan scores a directory tree and returns the aggregated result.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w)
		return
	}

	var req ScanRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			BadRequest(w, "invalid JSON body: "+err.Error())
			return
		}
	}

	target := s.root
	if req.Path != "" {
		abs, err := s.resolve(req.Path)
		if err != nil {
			BadRequest(w, err.Error())
			return
		}
		info, statErr := os.Stat(abs)
		if statErr != nil {
			NotFound(w, "no such directory: "+req.Path)
			return
		}
		if !info.IsDir() {
			BadRequest(w, "path is a file, use GET /api/scores: "+req.Path)
			return
		}
		target = abs
	}

	result, err := s.scanner.ScanDir(r.Context(), target)
	if err != nil {
		if cogErr, ok := err.(*errors.CogError); ok {
			WriteCogError(w, cogErr)
			return
		}
		InternalError(w, err.Error())
		return
	}

	WriteJSON(w, result, http.StatusOK)
}

// resolve joins rel onto the served root and rejects paths that escape it.
func (s *Server) resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", errors.Newf(errors.MalformedInput, "path must be relative to the served root: %s", rel)
	}

	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	within, err := filepath.Rel(s.root, abs)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.MalformedInput, "path escapes the served root: %s", rel)
	}
	return abs, nil
}
