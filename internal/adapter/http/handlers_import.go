package adapthttp

import (
	"errors"
	"net/http"
	"strings"

	"readiness/internal/app"
)

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	items, err := s.imports.Connections(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handlePlatformConnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	var body struct {
		Platform string `json:"platform"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.imports.Connect(r.Context(), user.ID, body.Platform); err != nil {
		writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "platform": body.Platform})
}

func (s *Server) handlePlatformDisconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	var body struct {
		Platform string `json:"platform"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.imports.Disconnect(r.Context(), user.ID, body.Platform); err != nil {
		writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "platform": body.Platform})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	platform := strings.TrimPrefix(r.URL.Path, "/import/")
	if platform == "" || strings.Contains(platform, "/") {
		writeError(w, http.StatusNotFound, app.ErrUnknownPlatform)
		return
	}

	var body struct {
		Entries []app.SampleInput `json:"entries"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.imports.ImportBatch(r.Context(), user.ID, platform, body.Entries)
	if err != nil {
		writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// writeImportError maps import service errors onto HTTP statuses.
func writeImportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUnknownPlatform):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrPlatformNotConnected):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
