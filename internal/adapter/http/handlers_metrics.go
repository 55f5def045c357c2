package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"readiness/internal/app"
)

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		start, end := dayRangeQuery(r, 30)
		items, err := s.samples.ListRange(ctx, user.ID, start, end)
		if err != nil {
			writeSampleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"start": start, "end": end, "items": items})

	case http.MethodPost:
		var body app.SampleInput
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		sample, err := s.samples.Record(ctx, user.ID, body)
		if err != nil {
			writeSampleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sample": sample})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMetricsToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)
	today := localDayString(time.Now())

	switch r.Method {
	case http.MethodGet:
		sample, err := s.samples.GetDay(ctx, user.ID, today)
		if err != nil {
			writeSampleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"today": today, "sample": sample})

	case http.MethodPut:
		var body app.SampleInput
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		body.Day = today
		sample, err := s.samples.Record(ctx, user.ID, body)
		if err != nil {
			writeSampleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"today": today, "sample": sample})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMetricsDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	var body struct {
		Day string `json:"day"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	deleted, err := s.samples.Delete(r.Context(), user.ID, body.Day)
	if err != nil {
		writeSampleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted, "day": body.Day})
}

// writeSampleError maps sample service errors onto HTTP statuses.
func writeSampleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidDay), errors.Is(err, app.ErrInvalidMetric), errors.Is(err, app.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
