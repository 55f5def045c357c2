package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleReadinessDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := userFromContext(r)
	start, end := dayRangeQuery(r, 30)

	items, err := s.readiness.GetDaily(r.Context(), user.ID, start, end)
	if err != nil {
		writeSampleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"start": start,
		"end":   end,
		"today": localDayString(time.Now()),
		"items": items,
	})
}

func (s *Server) handleReadinessToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := userFromContext(r)
	today := localDayString(time.Now())

	result, err := s.readiness.Today(r.Context(), user.ID, today)
	if err != nil {
		writeSampleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"today": today, "readiness": result})
}
