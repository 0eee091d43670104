package webserver

import (
	"bytes"
	"net/http"

	"github.com/spboyer/tripcompare/internal/cohort"
	"github.com/spboyer/tripcompare/internal/report"
	"github.com/spboyer/tripcompare/internal/webapi"
)

// registerRoutes sets up the API and the HTML report on the given mux.
func registerRoutes(mux *http.ServeMux, s *Server) {
	webapi.RegisterRoutes(mux, s.session, s.cfg.Engine)
	mux.HandleFunc("GET /{$}", s.handleReport)
}

// handleReport renders the current session cohort as an HTML page.
func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	items := s.session.Cohort(cohort.Filter{})
	r := report.Build(items, s.cfg.Engine.ScoreCohort(items), s.cfg.Engine.Weights())
	r.Title = "Itinerary comparison"

	var buf bytes.Buffer
	if err := report.WriteHTML(&buf, r); err != nil {
		s.logger.Error("rendering report", "error", err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck
}
