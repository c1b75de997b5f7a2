package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/internal/checker"
	"github.com/idudko/login-checker/internal/middleware"
	"github.com/idudko/login-checker/internal/model"
	"github.com/idudko/login-checker/internal/report"
	"github.com/idudko/login-checker/internal/repository"
	"github.com/idudko/login-checker/internal/service"
)

type Handler struct {
	resultsService *service.ResultsService
}

func NewHandler(resultsService *service.ResultsService) *Handler {
	return &Handler{resultsService: resultsService}
}

// SaveRunHandler stores a run posted as JSON.
//
//	POST /runs
func (h *Handler) SaveRunHandler(w http.ResponseWriter, r *http.Request) {
	var run model.Run
	if err := json.NewDecoder(r.Body).Decode(&run); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	err := h.resultsService.Save(r.Context(), &run)
	switch {
	case errors.Is(err, service.ErrInvalidRun):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, repository.ErrRunExists):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Error().Err(err).Str("run_id", run.ID).Msg("failed to save run")
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	if auditCtx := middleware.GetAuditContext(r.Context()); auditCtx != nil {
		auditCtx.AddRun(run.ID)
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": run.ID})
}

// ListRunsHandler returns summaries of all stored runs.
//
//	GET /runs
func (h *Handler) ListRunsHandler(w http.ResponseWriter, r *http.Request) {
	runs, err := h.resultsService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list runs")
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRunHandler returns one run.
//
//	GET /runs/{id}
func (h *Handler) GetRunHandler(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// SeriesHandler returns plot series for one metric of a run. With
// ?zoomed=true the linear search baseline is left out.
//
//	GET /runs/{id}/series/{metric}
func (h *Handler) SeriesHandler(w http.ResponseWriter, r *http.Request) {
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	var exclude []string
	if zoomed, _ := strconv.ParseBool(r.URL.Query().Get("zoomed")); zoomed {
		exclude = append(exclude, checker.ListLinearSearch)
	}

	series, err := report.Series(run, chi.URLParam(r, "metric"), exclude...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*model.Run, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Run id is required", http.StatusNotFound)
		return nil, false
	}

	run, err := h.resultsService.Get(r.Context(), id)
	if errors.Is(err, repository.ErrRunNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("run_id", id).Msg("failed to load run")
		http.Error(w, "Failed to load run", http.StatusInternalServerError)
		return nil, false
	}
	return run, true
}

var indexTemplate = template.Must(template.New("index").Parse(`<html>
<head><title>Login checker results</title></head>
<body>
{{if .}}<h1>Run {{.ID}}</h1>
<p>{{.Host.CPUModel}} {{.Dataset}}</p>
<table>
<tr><th>Algorithm</th><th>Size</th><th>Add (s)</th><th>Add cmp/op</th><th>Lookup (s)</th><th>Lookup cmp/op</th><th>Found</th></tr>
{{range .Results}}<tr><td>{{.Algorithm}}</td><td>{{.NumLogins}}</td><td>{{printf "%.6f" .AddTime.Seconds}}</td><td>{{printf "%.1f" .AvgAddComparisons}}</td><td>{{printf "%.6f" .LookupTime.Seconds}}</td><td>{{printf "%.1f" .AvgLookupComparisons}}</td><td>{{.LookupsFound}}</td></tr>
{{end}}</table>
{{else}}<p>No runs stored yet.</p>{{end}}
</body>
</html>
`))

// IndexHandler renders the latest run as an HTML table.
//
//	GET /
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	run, err := h.resultsService.Latest(r.Context())
	if err != nil && !errors.Is(err, repository.ErrRunNotFound) {
		log.Error().Err(err).Msg("failed to load latest run")
		http.Error(w, "Failed to load latest run", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, run); err != nil {
		log.Error().Err(err).Msg("failed to render index")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
