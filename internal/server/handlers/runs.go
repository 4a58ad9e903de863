package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/sanixdarker/gqlg/internal/history"
	"github.com/sanixdarker/gqlg/internal/server/middleware"
	"github.com/sanixdarker/gqlg/pkg/catalog"
	"github.com/sanixdarker/gqlg/pkg/querygen"
	"github.com/sanixdarker/gqlg/web"
)

// RunsHandler serves recorded generation runs.
type RunsHandler struct {
	app *app.App
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(application *app.App) *RunsHandler {
	return &RunsHandler{app: application}
}

// RunResponse is a run with its documents.
type RunResponse struct {
	*history.Run
	Documents []*history.StoredDocument `json:"documents"`
}

// List handles GET /api/runs.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", defaultPageSize)

	runs, total, err := h.app.History.ListRuns(r.Context(), page, perPage)
	if err != nil {
		h.app.Logger.Error("failed to list runs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []*history.Run{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"total": total,
		"page":  page,
	})
}

// Get handles GET /api/runs/{id}.
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}

	docs, err := h.app.History.Documents(r.Context(), run.ID)
	if err != nil {
		h.app.Logger.Error("failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	writeJSON(w, http.StatusOK, &RunResponse{Run: run, Documents: docs})
}

// Delete handles DELETE /api/runs/{id}.
func (h *RunsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	if err := h.app.History.DeleteRun(r.Context(), run.ID); err != nil {
		h.app.Logger.Error("failed to delete run", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete run")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Document handles GET /api/runs/{id}/{kind}/{name} and returns the raw
// document text.
func (h *RunsHandler) Document(w http.ResponseWriter, r *http.Request) {
	kind, ok := querygen.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown operation kind")
		return
	}
	run, ok := h.run(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	doc, err := h.app.History.Document(r.Context(), run.ID, kind, name)
	if err != nil {
		h.app.Logger.Error("failed to get document", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get document")
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	w.Header().Set("Content-Type", "application/graphql; charset=utf-8")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", "attachment; filename=\""+middleware.SanitizeFilename(name)+".gql\"")
	}
	w.Write([]byte(doc.Query))
}

// Catalog handles GET /api/runs/{id}/catalog and renders the run as HTML.
func (h *RunsHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}

	res, err := h.app.History.Result(r.Context(), run)
	if err != nil {
		h.app.Logger.Error("failed to load run", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cat := catalog.FromResult(run.SchemaName, run.SchemaName, res)
	cat.Frontmatter.GeneratedAt = run.CreatedAt.UTC().Format(time.RFC3339)
	html, err := catalog.HTML(cat)
	if err != nil {
		h.app.Logger.Error("failed to render catalog", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":       run.SchemaName,
		"Run":         run,
		"CatalogHTML": html,
	}
	if err := web.RenderPage(w, "catalog.html", data); err != nil {
		h.app.Logger.Error("failed to render catalog page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// run resolves the {id} parameter, writing the error response when it
// cannot.
func (h *RunsHandler) run(w http.ResponseWriter, r *http.Request) (*history.Run, bool) {
	run, err := h.app.History.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.app.Logger.Error("failed to get run", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get run")
		return nil, false
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return nil, false
	}
	return run, true
}
