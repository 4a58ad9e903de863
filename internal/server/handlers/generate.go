package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/sanixdarker/gqlg/internal/history"
	"github.com/sanixdarker/gqlg/pkg/querygen"
)

// GenerateHandler generates documents for posted schemas.
type GenerateHandler struct {
	app *app.App
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(application *app.App) *GenerateHandler {
	return &GenerateHandler{app: application}
}

// GenerateResponse is the body returned by Generate.
type GenerateResponse struct {
	RunID  string           `json:"run_id,omitempty"`
	Cached bool             `json:"cached"`
	Count  int              `json:"count"`
	Result *querygen.Result `json:"result"`
}

// Generate handles POST /api/generate. The request body is the schema.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	maxDepth := h.app.Config.MaxDepth
	depth := h.app.Config.DepthLimit
	if maxDepth > 0 && depth > maxDepth {
		depth = maxDepth
	}
	if q.Has("depth") {
		depth = queryInt(r, "depth", depth)
	}
	if depth < 0 {
		writeError(w, http.StatusBadRequest, "depth must not be negative")
		return
	}
	if maxDepth > 0 && depth > maxDepth {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("depth must not exceed %d", maxDepth))
		return
	}
	format := q.Get("format")
	if format != "" && !h.isSupported(format) {
		writeError(w, http.StatusBadRequest, "unsupported format: "+format)
		return
	}
	save := q.Get("save") == "1" || q.Get("save") == "true"
	if save && h.app.History == nil {
		writeError(w, http.StatusBadRequest, "history is disabled on this server")
		return
	}

	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.app.Config.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "schema too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(content) == 0 {
		writeError(w, http.StatusBadRequest, "no schema provided")
		return
	}

	hash := history.HashSchema(content)
	resp := &GenerateResponse{}
	if res, ok := h.app.Results.GetResult(hash, depth); ok {
		resp.Result = res
		resp.Cached = true
	} else {
		res, err := h.app.Generate(content, app.GenerateOptions{Format: format, DepthLimit: depth})
		if err != nil {
			if errors.Is(err, querygen.ErrOutputTooLarge) {
				h.app.Logger.Warn("generated output too large", "depth", depth, "limit", h.app.Config.MaxOutput)
			}
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.app.Results.SetResult(hash, depth, res)
		resp.Result = res
	}
	resp.Count = resp.Result.Count()

	if save {
		name := q.Get("name")
		if name == "" {
			name = "upload.graphql"
		}
		run, err := h.app.History.Record(r.Context(), name, content, resp.Result)
		if err != nil {
			h.app.Logger.Error("failed to record run", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to record run")
			return
		}
		resp.RunID = run.ID
	}

	h.app.Logger.Debug("generated documents", "count", resp.Count, "depth", depth, "cached", resp.Cached)
	writeJSON(w, http.StatusOK, resp)
}

func (h *GenerateHandler) isSupported(format string) bool {
	for _, f := range h.app.Loaders.SupportedFormats() {
		if f == format {
			return true
		}
	}
	return false
}
