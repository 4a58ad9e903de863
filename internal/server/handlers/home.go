package handlers

import (
	"net/http"

	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/sanixdarker/gqlg/internal/history"
	"github.com/sanixdarker/gqlg/web"
)

// HomeHandler handles home page requests.
type HomeHandler struct {
	app *app.App
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(application *app.App) *HomeHandler {
	return &HomeHandler{app: application}
}

// Index renders the list of recent runs.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}

	var runs []*history.Run
	var total int
	if h.app.History != nil {
		var err error
		runs, total, err = h.app.History.ListRuns(r.Context(), page, defaultPageSize)
		if err != nil {
			h.app.Logger.Error("failed to list runs", "error", err)
		}
	}

	data := map[string]interface{}{
		"Title":          "Runs",
		"BaseURL":        "http://" + r.Host,
		"HistoryEnabled": h.app.History != nil,
		"Runs":           runs,
		"Total":          total,
		"HasNext":        total > page*defaultPageSize,
		"HasPrev":        page > 1,
		"NextPage":       page + 1,
		"PrevPage":       page - 1,
	}

	if err := web.RenderPage(w, "index.html", data); err != nil {
		h.app.Logger.Error("failed to render home page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
