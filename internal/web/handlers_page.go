package web

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/schooladmin/internal/web/templates"
)

// filterFieldPrefix marks filter selects in the query form: "filter.classe".
const filterFieldPrefix = "filter."

// handleIndex renders the console page and drains the session's toasts.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	// Other sessions may have changed the store. A failed reload keeps the
	// previous snapshot and the view carries the load error.
	_ = sess.Surface.Refresh(r.Context(), sess.Surface.ActiveTab())
	view := sess.Surface.View()
	toasts := sess.Flash.Drain()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.Page(view, toasts).Render(r.Context(), w); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

// handleSwitchTab activates a tab; its filters, page and dialog are the
// ones it had when last shown.
func (s *Server) handleSwitchTab(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := sess.Surface.SwitchTab(chi.URLParam(r, "tabID")); err != nil {
		s.respondError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// handleQuery applies the search box and every filter select of the form.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, err)
		return
	}

	if r.PostForm.Has("search") {
		sess.Surface.SetSearch(r.PostForm.Get("search"))
	}
	for key := range r.PostForm {
		name, ok := strings.CutPrefix(key, filterFieldPrefix)
		if !ok {
			continue
		}
		if err := sess.Surface.SetFilter(name, r.PostForm.Get(key)); err != nil {
			s.respondError(w, r, err)
			return
		}
	}
	redirectHome(w, r)
}

func (s *Server) handleResetFilters(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).Surface.ResetFilters()
	redirectHome(w, r)
}

// handlePage moves between pages. "to" is "next", "prev" or a page number;
// numbers out of range are clamped.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	surface := sessionFrom(r.Context()).Surface
	switch to := r.FormValue("to"); to {
	case "next":
		surface.NextPage()
	case "prev":
		surface.PrevPage()
	default:
		n, err := strconv.Atoi(to)
		if err != nil {
			n = 1
		}
		surface.GoToPage(n)
	}
	redirectHome(w, r)
}

// handlePageSize accepts only the sizes offered by the page-size select.
func (s *Server) handlePageSize(w http.ResponseWriter, r *http.Request) {
	if n, err := strconv.Atoi(r.FormValue("size")); err == nil && slices.Contains(s.cfg.Grid.PageSizes, n) {
		sessionFrom(r.Context()).Surface.SetItemsPerPage(n)
	}
	redirectHome(w, r)
}
