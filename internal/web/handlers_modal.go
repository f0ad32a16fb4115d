package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Dialog transitions. Effects (submit, delete, import) report their own
// outcome through the session's toasts; the handlers only redirect.

func (s *Server) handleOpenCreate(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, sessionFrom(r.Context()).Surface.OpenCreate)
}

func (s *Server) handleOpenImport(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, sessionFrom(r.Context()).Surface.OpenImport)
}

func (s *Server) handleEditFromDetails(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, sessionFrom(r.Context()).Surface.EditFromDetails)
}

func (s *Server) handleCancelForm(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, sessionFrom(r.Context()).Surface.CancelForm)
}

func (s *Server) handleCloseDetails(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, sessionFrom(r.Context()).Surface.CloseDetails)
}

func (s *Server) handleCloseImport(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, sessionFrom(r.Context()).Surface.CloseImport)
}

func (s *Server) handleCancelDelete(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, sessionFrom(r.Context()).Surface.CancelDelete)
}

// handleItemAction opens a row dialog: details, edit or delete.
func (s *Server) handleItemAction(w http.ResponseWriter, r *http.Request) {
	surface := sessionFrom(r.Context()).Surface
	id := chi.URLParam(r, "itemID")

	var open func(string) error
	switch action := chi.URLParam(r, "action"); action {
	case "details":
		open = surface.OpenDetails
	case "edit":
		open = surface.OpenEdit
	case "delete":
		open = surface.OpenDelete
	default:
		s.respondError(w, r, fmt.Errorf("%w %q", errUnknownAction, action))
		return
	}
	s.transition(w, r, func() error { return open(id) })
}

// handleSubmit posts the create or edit form.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, err)
		return
	}
	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		values[key] = r.PostForm.Get(key)
	}

	if err := sessionFrom(r.Context()).Surface.SubmitForm(r.Context(), values); err != nil {
		s.effectFailed(w, r, err)
		return
	}
	s.effectDone(w, r)
}

func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := sessionFrom(r.Context()).Surface.ConfirmDelete(r.Context()); err != nil {
		s.effectFailed(w, r, err)
		return
	}
	s.effectDone(w, r)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn func() error) {
	if err := fn(); err != nil {
		s.respondError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// effectFailed answers a failed effect. The surface already queued the toast,
// so page requests just go back to the page.
func (s *Server) effectFailed(w http.ResponseWriter, r *http.Request, err error) {
	if wantsJSON(r) {
		s.respondError(w, r, err)
		return
	}
	s.logger.Warn("effect failed", "path", r.URL.Path, "error", err)
	redirectHome(w, r)
}

func (s *Server) effectDone(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSON(w, map[string]string{"status": "ok"})
		return
	}
	redirectHome(w, r)
}
