package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/schooladmin/internal/core"
	"github.com/JonMunkholm/schooladmin/internal/logging"
	"github.com/JonMunkholm/schooladmin/internal/spreadsheet"
)

// multipartOverhead is the room left for form fields and part headers on
// top of the file itself.
const multipartOverhead = 1 << 20

// handleImport reads an uploaded spreadsheet and hands its rows to the
// active tab. Parsing waits for an import slot; rows reach the tab only if
// the whole file parsed.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	maxSize := s.cfg.Import.MaxFileSize

	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			err = fmt.Errorf("file too large: limit %d bytes", maxSize)
		}
		s.respondError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errNoFile)
		return
	}
	defer file.Close()

	logger := logging.WithFields(r.Context(), "tab", sess.Surface.ActiveTab(), "file", header.Filename, "size", header.Size)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	var importErr error
	err = s.imports.Run(ctx, func(ctx context.Context) error {
		rows, err := spreadsheet.ReadRows(file, header.Filename, maxSize)
		if err != nil {
			return err
		}
		logger.Info("import started", "rows", len(rows))
		importErr = sess.Surface.Import(ctx, rows)
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if importErr != nil {
		s.effectFailed(w, r, importErr)
		return
	}
	logger.Info("import completed")
	s.effectDone(w, r)
}

// handleExport downloads the active tab's filtered collection.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	job, err := sess.Surface.Export()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", job.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.FileName))
	if err := job.Write(w); err != nil {
		// Headers are gone; the client gets a truncated file.
		logging.FromContext(r.Context()).Error("export failed", "file", job.FileName, "error", err)
		return
	}
	logging.FromContext(r.Context()).Info("export", "file", job.FileName, "rows", len(job.Items))
	sess.Flash.Notify(core.NotifySuccess, "Export terminé", fmt.Sprintf("%d ligne(s) exportée(s)", len(job.Items)))
}
