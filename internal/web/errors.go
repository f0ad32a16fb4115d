package web

// errors.go turns handler errors into responses.
//
// The technical error is logged with the request id. The client sees the
// message from core.MapError: as JSON for API and JSON-accepting callers, or
// as a toast on the console page after a redirect.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/schooladmin/internal/core"
	"github.com/JonMunkholm/schooladmin/internal/logging"
)

var (
	errRateLimited   = errors.New("rate limit exceeded")
	errNoFile        = errors.New("no file provided")
	errUnknownAction = errors.New("unknown item action")
)

// ErrorResponse is the JSON body of an error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func errorResponse(err error) ErrorResponse {
	msg := core.MapError(err)
	return ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
}

// statusFor picks the HTTP status of err.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrTabNotFound), errors.Is(err, core.ErrItemNotFound), errors.Is(err, errUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, core.ErrBusy), errors.Is(err, core.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	}

	switch core.MapError(err).Code {
	case "ERR000", "REQ001", "REQ002":
		return http.StatusInternalServerError
	case "FILE001":
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// respondError logs err and reports it to the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", resp.Code,
	)

	if wantsJSON(r) {
		writeJSONStatus(w, status, resp)
		return
	}
	if sess := sessionFrom(r.Context()); sess != nil {
		sess.Flash.Notify(core.NotifyError, resp.Message, core.FormatUserError(err))
		redirectHome(w, r)
		return
	}
	http.Error(w, resp.Message+" ("+resp.Code+")", status)
}

// redirectHome sends the browser back to the console page.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// wantsJSON reports whether the client expects a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
