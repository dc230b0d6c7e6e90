package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/types"
)

type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

// WithStatus marks err to be answered with status by JsonHandler.
func WithStatus(status int, err error) error {
	return &statusError{status: status, err: err}
}

type trackingWriter struct {
	http.ResponseWriter
	written bool
}

func (w *trackingWriter) WriteHeader(status int) {
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

type JsonHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error

// JsonHandler answers CORS preflights, resolves the session and runs fn with
// an encoder on the response. Errors are logged, and answered with their
// status when nothing has been written yet.
func JsonHandler(trk types.Tracking, fn JsonHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)

		tw := &trackingWriter{ResponseWriter: w}
		if origin := r.Header.Get("Origin"); origin != "" {
			tw.Header().Set("Access-Control-Allow-Origin", origin)
			tw.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		tw.Header().Set("Content-Type", "application/json; charset=UTF-8")
		err := fn(tw, r, sessionId, jsoncompat.NewEncoder(tw))
		if err == nil {
			return
		}
		log.Printf("Error handling request %s: %v", r.URL.Path, err)
		if tw.written {
			return
		}
		status := http.StatusInternalServerError
		var se *statusError
		if errors.As(err, &se) {
			status = se.status
		}
		http.Error(tw, http.StatusText(status), status)
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
