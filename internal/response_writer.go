package internal

import (
	"net/http"
)

// ResponseWriter records the status and body size of a response so the error
// handler and request logging can tell whether, and how, a request was
// answered. Middleware and the pipeline share one ResponseWriter per request.
//
// It is not safe for concurrent use, like the http.ResponseWriter it wraps.
type ResponseWriter struct {
	http.ResponseWriter
	status    int
	size      int64
	committed bool
}

// NewResponseWriter wraps w. An existing *ResponseWriter is returned as is.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader sends the status line. Informational (1xx) statuses other than
// 101 are passed through without committing the response; after the first
// final status further calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.committed {
		return
	}
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	w.committed = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Write commits the response with the current status if needed and writes b.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.committed {
		w.WriteHeader(w.status)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status returns the committed status, or 200 before anything was written.
func (w *ResponseWriter) Status() int {
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	return w.size
}

// Written reports whether a final status has been sent.
func (w *ResponseWriter) Written() bool {
	return w.committed
}

// Unwrap lets http.ResponseController reach Flush, Hijack and deadlines on
// the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
