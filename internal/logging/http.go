package logging

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httputil"
	"strings"

	"github.com/google/uuid"
)

const (
	maxLoggedResponseBody = 4096

	// RequestIDHeader carries the id assigned to each logged request.
	RequestIDHeader = "X-Request-ID"
)

// WithHTTPLogging wraps the provided handler so every request/response pair is
// logged under a request id. An incoming X-Request-ID is reused.
func WithHTTPLogging(next http.Handler, logger Logger) http.Handler {
	if logger == nil || next == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)

		if dump, err := httputil.DumpRequest(r, true); err == nil {
			logger.Printf("---- [%s] request from %s ----\n%s", reqID, r.RemoteAddr, dump)
		} else {
			logger.Printf("[%s] failed to dump request from %s: %v", reqID, r.RemoteAddr, err)
		}

		lrw := newLoggingResponseWriter(w)
		next.ServeHTTP(lrw, r)

		status := lrw.StatusCode()
		logger.Printf(
			"---- [%s] response for %s %s (%d %s) ----\n%s",
			reqID,
			r.Method,
			r.URL.Path,
			status,
			http.StatusText(status),
			lrw.LoggedBody(),
		)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	status    int
	buf       bytes.Buffer
	truncated bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	remaining := maxLoggedResponseBody - lrw.buf.Len()
	switch {
	case remaining <= 0:
		lrw.truncated = true
	case len(b) > remaining:
		lrw.buf.Write(b[:remaining])
		lrw.truncated = true
	default:
		lrw.buf.Write(b)
	}
	return lrw.ResponseWriter.Write(b)
}

func (lrw *loggingResponseWriter) StatusCode() int {
	if lrw.status == 0 {
		return http.StatusOK
	}
	return lrw.status
}

// LoggedBody returns the captured body, skipping binary payloads such as the
// wasm bundle.
func (lrw *loggingResponseWriter) LoggedBody() string {
	ct := lrw.Header().Get("Content-Type")
	if strings.HasPrefix(ct, "application/wasm") || strings.HasPrefix(ct, "application/octet-stream") {
		return fmt.Sprintf("-- %s body omitted --", ct)
	}
	body := lrw.buf.String()
	if lrw.truncated {
		return fmt.Sprintf("%s\n-- response truncated after %d bytes --", body, maxLoggedResponseBody)
	}
	return body
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
