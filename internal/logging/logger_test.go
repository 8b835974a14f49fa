package logging

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestNewWithWriterWritesEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf)
	logger.Printf("hello %s", "world")
	if !strings.Contains(buf.String(), "hello world") {
		t.Fatalf("expected log body to contain message, got %q", buf.String())
	}
}

func TestNewWithOptionsAppliesPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Writer: &buf, Prefix: "[activity-form] "})
	logger.Printf("submitted")
	if !strings.HasPrefix(buf.String(), "[activity-form] ") {
		t.Fatalf("expected prefix, got %q", buf.String())
	}
}

func TestSetDefaultWriterAffectsNew(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultWriter(&buf)
	t.Cleanup(func() { SetDefaultWriter(os.Stdout) })
	logger := New()
	logger.Printf("captured")
	if !strings.Contains(buf.String(), "captured") {
		t.Fatalf("expected log output to be written to buffer, got %q", buf.String())
	}
}

func TestAsStdLoggerReturnsUnderlyingLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf)
	std := AsStdLogger(logger)
	if std == nil {
		t.Fatalf("expected std logger")
	}
	std.Print("testing")
	if !bytes.Contains(buf.Bytes(), []byte("testing")) {
		t.Fatalf("expected std logger to write to buffer")
	}
}

func TestAsStdLoggerNilSafe(t *testing.T) {
	if got := AsStdLogger(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := AsStdLogger(&captureLogger{}); got != nil {
		t.Fatalf("expected nil for logger without std backing")
	}
}

func TestStdLoggerPrintfNilSafe(t *testing.T) {
	var l *stdLogger
	l.Printf("ignore")
	if l.StdLogger() != nil {
		t.Fatalf("expected nil base")
	}
}

type captureLogger struct {
	entries []string
}

func (c *captureLogger) Printf(format string, args ...any) {
	c.entries = append(c.entries, fmt.Sprintf(format, args...))
}

func TestWithHTTPLoggingAssignsRequestID(t *testing.T) {
	logger := &captureLogger{}
	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("payload"))
	})
	handler := WithHTTPLogging(base, logger)

	req := httptest.NewRequest(http.MethodPost, "/itinerary/1/new", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	id := rr.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatalf("expected request id header")
	}
	if len(logger.entries) != 2 {
		t.Fatalf("expected request/response logs, got %d", len(logger.entries))
	}
	for _, entry := range logger.entries {
		if !strings.Contains(entry, id) {
			t.Fatalf("expected entry to carry request id %s: %q", id, entry)
		}
	}
}

func TestWithHTTPLoggingReusesIncomingRequestID(t *testing.T) {
	handler := WithHTTPLogging(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), &captureLogger{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected incoming id to be reused, got %q", got)
	}
}

func TestWithHTTPLoggingNilLoggerReturnsOriginal(t *testing.T) {
	base := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	if got := WithHTTPLogging(base, nil); fmt.Sprintf("%p", got) != fmt.Sprintf("%p", base) {
		t.Fatalf("expected handler to be returned untouched when logger is nil")
	}
}

func TestLoggingResponseWriterTruncatesLargeBodies(t *testing.T) {
	rr := httptest.NewRecorder()
	lrw := newLoggingResponseWriter(rr)
	payload := strings.Repeat("x", maxLoggedResponseBody+10)

	if _, err := lrw.Write([]byte(payload)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if lrw.StatusCode() != http.StatusOK {
		t.Fatalf("expected default status to be 200, got %d", lrw.StatusCode())
	}
	if body := lrw.LoggedBody(); !strings.Contains(body, "-- response truncated after") {
		t.Fatalf("expected truncation notice, got %q", body)
	}
}

func TestLoggingResponseWriterOmitsWasmBodies(t *testing.T) {
	rr := httptest.NewRecorder()
	lrw := newLoggingResponseWriter(rr)
	lrw.Header().Set("Content-Type", "application/wasm")
	_, _ = lrw.Write([]byte{0x00, 0x61, 0x73, 0x6d})
	if body := lrw.LoggedBody(); !strings.Contains(body, "omitted") {
		t.Fatalf("expected binary body to be omitted, got %q", body)
	}
}

type flushRecorder struct {
	http.ResponseWriter
	flushed bool
}

func (f *flushRecorder) Flush() {
	f.flushed = true
}

func TestLoggingResponseWriterImplementsFlusher(t *testing.T) {
	fr := &flushRecorder{ResponseWriter: httptest.NewRecorder()}
	lrw := newLoggingResponseWriter(fr)
	flusher, ok := interface{}(lrw).(http.Flusher)
	if !ok {
		t.Fatalf("expected loggingResponseWriter to implement http.Flusher")
	}
	flusher.Flush()
	if !fr.flushed {
		t.Fatalf("expected underlying flusher to be invoked")
	}
}
