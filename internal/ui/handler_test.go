package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"itinerary-planner/internal/dom/htmldom"
)

func TestActivityPageInjectsSettings(t *testing.T) {
	page, err := ActivityPage("42", PageOptions{BaseURL: "https://trips.example.com", MapsAPIKey: "maps-key"})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}

	doc, err := htmldom.ParseString(page)
	if err != nil {
		t.Fatalf("parse rendered page: %v", err)
	}
	form := doc.Selection().Find("#activity-form")
	if got := form.AttrOr("data-base-url", ""); got != "https://trips.example.com" {
		t.Fatalf("expected base url attribute, got %q", got)
	}
	if got := form.AttrOr("data-itinerary-id", ""); got != "42" {
		t.Fatalf("expected itinerary id attribute, got %q", got)
	}
	if got := doc.Selection().Find("gmpx-api-loader").AttrOr("key", ""); got != "maps-key" {
		t.Fatalf("expected maps key, got %q", got)
	}
	if !strings.Contains(doc.Selection().Find("#itinerary-title").Text(), "42") {
		t.Fatalf("expected title to mention itinerary")
	}
	for _, id := range []string{"location", "activity-count", "activity-input-container"} {
		if _, ok := doc.GetElementByID(id); !ok {
			t.Fatalf("expected #%s in page", id)
		}
	}
}

func TestActivityPageOmitsEmptyMapsKey(t *testing.T) {
	page, err := ActivityPage("1", PageOptions{})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	doc, _ := htmldom.ParseString(page)
	if _, ok := doc.Selection().Find("gmpx-api-loader").Attr("key"); ok {
		t.Fatalf("expected no key attribute")
	}
}

func TestHandlerServesAssets(t *testing.T) {
	h := Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/styles.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for stylesheet, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/css") {
		t.Fatalf("unexpected content type %q", rr.Header().Get("Content-Type"))
	}

	for _, p := range []string{"/", "/activity.html", "/missing.js", "/../go.mod"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, p, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", p, rr.Code)
		}
	}
}
