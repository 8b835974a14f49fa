// Package ui serves the embedded activity page and its static assets.
package ui

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"itinerary-planner/internal/dom/htmldom"
)

//go:embed dist/*
var content embed.FS

const activityPage = "activity.html"

// PageOptions are injected into the activity page before it is served.
type PageOptions struct {
	BaseURL    string
	MapsAPIKey string
}

// Handler serves the embedded assets under the path it is mounted on.
func Handler() http.Handler {
	sub, err := fs.Sub(content, "dist")
	if err != nil {
		return http.NotFoundHandler()
	}
	fsys := http.FS(sub)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if p == "" || p == activityPage {
			http.NotFound(w, r)
			return
		}
		file, err := fsys.Open(p)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer file.Close()
		info, err := file.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(p, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), file)
	})
}

// ActivityPage renders the "add activities" page for an itinerary.
func ActivityPage(itineraryID string, opts PageOptions) (string, error) {
	file, err := content.Open(path.Join("dist", activityPage))
	if err != nil {
		return "", fmt.Errorf("open activity page: %w", err)
	}
	defer file.Close()

	doc, err := htmldom.Parse(file)
	if err != nil {
		return "", err
	}
	root := doc.Selection()

	form := root.Find("#activity-form")
	form.SetAttr("data-base-url", opts.BaseURL)
	form.SetAttr("data-itinerary-id", itineraryID)
	form.SetAttr("action", "/itinerary/"+itineraryID+"/new")

	root.Find("#itinerary-title").SetText(fmt.Sprintf("Add activities to itinerary %s", itineraryID))
	if key := strings.TrimSpace(opts.MapsAPIKey); key != "" {
		root.Find("gmpx-api-loader").SetAttr("key", key)
	}
	return doc.HTML()
}
