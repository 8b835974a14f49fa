//go:build js && wasm

// Command activityform is the WebAssembly bundle loaded by the itinerary
// "add activities" page.
package main

import (
	"itinerary-planner/internal/activityform"
	"itinerary-planner/internal/dom/jsdom"
	"itinerary-planner/internal/logging"
)

func main() {
	logger := logging.NewWithOptions(logging.Options{
		Writer: jsdom.ConsoleWriter{},
		Prefix: "[activity-form] ",
	})

	doc := jsdom.Global()
	location := jsdom.WindowLocation()
	baseURL := ""
	if form, ok := doc.GetElementByID(activityform.FormID); ok {
		if el, ok := form.(jsdom.Element); ok {
			baseURL = el.Attribute("data-base-url")
		}
	}
	// The fetch transport needs an absolute URL.
	if baseURL == "" {
		baseURL = location.Origin()
	}

	done := make(chan struct{})
	_, err := activityform.Bind(doc, activityform.Options{
		BaseURL:  baseURL,
		Logger:   logger,
		Location: location,
	})
	if err != nil {
		logger.Printf("activity form not bound: %v", err)
		return
	}
	<-done
}
