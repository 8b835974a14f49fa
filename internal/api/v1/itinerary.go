package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"itinerary-planner/internal/activities"
	"itinerary-planner/internal/catalog"
	"itinerary-planner/internal/logging"
	"itinerary-planner/internal/ui"
)

const maxRequestBody = 64 << 10

var errUnknownCategory = errors.New("unknown category")

// itineraryID returns the {id} path value when it is a positive integer.
func itineraryID(r *http.Request) (string, bool) {
	raw := r.PathValue("id")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}

type pageHandler struct {
	logger logging.Logger
	page   ui.PageOptions
}

func (h pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := itineraryID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	page, err := ui.ActivityPage(id, h.page)
	if err != nil {
		h.logger.Printf("render activity page for itinerary %s: %v", id, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, page)
}

type newActivitiesRequest struct {
	Categories []string `json:"categories"`
}

type newActivitiesResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type newActivitiesHandler struct {
	logger  logging.Logger
	store   *activities.Store
	catalog catalog.Catalog
}

func (h newActivitiesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := itineraryID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var payload newActivitiesRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	if err := h.validate(payload.Categories); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.store.Append(activities.Record{ItineraryID: id, Categories: payload.Categories})
	if err != nil {
		h.logger.Printf("store activities for itinerary %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to store activities")
		return
	}
	h.logger.Printf("itinerary %s: recorded %d categories as %s", id, len(record.Categories), record.ID)

	respondJSON(w, http.StatusOK, newActivitiesResponse{RedirectURL: "/itinerary/" + id})
}

func (h newActivitiesHandler) validate(categories []string) error {
	for i, c := range categories {
		if !h.catalog.Contains(c) {
			return fmt.Errorf("%w at position %d: %q", errUnknownCategory, i+1, c)
		}
	}
	return nil
}

type itineraryResponse struct {
	ItineraryID string              `json:"itineraryId"`
	Activities  []activities.Record `json:"activities"`
}

type itineraryHandler struct {
	logger logging.Logger
	store  *activities.Store
}

func (h itineraryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := itineraryID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	records, err := h.store.ListByItinerary(id)
	if err != nil {
		h.logger.Printf("list activities for itinerary %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to load activities")
		return
	}
	respondJSON(w, http.StatusOK, itineraryResponse{ItineraryID: id, Activities: records})
}
