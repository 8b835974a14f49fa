// Package activityform drives the "add activities" form of an itinerary page:
// it mirrors the picked address into the location field, renders one
// category select per requested activity and posts the chosen categories.
package activityform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"itinerary-planner/internal/catalog"
	"itinerary-planner/internal/dom"
	"itinerary-planner/internal/logging"
)

// Element ids and event names the controller binds to.
const (
	LocationInputID  = "location"
	PlacePickerTag   = "gmpx-place-picker"
	CountInputID     = "activity-count"
	ContainerID      = "activity-input-container"
	FormID           = "activity-form"
	PlaceChangeEvent = "gmpx-placechange"
)

// DefaultMaxCount caps the slots rendered and collected when
// Options.MaxCount is unset.
const DefaultMaxCount = 50

// Options configures Bind.
type Options struct {
	// BaseURL prefixes the submission endpoint.
	BaseURL    string
	Catalog    catalog.Catalog
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     logging.Logger
	// Location supplies the live page path and performs navigation.
	Location dom.Location
	// MaxCount caps the parsed activity count. Zero means DefaultMaxCount.
	MaxCount int
	// RenderOnBind renders slots for a prefilled count during Bind.
	RenderOnBind bool
	// OnResult, when set, receives every submission outcome after the
	// controller has navigated or logged.
	OnResult func(Result)
}

// Controller owns the listeners attached to one activity form.
type Controller struct {
	doc      dom.Document
	logger   logging.Logger
	location dom.Location
	renderer Renderer
	client   Client
	onResult func(Result)
	maxCount int

	locationInput dom.Element
	countInput    dom.Element
	container     dom.Element

	releases []dom.Release
}

// Bind looks up the form elements and attaches the place-change, count-change
// and submit listeners.
func Bind(doc dom.Document, opts Options) (*Controller, error) {
	if doc == nil {
		return nil, errors.New("document is required")
	}
	if opts.Location == nil {
		return nil, errors.New("location is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.New()
	}
	if opts.Catalog.Len() == 0 {
		opts.Catalog = catalog.Default()
	}
	if opts.MaxCount <= 0 {
		opts.MaxCount = DefaultMaxCount
	}

	locationInput, err := requireByID(doc, LocationInputID)
	if err != nil {
		return nil, err
	}
	picker, ok := doc.QuerySelector(PlacePickerTag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingElement, PlacePickerTag)
	}
	countInput, err := requireByID(doc, CountInputID)
	if err != nil {
		return nil, err
	}
	container, err := requireByID(doc, ContainerID)
	if err != nil {
		return nil, err
	}
	form, err := requireByID(doc, FormID)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		doc:      doc,
		logger:   opts.Logger,
		location: opts.Location,
		renderer: Renderer{Document: doc, Catalog: opts.Catalog},
		client: Client{
			BaseURL:    opts.BaseURL,
			HTTPClient: opts.HTTPClient,
			Timeout:    opts.Timeout,
		},
		onResult:      opts.OnResult,
		maxCount:      opts.MaxCount,
		locationInput: locationInput,
		countInput:    countInput,
		container:     container,
	}

	c.releases = append(c.releases,
		picker.AddEventListener(PlaceChangeEvent, c.HandlePlaceChange),
		countInput.AddEventListener("change", func(dom.Event) { c.HandleCountChange() }),
		form.AddEventListener("submit", func(ev dom.Event) { c.HandleSubmit(ev) }),
	)

	if opts.RenderOnBind {
		c.HandleCountChange()
	}
	return c, nil
}

func requireByID(doc dom.Document, id string) (dom.Element, error) {
	el, ok := doc.GetElementByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrMissingElement, id)
	}
	return el, nil
}

// Release detaches every listener attached by Bind.
func (c *Controller) Release() {
	for _, release := range c.releases {
		release()
	}
	c.releases = nil
}

// HandlePlaceChange mirrors the event's place into the location input.
func (c *Controller) HandlePlaceChange(ev dom.Event) {
	MirrorAddress(ev.Place, c.locationInput)
}

// HandleCountChange rebuilds the slots for the current count value.
func (c *Controller) HandleCountChange() {
	c.renderer.Render(c.container, c.count())
}

// count is the parsed count field, capped at the configured maximum.
func (c *Controller) count() int {
	return min(ParseCount(c.countInput.Value()), c.maxCount)
}

// HandleSubmit cancels the native submission, collects the selected
// categories synchronously and posts them on a separate goroutine. The
// returned channel yields exactly one Result and is then closed.
func (c *Controller) HandleSubmit(ev dom.Event) <-chan Result {
	ev.PreventDefault()

	out := make(chan Result, 1)
	submissionID := uuid.NewString()
	count := c.count()
	itineraryID, err := ItineraryID(c.location.Pathname())
	if err != nil {
		c.finish(submissionID, Result{Err: err}, out)
		return out
	}
	categories := Collect(c.doc, count)

	c.logger.Printf("submission %s: posting %d categories for itinerary %s", submissionID, len(categories), itineraryID)

	go func() {
		res := c.client.Submit(context.Background(), itineraryID, categories)
		c.finish(submissionID, res, out)
	}()
	return out
}

func (c *Controller) finish(submissionID string, res Result, out chan<- Result) {
	if res.Err != nil {
		c.logger.Printf("submission %s failed: %v", submissionID, res.Err)
	} else {
		c.logger.Printf("submission %s accepted, redirecting to %s", submissionID, res.RedirectURL)
		c.location.Assign(res.RedirectURL)
	}
	if c.onResult != nil {
		c.onResult(res)
	}
	out <- res
	close(out)
}
