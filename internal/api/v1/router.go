package v1

import (
	"encoding/json"
	"net/http"

	"github.com/rs/cors"

	"itinerary-planner/internal/activities"
	"itinerary-planner/internal/catalog"
	"itinerary-planner/internal/logging"
	"itinerary-planner/internal/ui"
)

// RuntimeInfo describes the pieces of server configuration exposed for debugging.
type RuntimeInfo struct {
	Name        string `json:"name"`
	Addr        string `json:"addr"`
	Port        string `json:"port"`
	ReadTimeout string `json:"readTimeout"`
	DataPath    string `json:"dataPath"`
	BaseURL     string `json:"baseUrl"`
}

// Options configures the HTTP router.
type Options struct {
	Logger      logging.Logger
	Store       *activities.Store
	Catalog     catalog.Catalog
	Page        ui.PageOptions
	RuntimeInfo RuntimeInfo
	// AllowedOrigins lets pages served elsewhere post to the submission
	// endpoint. Empty disables CORS handling.
	AllowedOrigins []string
}

// NewRouter constructs the HTTP router serving the activity page and the
// endpoint it posts to.
func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logging.New()
	}
	if opts.Store == nil {
		opts.Store = activities.NewStore(activities.DefaultFilePath)
	}
	if opts.Catalog.Len() == 0 {
		opts.Catalog = catalog.Default()
	}

	mux := http.NewServeMux()
	pages := pageHandler{logger: opts.Logger, page: opts.Page}
	submissions := newActivitiesHandler{logger: opts.Logger, store: opts.Store, catalog: opts.Catalog}

	mux.Handle("GET /static/", http.StripPrefix("/static", ui.Handler()))
	mux.Handle("GET /itinerary/{id}/add-activities", pages)
	mux.Handle("/itinerary/{id}/new", methodSwitch{get: pages, post: submissions})
	mux.Handle("GET /itinerary/{id}", itineraryHandler{logger: opts.Logger, store: opts.Store})

	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"categories": opts.Catalog.Categories()})
	})
	mux.HandleFunc("GET /api/server/config", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, opts.RuntimeInfo)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("itinerary planner: open /itinerary/{id}/add-activities"))
	})

	var handler http.Handler = mux
	if len(opts.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", "Accept", logging.RequestIDHeader},
			ExposedHeaders: []string{logging.RequestIDHeader},
		}).Handler(mux)
	}
	return logging.WithHTTPLogging(handler, opts.Logger)
}

// methodSwitch routes GET and POST on one path and answers 405 otherwise.
type methodSwitch struct {
	get  http.Handler
	post http.Handler
}

func (m methodSwitch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		m.get.ServeHTTP(w, r)
	case http.MethodPost:
		m.post.ServeHTTP(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
