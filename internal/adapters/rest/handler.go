package rest

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ewilliams-labs/enisai/internal/core/services"
)

const defaultMaxUploadBytes = 32 << 20

// Options configures the HTTP adapter.
type Options struct {
	MaxUploadBytes int64
	RateLimit      float64 // uploads per second; 0 disables limiting
	RateBurst      int
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc       *services.Analyzer // Dependency on the Core Service
	router    *http.ServeMux     // Standard library router
	log       *zap.Logger
	limiter   *rate.Limiter
	maxUpload int64
	index     *template.Template
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Analyzer, log *zap.Logger, opts Options) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	h := &Handler{
		svc:       svc,
		router:    http.NewServeMux(),
		log:       log,
		maxUpload: opts.MaxUploadBytes,
		index:     indexTemplate,
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// Every request passes through panic recovery and access logging.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.recoverer(h.logRequests(h.router)).ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)

	// Upload page and classification
	h.router.HandleFunc("GET /{$}", h.Index)
	h.router.Handle("POST /upload", h.rateLimited(http.HandlerFunc(h.Upload)))
	h.router.Handle("POST /api/classify", h.rateLimited(http.HandlerFunc(h.Classify)))

	// History and catalog
	h.router.HandleFunc("GET /api/analyses", h.ListAnalyses)
	h.router.HandleFunc("GET /api/analyses/{id}", h.GetAnalysis)
	h.router.HandleFunc("GET /api/genres", h.ListGenres)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Enisai is listening 🎧"})
}
