package api

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"weather-board/collector"
	"weather-board/datasource"
	"weather-board/intervals"
	"weather-board/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Config holds the collaborators of the server
type Config struct {
	Weather   datasource.WeatherProvider
	Builder   *collector.Builder
	Collector *collector.Collector
	IPs       datasource.IPResolver
	Locator   datasource.Locator
	Cities    []models.City
	// Width of a temperature band, DefaultWidth when zero
	Width     int
	StaticDir string
	Logger    *slog.Logger
}

// Server represents the web server
type Server struct {
	weather   datasource.WeatherProvider
	builder   *collector.Builder
	collector *collector.Collector
	ips       datasource.IPResolver
	locator   datasource.Locator
	cities    []models.City
	width     int
	logger    *slog.Logger
	router    *mux.Router
	server    *http.Server
}

// NewServer creates a new server listening on addr
func NewServer(cfg Config, addr string) *Server {
	width := cfg.Width
	if width <= 0 {
		width = intervals.DefaultWidth
	}

	s := &Server{
		weather:   cfg.Weather,
		builder:   cfg.Builder,
		collector: cfg.Collector,
		ips:       cfg.IPs,
		locator:   cfg.Locator,
		cities:    cfg.Cities,
		width:     width,
		logger:    cfg.Logger.With("component", "api"),
		router:    mux.NewRouter(),
	}

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/weather", s.handleWeatherForCity).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/board", s.handleBoard).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealthCheck).Methods(http.MethodGet)

	if cfg.StaticDir != "" {
		s.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(middleware.Recoverer)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins the server
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleIndex renders the board for the caller's own city
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.pageForRequest(r.Context(), r)
	s.render(w, page)
}

// handleWeatherForCity renders the board for ?city=&country=
func (s *Server) handleWeatherForCity(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	country := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("country")))
	if city == "" || country == "" {
		http.Error(w, "city and country query parameters are required", http.StatusBadRequest)
		return
	}

	page := s.pageForLocation(r.Context(), models.Location{City: city, CountryCode: country})
	s.render(w, page)
}

// handleBoard returns the board for the caller's city as JSON
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	page := s.pageForRequest(r.Context(), r)
	sendJSON(w, http.StatusOK, page)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) render(w http.ResponseWriter, page Page) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
