// Package http is the proxy's HTTP surface: the /api relay endpoints plus
// health, readiness and metrics.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/country-explorer/internal/domain"
	"github.com/couchcryptid/country-explorer/internal/observability"
	"github.com/couchcryptid/country-explorer/internal/resolver"
)

// CountryService resolves country lists.
type CountryService interface {
	FetchAll(ctx context.Context) []domain.RawCountry
	FetchByName(ctx context.Context, name string) []domain.RawCountry
}

// NewsService resolves headlines.
type NewsService interface {
	Top(ctx context.Context, country, q string, pageSize int) []domain.NewsItem
}

// WeatherService resolves current conditions.
type WeatherService interface {
	ByCity(ctx context.Context, city string) *domain.WeatherSnapshot
	ByCityOrCoords(ctx context.Context, city string, coords []float64) *domain.WeatherSnapshot
}

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	Countries      CountryService
	News           NewsService
	Weather        WeatherService
	Ready          sharedobs.ReadinessChecker
	Metrics        *observability.Metrics
	Logger         *slog.Logger
}

// Server is the proxy HTTP server.
type Server struct {
	httpServer *http.Server
	opts       Options
	logger     *slog.Logger
}

// NewServer creates the proxy server and its routes.
func NewServer(opts Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:        opts.Addr,
			Handler:     r,
			ReadTimeout: 10 * time.Second,
			// A fully failing chain runs every upstream timeout in turn.
			WriteTimeout: 3 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		opts:   opts,
		logger: opts.Logger,
	}

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.instrument)

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(opts.Ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/countries", s.handleCountries)
		r.Get("/countries/{name}", s.handleCountryByName)
		r.Get("/news/top", s.handleNews)
		r.Get("/weather", s.handleWeather)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, nonNil(s.opts.Countries.FetchAll(r.Context())))
}

func (s *Server) handleCountryByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	sharedobs.WriteJSON(w, http.StatusOK, nonNil(s.opts.Countries.FetchByName(r.Context(), name)))
}

type newsResponse struct {
	Articles []domain.NewsItem `json:"articles"`
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	articles := s.opts.News.Top(r.Context(), q.Get("country"), q.Get("q"), pageSize(q.Get("pageSize")))
	if articles == nil {
		articles = []domain.NewsItem{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, newsResponse{Articles: articles})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := q.Get("city")

	var snap *domain.WeatherSnapshot
	if lat, lng, ok := coords(q.Get("lat"), q.Get("lng")); ok {
		snap = s.opts.Weather.ByCityOrCoords(r.Context(), city, []float64{lat, lng})
	} else {
		snap = s.opts.Weather.ByCity(r.Context(), city)
	}
	sharedobs.WriteJSON(w, http.StatusOK, snap)
}

// instrument logs each request and counts it by route pattern and status.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if s.opts.Metrics != nil {
			s.opts.Metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		}
		s.logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"elapsed", time.Since(start),
		)
	})
}

// pageSize parses the news pageSize parameter: absent or malformed means the
// default, anything else is clamped to the allowed range.
func pageSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return resolver.DefaultNewsPageSize
	}
	if n < 1 {
		return 1
	}
	return resolver.ClampPageSize(n)
}

func coords(latRaw, lngRaw string) (float64, float64, bool) {
	if latRaw == "" || lngRaw == "" {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(latRaw, 64)
	lng, err2 := strconv.ParseFloat(lngRaw, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

func nonNil(v []domain.RawCountry) []domain.RawCountry {
	if v == nil {
		return []domain.RawCountry{}
	}
	return v
}
