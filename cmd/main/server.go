package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/CTAG07/Sashizume/pkg/card"
	"github.com/CTAG07/Sashizume/pkg/title"
)

// Server wires the card pages and the JSON API onto one router.
type Server struct {
	config      *Config
	logger      *slog.Logger
	gen         title.Generator
	cards       *card.Manager
	resultsAPI  *ResultsAPI
	templateAPI *TemplateAPI
	router      *chi.Mux
}

// NewServer creates the server and registers all routes.
func NewServer(config *Config, logger *slog.Logger, gen title.Generator, cards *card.Manager) *Server {
	s := &Server{
		config: config,
		logger: logger,
		gen:    gen,
		cards:  cards,
		router: chi.NewMux(),
	}
	s.resultsAPI = NewResultsAPI(gen, s.baseURL, logger)
	s.templateAPI = NewTemplateAPI(cards, gen, logger)

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(logger))
	s.router.Use(middleware.Recoverer)
	if config.Telemetry.Enabled {
		s.router.Use(otelchi.Middleware(config.Telemetry.ServiceName, otelchi.WithChiRoutes(s.router)))
	}

	api := humachi.New(s.router, huma.DefaultConfig(title.AppName, Version))
	RegisterServerAPI(api)
	s.resultsAPI.Register(api)
	s.templateAPI.Register(api)

	s.router.Get("/", s.handleCard)
	s.router.Get("/qr.png", s.handleQR)
	s.router.Get("/favicon.ico", handleFavicon)

	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) baseURL() string {
	return s.cards.Config().BaseURL
}

// handleCard renders the card page. A permalink (t present) is shown as
// shared; otherwise k and v are generated, falling back to the initial keyword
// on a first visit. random=1 replaces v with a random variant.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var result title.Result
	var keyword string
	if ref, ok := title.ParseReference(q); ok {
		result = title.Hydrate(ref)
		keyword = ref.Keyword
	} else {
		keyword = title.InitialKeyword
		if q.Has("k") {
			keyword = q.Get("k")
		}
		variant := title.ParseVariant(q.Get("v"))
		if q.Get("random") == "1" {
			variant = title.RandomVariant()
		}

		var err error
		result, err = generateFor(r.Context(), s.gen, keyword, variant)
		if err != nil {
			s.logger.Error("Failed to generate result", "keyword", keyword, "variant", variant, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	page, err := card.NewPage(s.baseURL(), result, keyword)
	if err != nil {
		s.logger.Error("Failed to build permalink", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err = s.cards.Render(&buf, page); err != nil {
		s.logger.Error("Failed to render card", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleQR serves a QR code of the permalink for t, k and v.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	ref, ok := title.ParseReference(r.URL.Query())
	if !ok {
		respondWithError(w, http.StatusBadRequest, "t must not be empty")
		return
	}
	cfg := s.cards.Config()
	if !cfg.QREnabled {
		respondWithError(w, http.StatusNotFound, "QR codes are disabled")
		return
	}
	link, err := title.Permalink(cfg.BaseURL, ref)
	if err != nil {
		s.logger.Error("Failed to build permalink", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to build permalink")
		return
	}
	png, err := card.QRCode(link, cfg.QRSize)
	if err != nil {
		s.logger.Warn("Failed to generate QR code", "error", err)
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(png)
}

// handleFavicon returns no content so browsers stop asking.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// requestLogger logs one line per request at info level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("Served request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"remote_addr", r.RemoteAddr,
					"request_id", middleware.GetReqID(r.Context()))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode JSON response", "error", err)
		}
	}
}
