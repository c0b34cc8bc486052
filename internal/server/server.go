package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/GameVault_Go/internal/activity"
	"github.com/osse101/GameVault_Go/internal/ban"
	"github.com/osse101/GameVault_Go/internal/handler"
	"github.com/osse101/GameVault_Go/internal/inventory"
	"github.com/osse101/GameVault_Go/internal/ledger"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/metrics"
	"github.com/osse101/GameVault_Go/internal/player"
	"github.com/osse101/GameVault_Go/internal/repository"
	"github.com/osse101/GameVault_Go/internal/settings"
	"github.com/osse101/GameVault_Go/internal/vehicle"
)

// Config is the transport configuration of the admin API
type Config struct {
	Port               int
	Version            string
	APIKey             string
	TrustedProxies     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	MaxRequestBytes    int64
}

// Deps are the services the admin API exposes
type Deps struct {
	DB        handler.Pinger
	Players   player.Service
	Ledger    ledger.Service
	Inventory inventory.Service
	Vehicles  vehicle.Service
	Bans      ban.Service
	Activity  activity.Service
	Settings  settings.Service
	Factions  repository.Faction
	Sessions  handler.Sessions
	Reports   handler.RecentReports
}

type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and the HTTP server. Nothing listens until Start.
func NewServer(cfg Config, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter wires middleware and routes. Middleware runs outermost first.
func NewRouter(cfg Config, deps Deps) http.Handler {
	maxBytes := cfg.MaxRequestBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBytes
	}
	guard := NewClientGuard(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, guard))
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, guard))
	r.Use(RequestSizeLimitMiddleware(maxBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DB))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/version", handler.HandleVersion(cfg.Version))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", handler.HandleListSettings(deps.Settings))
			r.Get("/{key}", handler.HandleGetSetting(deps.Settings))
			r.Put("/{key}", handler.HandleSetSetting(deps.Settings))
			r.Delete("/{key}", handler.HandleDeleteSetting(deps.Settings))
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", handler.HandleListPlayers(deps.Players))
			r.Get("/search", handler.HandleSearchPlayers(deps.Players))
			r.Get("/top/playtime", handler.HandleTopPlayTime(deps.Players))
			r.Get("/top/wealth", handler.HandleTopWealth(deps.Players))
			r.Get("/handle/{handle}", handler.HandleGetPlayerByHandle(deps.Players))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler.HandleGetPlayer(deps.Players))
				r.Patch("/", handler.HandleUpdatePlayer(deps.Players))
				r.Delete("/", handler.HandleDeletePlayer(deps.Players))

				r.Get("/balance", handler.HandleGetBalance(deps.Ledger))
				r.Post("/balance/adjust", handler.HandleAdjustBalance(deps.Ledger))
				r.Post("/balance/deposit", handler.HandleDeposit(deps.Ledger))
				r.Post("/balance/withdraw", handler.HandleWithdraw(deps.Ledger))

				r.Get("/inventory", handler.HandleGetInventory(deps.Inventory))
				r.Post("/inventory/add", handler.HandleAddItem(deps.Inventory))
				r.Post("/inventory/remove", handler.HandleRemoveItem(deps.Inventory))
				r.Delete("/inventory", handler.HandleClearInventory(deps.Inventory))

				r.Get("/vehicles", handler.HandleGetPlayerVehicles(deps.Vehicles))
				r.Get("/ban", handler.HandleGetPlayerBan(deps.Bans))
			})
		})

		r.Post("/ledger/transfer", handler.HandleTransfer(deps.Ledger))
		r.Post("/inventory/transfer", handler.HandleTransferItem(deps.Inventory))

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", handler.HandleListVehicles(deps.Vehicles))
			r.Post("/", handler.HandleCreateVehicle(deps.Vehicles))
			r.Get("/spawned", handler.HandleSpawnedVehicles(deps.Vehicles))
			r.Get("/plate/{plate}", handler.HandleGetVehicleByPlate(deps.Vehicles))
			r.Get("/{id}", handler.HandleGetVehicle(deps.Vehicles))
			r.Delete("/{id}", handler.HandleDeleteVehicle(deps.Vehicles))
			r.Post("/{id}/transfer", handler.HandleTransferVehicle(deps.Vehicles))
		})

		r.Route("/bans", func(r chi.Router) {
			r.Get("/", handler.HandleListBans(deps.Bans))
			r.Post("/", handler.HandleCreateBan(deps.Bans))
			r.Delete("/{id}", handler.HandleLiftBan(deps.Bans))
		})

		r.Get("/activity", handler.HandleQueryActivity(deps.Activity))

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", handler.HandleListSessions(deps.Sessions))
			r.Post("/{handle}/save", handler.HandleSaveSession(deps.Sessions))
			r.Post("/{handle}/kick", handler.HandleKickSession(deps.Sessions))
		})

		r.Route("/factions", func(r chi.Router) {
			r.Get("/", handler.HandleListFactions(deps.Factions))
			r.Post("/", handler.HandleCreateFaction(deps.Factions))
			r.Get("/{id}", handler.HandleGetFaction(deps.Factions))
			r.Post("/{id}/funds", handler.HandleAdjustFactionFunds(deps.Factions))
		})

		r.Get("/admin/reports", handler.HandleRecentReports(deps.Reports))
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probes and scrapes are too frequent to log
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start listens until Stop is called. It returns http.ErrServerClosed after a clean stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
