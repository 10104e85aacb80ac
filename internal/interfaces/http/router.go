package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	payoutUsecases "liken/internal/application/payout/usecases"
	"liken/internal/infrastructure/auth"
	"liken/internal/infrastructure/config"
	"liken/internal/infrastructure/ledgerstore"
	"liken/internal/infrastructure/repository"
	"liken/internal/interfaces/http/handlers"
	"liken/internal/interfaces/http/middleware"
	"liken/internal/shared/logger"
)

// Router wires the HTTP surface for agency-facing payout endpoints.
type Router struct {
	engine        *gin.Engine
	payoutHandler *handlers.PayoutHandler
	authMW        *middleware.AuthMiddleware
	server        *http.Server
	logger        logger.Interface
}

func NewRouter(cfg *config.Config, log logger.Interface) *Router {
	gin.SetMode(ginMode(cfg.Server.Mode))

	store := ledgerstore.NewClient(cfg.LedgerStore)
	settingsRepo := repository.NewPayoutSettingsRepository(store)
	recordRepo := repository.NewEarningRecordRepository(store)
	requestRepo := repository.NewPayoutRequestRepository(store)

	payoutHandler := handlers.NewPayoutHandler(
		payoutUsecases.NewGetPayoutSettingsUseCase(settingsRepo, cfg.Payout, log),
		payoutUsecases.NewUpdatePayoutSettingsUseCase(settingsRepo, log),
		payoutUsecases.NewGetUpcomingScheduleUseCase(settingsRepo, recordRepo, cfg.Payout, log),
		payoutUsecases.NewListPayoutHistoryUseCase(requestRepo, log),
		log,
	)

	jwtService := auth.NewJWTService(cfg.Auth.JWT)
	authMW := middleware.NewAuthMiddleware(jwtService, log)

	r := &Router{
		engine:        gin.New(),
		payoutHandler: payoutHandler,
		authMW:        authMW,
		logger:        log,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))

	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	agency := v1.Group("/agency", r.authMW.RequireAgency())
	{
		agency.GET("/payout-settings", r.payoutHandler.GetSettings)
		agency.PUT("/payout-settings", r.payoutHandler.UpdateSettings)
		agency.GET("/payout-schedule", r.payoutHandler.GetSchedule)
		agency.GET("/payouts", r.payoutHandler.ListPayouts)
	}
}

// Engine exposes the underlying gin engine, mainly for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server and blocks until it exits.
func (r *Router) Run(addr string) error {
	r.server = &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	r.logger.Infow("starting HTTP server", "addr", addr)
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (r *Router) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
