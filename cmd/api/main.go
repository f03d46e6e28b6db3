package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UJJWALLAAD67/sportsbook/internal/app"
	"github.com/UJJWALLAAD67/sportsbook/internal/clock"
	"github.com/UJJWALLAAD67/sportsbook/internal/config"
	"github.com/UJJWALLAAD67/sportsbook/internal/events"
	"github.com/UJJWALLAAD67/sportsbook/internal/storage/postgres"
	transporthttp "github.com/UJJWALLAAD67/sportsbook/internal/transport/http"
	"github.com/UJJWALLAAD67/sportsbook/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	var publisher app.EventPublisher = events.Noop{}
	if cfg.AMQPURL != "" {
		pub, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("connect to broker: %v", err)
		}
		defer pub.Close()
		publisher = pub
	} else {
		logger.Printf("WARN: AMQP_URL not set, booking events disabled")
	}

	clk := clock.NewSystem()
	bookingRepo := postgres.NewBookingRepository(pool)
	bookingSvc := app.NewBookingService(bookingRepo, clk, publisher, app.WithTxTimeout(cfg.TxTimeout))
	availabilityRepo := postgres.NewAvailabilityRepository(pool)
	availabilitySvc := app.NewAvailabilityService(availabilityRepo)
	venueRepo := postgres.NewVenueRepository(pool)
	venueSvc := app.NewVenueService(venueRepo, clk)
	settlementRepo := postgres.NewSettlementRepository(pool)
	settlementSvc := app.NewSettlementService(settlementRepo, publisher)

	authed := func(h http.Handler) http.Handler {
		return transporthttp.RequireAuth(cfg.JWTSecret, h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/bookings", authed(transporthttp.HandleBookings(bookingSvc, availabilitySvc)))
	mux.Handle("/bookings/user", authed(transporthttp.HandleUserBookings(availabilitySvc)))
	mux.Handle("/bookings/", authed(transporthttp.HandleBookingByID(availabilitySvc)))
	mux.Handle("/owner/venues", authed(transporthttp.RequireRole(transporthttp.RoleOwner, transporthttp.HandleOwnerVenues(venueSvc))))
	mux.Handle("/admin/facilities", authed(transporthttp.RequireRole(transporthttp.RoleAdmin, transporthttp.HandleAdminFacilities(venueSvc))))
	mux.Handle("/admin/facilities/", authed(transporthttp.RequireRole(transporthttp.RoleAdmin, transporthttp.HandleApproveVenue(venueSvc))))
	mux.Handle("/payments/intent", authed(transporthttp.HandleRegisterPaymentIntent(settlementSvc)))
	mux.Handle("/payments/webhook", transporthttp.HandleSettlementWebhook(settlementSvc, cfg.WebhookSecret))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
