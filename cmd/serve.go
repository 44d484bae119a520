package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/markjakearzadon/denovi-gobackend/internal/crons"
	"github.com/markjakearzadon/denovi-gobackend/internal/db"
	"github.com/markjakearzadon/denovi-gobackend/internal/handlers"
	"github.com/markjakearzadon/denovi-gobackend/internal/metrics"
	"github.com/markjakearzadon/denovi-gobackend/internal/sanitizer"
	"github.com/markjakearzadon/denovi-gobackend/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP API and the scheduled expiry cleanup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET must be set")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		database, closeDB, err := connect(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := db.EnsureIndexes(ctx, database); err != nil {
			log.Warn().Err(err).Str("section", "init").Msg("Unable to ensure indexes")
		}
		metrics.MustRegister(prometheus.DefaultRegisterer)

		loc := cfg.Location()
		announcementService := services.NewAnnouncementService(services.NewMongoAnnouncements(database), loc)
		userService := services.NewUserService(database)
		tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

		cleanup, err := crons.Start(cfg.CleanupSchedule, announcementService)
		if err != nil {
			return err
		}
		defer cleanup.Stop()

		router := handlers.NewRouter(
			handlers.NewAnnouncementHandler(announcementService, loc),
			handlers.NewUserHandler(userService, tokenService, sanitizer.NewRateLimiter(nil), handlers.LoginLimit{
				MaxAttempts: cfg.LoginMaxAttempts,
				Window:      cfg.LoginWindow,
				TrustProxy:  cfg.TrustProxy,
			}),
			tokenService,
		)

		server := &http.Server{
			Addr:         "0.0.0.0:" + cfg.Port,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()

		log.Info().Str("section", "init").Str("port", cfg.Port).Msg("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
