// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"afisha-backend/internal/config"
	"afisha-backend/internal/database"
	"afisha-backend/internal/handler"
	"afisha-backend/internal/repository"
	"afisha-backend/internal/service"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.MigrateUp(cfg.Database.URL(), cfg.Database.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}
	logger.Info().Msg("migrations applied")

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	db := database.New(pool)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	eventRepo := repository.NewEventRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	compilationRepo := repository.NewCompilationRepository(db)

	userSvc := service.NewUserService(userRepo, logger)
	categorySvc := service.NewCategoryService(categoryRepo, logger)
	eventSvc := service.NewEventService(eventRepo, userRepo, categoryRepo, logger)
	requestSvc := service.NewRequestService(db, eventRepo, userRepo, requestRepo, logger)
	compilationSvc := service.NewCompilationService(compilationRepo, eventRepo, logger)

	validate := handler.NewValidator()
	router := handler.NewRouter(handler.Services{
		Users:        handler.NewUserHandler(userSvc, validate),
		Categories:   handler.NewCategoryHandler(categorySvc, validate),
		Events:       handler.NewEventHandler(eventSvc, validate),
		Requests:     handler.NewRequestHandler(requestSvc, validate),
		Compilations: handler.NewCompilationHandler(compilationSvc, validate),
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("server stopped")
}
