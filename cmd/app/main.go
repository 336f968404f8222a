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

	apiHttp "github.com/aetherdigital/backend/internal/api/http"
	"github.com/aetherdigital/backend/internal/app"
	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/queue/asynqserver"
	queueClient "github.com/aetherdigital/backend/internal/queue/client"
	"github.com/aetherdigital/backend/internal/server"
	"github.com/aetherdigital/backend/internal/service"
	"github.com/aetherdigital/backend/internal/worker"
	"github.com/aetherdigital/backend/pkg/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	if _, err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		log.Fatalf("logger init failed: %s", err)
	}
	defer logger.Sync()

	logger.Info("starting backend api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	core, err := app.New(context.Background(), cfg)
	if err != nil {
		logger.Error("init failed", zap.Error(err))
		os.Exit(1)
	}
	defer core.Close()

	emailSender, err := app.NewEmailSender(cfg)
	if err != nil {
		logger.Error("email sender creation failed", zap.Error(err))
		return
	}

	var queue service.VerificationQueue
	if cfg.Queue.Enabled {
		asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
		defer asynqClient.Close()
		defer queueClient.SetClient(asynqClient)()
		queue = queueClient.NewVerificationQueue()
	}

	// Services & API Handlers
	services, err := core.Services(emailSender, queue)
	if err != nil {
		logger.Error("services creation failed", zap.Error(err))
		return
	}

	var queueServer *asynq.Server
	if cfg.Queue.Enabled {
		workers := worker.NewWorkers(worker.Deps{Services: services})
		var mux *asynq.ServeMux
		queueServer, mux = asynqserver.New(cfg.Cache, cfg.Queue, workers)
		if err := queueServer.Start(mux); err != nil {
			logger.Error("queue server start failed", zap.Error(err))
			return
		}
		logger.Info("queue server started")
	}

	handlers, err := apiHttp.NewHandlers(services, cfg)
	if err != nil {
		logger.Error("handlers creation failed", zap.Error(err))
		return
	}

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	if queueServer != nil {
		queueServer.Shutdown()
	}

	logger.Info("app stopped")
}
