package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/app"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/bootstrap"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/config"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunConsumer(ctx, cfg); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
