package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
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
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, err := app.Connect(cfg, true)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer in.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := gin.New()
	if err := app.BuildAPI(ctx, cfg, r, in, reg); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	err = bootstrap.StartHTTPServer(ctx, r, bootstrap.ServerConfigFrom(cfg.HTTP), bootstrap.NewStdoutAuditLogger(logger))
	if err != nil {
		logger.Error("http server failed", zap.Error(err))
	}
}
