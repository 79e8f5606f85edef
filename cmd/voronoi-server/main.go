// Command voronoi-server exposes the voronoi engine over HTTP: compute,
// relax, and batch-compute endpoints, plus a Prometheus-scraped /metrics
// endpoint, as a thin frontend following the same gin+otelgin shape as
// the rest of the retrieved corpus's services.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	debug := flag.Bool("debug", false, "enable gin debug mode and verbose request logging")
	flag.Parse()

	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := newTelemetryProvider(ctx)
	if err != nil {
		slog.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	srv := newServer(tp)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("voronoi-server"))
	router.Use(requestIDMiddleware())
	if *debug {
		router.Use(gin.Logger())
	}

	v1 := router.Group("/v1")
	v1.POST("/diagram", srv.handleComputeDiagram)
	v1.POST("/relax", srv.handleRelax)
	v1.POST("/batch", srv.handleBatch)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	go func() {
		slog.Info("voronoi-server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down voronoi-server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	if err := tp.shutdown(shutdownCtx); err != nil {
		slog.Error("telemetry shutdown failed", "error", err)
	}
}
