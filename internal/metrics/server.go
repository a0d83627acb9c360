package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/haiquanvn/aquamon/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartMetricsServer starts the metrics HTTP server on the configured port.
// It runs in a goroutine and handles the /metrics endpoint. A missing port
// disables it entirely.
func StartMetricsServer(conf *config.Config) {
	if conf.Metrics.Port == "" {
		return
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		slog.Info("metrics server starting", slog.String("port", conf.Metrics.Port))
		metricsServer := &http.Server{
			Addr:              ":" + conf.Metrics.Port,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		if err := metricsServer.ListenAndServe(); err != nil {
			slog.Error("metrics server stopped", slog.Any("err", err))
		}
	}()
}
