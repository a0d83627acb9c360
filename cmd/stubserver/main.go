// Command stubserver runs the in-memory API double as a standalone process,
// for pointing the client at during local development. All state lives in
// memory and resets on restart.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/haiquanvn/aquamon/internal/apitest"
	"github.com/haiquanvn/aquamon/internal/logger"
)

const portEnv = "STUB_SERVER_PORT"

func main() {
	logger.InitJSONLogger(true)

	port := os.Getenv(portEnv)
	if port == "" {
		port = "8080"
	}

	backend := apitest.New()
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	slog.Info("stub server starting",
		slog.String("port", port),
		slog.String("login", "admin@aquamon.vn / secret123"),
	)
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, "stub server stopped:", err)
		os.Exit(1)
	}
}
