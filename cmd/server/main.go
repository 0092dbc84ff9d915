package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	web "workshops/internal/adapters/http"
	"workshops/internal/bootstrap"
	"workshops/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	bootstrap.InitLogging(cfg, os.Stderr)

	rt, err := bootstrap.Setup(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer rt.Close()

	mux := web.NewMux(
		web.Deps{Store: rt.Store, Collector: rt.Collector},
		web.Options{
			CSRFKey:            cfg.CSRFKeyBytes(),
			SecureCookies:      cfg.IsProduction(),
			RateLimitPerSecond: cfg.RateLimitPerSecond,
			SlowRequestMs:      cfg.SlowRequestMs,
			AllowTestData:      !cfg.IsProduction(),
		},
	)

	slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "detail_source", cfg.DetailSource)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
