package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

// devproxy fronts api.football-data.org for local development: it injects the
// auth token server-side so browser clients need neither the token nor CORS
// exemptions. Run the API with FOOTBALL_DATA_AUTH_VIA_PROXY=true and point
// FOOTBALL_DATA_BASE_URL at this process.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	token := strings.TrimSpace(os.Getenv("FOOTBALL_DATA_TOKEN"))
	if token == "" {
		logger.Error("FOOTBALL_DATA_TOKEN is required")
		os.Exit(1)
	}

	upstream := getEnv("DEV_PROXY_UPSTREAM", "https://api.football-data.org")
	target, err := url.Parse(upstream)
	if err != nil {
		logger.Error("parse DEV_PROXY_UPSTREAM", "error", err)
		os.Exit(1)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.Host = target.Host
			r.Out.Header.Set("X-Auth-Token", token)
		},
	}

	srv := &http.Server{
		Addr:              getEnv("DEV_PROXY_ADDR", ":8090"),
		Handler:           withCORS(proxy),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("dev proxy starting", "addr", srv.Addr, "upstream", upstream)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("dev proxy failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("dev proxy stopped")
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
