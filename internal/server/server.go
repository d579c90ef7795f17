package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mengyangyangs/CodeAutoTranslate/internal/config"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/dispatch"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/handler"
	"github.com/mengyangyangs/CodeAutoTranslate/internal/middleware"
)

// timeoutSlack keeps the server-side deadline behind the provider timeout,
// so a slow upstream is reported by the handler as 504.
const timeoutSlack = 10 * time.Second

// SetupMux wires handlers with the full middleware chain.
func SetupMux(d *dispatch.Dispatcher, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handler.Health(d))
	mux.HandleFunc("/api/comment", handler.Comment(d, cfg.DefaultTargetLang, cfg.MaxUploadBytes))
	mux.Handle("/metrics", promhttp.Handler())

	var timeout time.Duration
	if cfg.RequestTimeout > 0 {
		timeout = cfg.RequestTimeout + timeoutSlack
	}
	return middleware.Chain(mux, middleware.Options{
		AllowedOrigin: cfg.AllowedOrigin,
		MaxBodyBytes:  handler.BodyLimit(cfg.MaxUploadBytes),
		Timeout:       timeout,
	})
}
