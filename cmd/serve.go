package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/geosafe/impact-engine/internal/impact"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for impact requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runner, err := newRunner(cfg)
		if err != nil {
			return err
		}
		defer runner.Close()

		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RatePerSec), cfg.Server.RateBurst)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(runner, limiter),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter builds the HTTP API over a runner and a request rate limiter.
func newRouter(runner *runner, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Post("/v1/impact", func(w http.ResponseWriter, req *http.Request) {
		if !limiter.Allow() {
			http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}

		var body struct {
			Function    string `json:"function"`
			Hazard      string `json:"hazard"`
			Exposure    string `json:"exposure"`
			GenderRatio string `json:"gender_ratio,omitempty"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if body.Function == "" || body.Hazard == "" || body.Exposure == "" {
			http.Error(w, `{"error":"function, hazard and exposure are required"}`, http.StatusBadRequest)
			return
		}

		result, rec, err := runner.Run(req.Context(), body.Function, body.Hazard, body.Exposure, body.GenderRatio)
		if err != nil {
			zap.L().Error("impact request failed",
				zap.String("function", body.Function),
				zap.String("hazard", body.Hazard),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":        rec.ID,
			"name":      result.Name,
			"evacuated": result.Evacuated,
			"needs":     result.Needs,
			"summary":   result.Keywords.Get(impact.KeywordImpactSummary),
		})
	})

	return r
}
