package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/metrics"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
)

type HTTPServer struct {
	srv *http.Server
}

// Router serves /healthz and /metrics. A nil pinger means an in-memory store,
// which is always healthy.
func Router(pinger store.Pinger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
			defer cancel()
			t0 := time.Now()
			if err := pinger.Ping(ctx); err != nil {
				http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
			metrics.ObserveDBPing(time.Since(t0))
		}
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

func StartHTTP(ctx context.Context, addr string, pinger store.Pinger, log *zap.Logger) *HTTPServer {
	srv := &http.Server{Addr: addr, Handler: Router(pinger), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}
