package app

import (
	"context"
	"net/http"
	"time"

	"github.com/Spok95/progbase-bot/internal/metrics"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	srv *http.Server
}

func NewMux(db Pinger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func StartHTTP(ctx context.Context, addr string, db Pinger) *HTTPServer {
	srv := &http.Server{Addr: addr, Handler: NewMux(db), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		_ = srv.ListenAndServe() // закрываем аккуратно при Shutdown
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}
