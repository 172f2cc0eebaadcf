package instrumentation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/renato0307/fluxtree/internal/logging"
)

const shutdownTimeout = 3 * time.Second

// Handler serves the metrics in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
	return promhttp.InstrumentMetricHandler(m.registry, h)
}

// Serve exposes /metrics and /healthz on addr until ctx is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	log := logging.Component("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		fmt.Fprint(rw, "ok")
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	stopped := make(chan error, 1)
	go func() {
		stopped <- server.ListenAndServe()
	}()
	log.Info("serving metrics", "address", addr)

	select {
	case <-ctx.Done():
	case err := <-stopped:
		return fmt.Errorf("metrics server stopped: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down metrics server", "error", err)
	}
	if err := <-stopped; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("metrics server stopped")
	return nil
}
