package metrics

import (
	"context"
	"expvar"
	"net/http"
	"net/http/pprof"

	"github.com/framr/framr/internal/logger"
)

// Serve starts an http server exposing expvar counters and pprof profiles,
// for keeping an eye on long-running batches
func Serve(ctx context.Context, log *logger.Logger, listenAddress string) {
	router := http.NewServeMux()
	router.Handle("/metrics", expvar.Handler())

	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)

	server := &http.Server{
		Addr:    listenAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Infof("shutting down the debug http server: %s", err)
		}
	}()

	log.Infof("debug http server listening on %s", listenAddress)

	<-ctx.Done()

	if err := server.Close(); err != nil {
		log.Warnf("error shutting down debug http server: %s", err)
	}
}
