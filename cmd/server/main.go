package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"brickforge.ai/internal/archive"
	"brickforge.ai/internal/config"
	"brickforge.ai/internal/runlog"
	"brickforge.ai/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", "", "http listen address (default from config)")
		configPath = flag.String("config", "", "path to config.yaml (optional)")
		dataDir    = flag.String("data", "", "runtime data directory (default from config)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite run archive")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg := config.Defaults()
	if strings.TrimSpace(*configPath) != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Fatalf("load config: %v", err)
		}
	}
	if strings.TrimSpace(*addr) != "" {
		cfg.Addr = *addr
	}
	if strings.TrimSpace(*dataDir) != "" {
		cfg.DataDir = *dataDir
	}
	_ = os.MkdirAll(cfg.DataDir, 0o755)

	var store *archive.Store
	if !*disableDB {
		var err error
		store, err = archive.Open(filepath.Join(cfg.DataDir, "runs.db"))
		if err != nil {
			logger.Fatalf("open run archive: %v", err)
		}
		defer store.Close()
	}

	runs := runlog.New(filepath.Join(cfg.DataDir, "runs"))
	defer runs.Close()

	srv := ws.NewServer(cfg.Limits, store, runs, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", srv.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Printf("listening on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Printf("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
}
