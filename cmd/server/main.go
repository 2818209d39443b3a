package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sumo/arena"
	"sumo/chain"
	"sumo/config"
	"sumo/network"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.DebugMode {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	var reader chain.Reader
	if cfg.ContractAddress != "" {
		client, err := chain.Dial(cfg.RPCURL, cfg.ContractAddress, log)
		if err != nil {
			log.Error("chain mirror disabled", "err", err)
		} else {
			defer client.Close()
			reader = client
			log.Info("chain mirror enabled", "rpc", cfg.RPCURL, "contract", cfg.ContractAddress)
		}
	}

	a := arena.New(arena.Config{
		MinPlayers:        cfg.MinPlayers,
		MinAliveToEnd:     cfg.MinAliveToEnd(),
		ChainPollInterval: cfg.ChainPollInterval,
	}, reader, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go a.Run(ctx)

	ws := network.NewServer(a, log)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("server listening", "port", cfg.Port, "minPlayers", cfg.MinPlayers, "debug", cfg.DebugMode)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
