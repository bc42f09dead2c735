package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"minihttp/internal/handlers"
	"minihttp/internal/server"
)

func main() {
	var (
		addr = flag.String("addr", "127.0.0.1:4221", "listen address")
		dir  = flag.String("directory", "", "base directory for /files/ routes")
	)
	flag.Parse()

	r := handlers.Routes(*dir)

	cfg := server.DefaultConfig()
	cfg.Addr = *addr
	cfg.Logger = server.NewDefaultLogger()

	srv := server.New(cfg, r.Dispatch)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := srv.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}

	stats := srv.Stats()
	fmt.Printf("requests=%d errors=%d avg_latency=%s\n",
		stats.RequestsTotal, stats.ErrorsTotal, stats.AverageLatency)
}
