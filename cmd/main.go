package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitrine/internal/config"
	"vitrine/internal/devserver"

	_ "vitrine/docs"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg := config.New()
	if *cfgPath != "" {
		if err := cfg.LoadFile(*cfgPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	store := devserver.NewStore()
	srv := devserver.NewServer(store)

	httpServer := &http.Server{
		Addr:    cfg.Serve.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("dev backend listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
