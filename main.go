package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	config := MustLoadConfig()
	registry := NewRegistry()
	tokens := NewReconnectJWT(config.JwtSecret)

	tcpServer := NewTCPServer(registry, tokens)
	if err := tcpServer.Listen(config.TCPAddr); err != nil {
		log.Fatal().Err(err).Msg("Unable to listen on TCP address")
	}
	LogStartedTCPServer(config.TCPAddr)
	go tcpServer.Serve()

	httpServer := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           NewHTTPServer(registry, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		LogStartedHTTPServer(config.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(shutdownCtx)
	tcpServer.Shutdown()
}
