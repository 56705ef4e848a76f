// Package main provides the arena server binary: an HTTP listener serving the
// websocket endpoint, the lobby listing API, and a health probe.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/openduel/arena/internal/config"
	"github.com/openduel/arena/internal/game/arena"
	"github.com/openduel/arena/internal/game/lobby"
	"github.com/openduel/arena/internal/game/session"
	"github.com/openduel/arena/internal/gateway"
	"github.com/openduel/arena/internal/observability"
	"github.com/openduel/arena/internal/server"
	"github.com/openduel/arena/internal/transport/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults")
	arenaFile := flag.String("arena", "", "path to arena definition file; overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	arenaPath := cfg.Game.ArenaFile
	if *arenaFile != "" {
		arenaPath = *arenaFile
	}
	a := arena.Default()
	if arenaPath != "" {
		a, err = arena.LoadFromFile(arenaPath)
		if err != nil {
			logger.Fatal("loading arena", zap.String("path", arenaPath), zap.Error(err))
		}
		logger.Info("arena loaded", zap.String("path", arenaPath), zap.String("name", a.Name))
	}

	conns := gateway.NewConnRegistry()
	dir := lobby.NewDirectory(lobby.NewMemoryStore(), a, cfg.Game.TickInterval, conns, logger)
	registry := session.NewRegistry()
	gw := gateway.New(conns, dir, registry, logger)

	acceptor := ws.NewAcceptor(gw, ws.Options{
		ReadLimit:    cfg.Websocket.ReadLimit,
		WriteTimeout: cfg.Websocket.WriteTimeout,
		PongTimeout:  cfg.Websocket.PongTimeout,
		SendBuffer:   cfg.Websocket.SendBuffer,
	}, logger)

	router := httprouter.New()
	router.GET("/ws", acceptor.Handle())
	router.GET("/api/lobbies", gw.LobbiesHandler())
	router.GET("/healthz", gateway.HealthzHandler())

	logger.Info("starting arena server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Duration("tick", cfg.Game.TickInterval),
	)

	lc := server.NewLifecycle(logger)
	lc.Add("http", &server.HTTPService{
		Server:          &http.Server{Addr: cfg.Server.Addr(), Handler: router},
		ShutdownTimeout: shutdownTimeout,
		Logger:          logger,
	})

	if err := lc.Run(context.Background()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
