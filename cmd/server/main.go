package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/zhephyr/dialogue-engine/internal/api"
	"github.com/zhephyr/dialogue-engine/internal/buildconfig"
	"github.com/zhephyr/dialogue-engine/internal/config"
	"github.com/zhephyr/dialogue-engine/internal/engine"
	"github.com/zhephyr/dialogue-engine/internal/llm"
	"github.com/zhephyr/dialogue-engine/internal/scenario"
	"github.com/zhephyr/dialogue-engine/internal/world"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	provider := config.DialogueProvider()
	client, err := llm.NewClient(provider, config.DialogueAPIKey(), config.DialogueModel())
	if err != nil {
		logger.Fatal("failed to create dialogue client", zap.String("provider", provider), zap.Error(err))
	}
	logger.Info("dialogue client initialized",
		zap.String("provider", provider),
		zap.String("version", buildconfig.Version()))

	var eng *engine.Engine
	if path := config.ScenarioPath(); path != "" {
		doc, err := scenario.Load(path)
		if err != nil {
			logger.Fatal("failed to load scenario", zap.String("path", path), zap.Error(err))
		}
		w, err := doc.BuildWorld()
		if err != nil {
			logger.Fatal("failed to build world", zap.String("scenario", doc.Name), zap.Error(err))
		}
		eng = engine.New(w, client, provider, logger)
		for _, agent := range doc.BuildAgents() {
			if err := eng.AddNPC(agent); err != nil {
				logger.Fatal("failed to add npc", zap.String("npc", agent.Name()), zap.Error(err))
			}
		}
		eng.SetScene(doc.Scene)
		logger.Info("scenario loaded",
			zap.String("name", doc.Name),
			zap.Int("npcs", len(doc.NPCs)),
			zap.Int("facts", len(doc.Facts)))
	} else {
		eng = engine.New(world.New(), client, provider, logger)
		logger.Info("starting with empty world")
	}

	if !config.FactCheckingEnabled() {
		eng.DisableFactChecking()
		logger.Info("fact checking disabled")
	}

	app := api.NewApp(eng, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
