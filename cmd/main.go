package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/AgriGenie/plantcare/internal/assessment"
	"github.com/AgriGenie/plantcare/internal/broker"
	"github.com/AgriGenie/plantcare/internal/config"
	"github.com/AgriGenie/plantcare/internal/diagnosis"
	"github.com/AgriGenie/plantcare/internal/llm"
	"github.com/AgriGenie/plantcare/internal/storage"
	"github.com/AgriGenie/plantcare/internal/web"
	"github.com/AgriGenie/plantcare/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	genkitApp, err := llm.InitGenkitApp(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize genkit: %v", err)
	}

	provider, err := llm.NewProvider(llm.ProviderConfig{
		Type:      llm.ProviderTypeGenkit,
		GenkitApp: genkitApp,
		LLM:       cfg.LLM,
	})
	if err != nil {
		log.Fatalf("Failed to create LLM provider: %v", err)
	}
	log.Printf("🤖 LLM provider ready: %s (%s)", provider.GetName(), provider.GetModel())

	diagClient := diagnosis.NewClient(diagnosis.ClientConfig{
		ApiKey:  cfg.Diagnosis.ApiKey,
		BaseURL: cfg.Diagnosis.BaseURL,
	})

	store := storage.NewMemoryStorage()
	events := broker.New[websocket.ProgressDTO](256)

	analyzer := assessment.NewAnalyzer(diagClient, provider, store, events)
	server := web.NewServer(cfg, analyzer, store, events)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		server.PumpEvents(gctx)
		return nil
	})

	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown по сигналу или первой фатальной ошибке
	g.Go(func() error {
		<-gctx.Done()
		return server.Stop()
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Println("Server stopped")
}
