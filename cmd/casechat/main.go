package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/eoralab/casechat/internal/api"
	"github.com/eoralab/casechat/internal/backend"
	"github.com/eoralab/casechat/internal/chat"
	"github.com/eoralab/casechat/internal/config"
	"github.com/eoralab/casechat/internal/render"
	"github.com/eoralab/casechat/internal/service"
	"github.com/eoralab/casechat/internal/tui"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	serve      = flag.Bool("serve", false, "Run the web gateway instead of the terminal chat")
	question   = flag.String("q", "", "Ask a single question and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := newLogger(*serve)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	backendClient := backend.New(cfg.Backend.BaseURL, cfg.BackendTimeout(), logger)

	switch {
	case *serve:
		runGateway(cfg, backendClient, logger)
	case *question != "":
		runOneShot(backendClient, logger, *question)
	default:
		runChat(backendClient, logger)
	}
}

// newLogger keeps stderr quiet for the interactive modes so log lines do
// not tear the TUI; the gateway logs in full.
func newLogger(serving bool) (*zap.Logger, error) {
	if serving {
		return zap.NewProduction()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{}
	cfg.ErrorOutputPaths = []string{}
	return cfg.Build()
}

func runGateway(cfg *config.Config, backendClient *backend.Client, logger *zap.Logger) {
	gatewayService := service.NewGatewayService(cfg, backendClient, logger)

	router := api.SetupRouter(gatewayService, api.RouterConfig{
		AllowOrigins: []string{"*"},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting case chat gateway",
			zap.String("address", cfg.Address()),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func runChat(backendClient *backend.Client, logger *zap.Logger) {
	client := chat.NewClient(backendClient, logger)

	program := tea.NewProgram(tui.New(client), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("Chat terminated: %v", err)
	}
}

func runOneShot(backendClient *backend.Client, logger *zap.Logger, question string) {
	client := chat.NewClient(backendClient, logger)

	fmt.Println(client.LoadStats(context.Background()))

	if err := client.SendQuestion(context.Background(), question); err != nil {
		log.Fatalf("Failed to send question: %v", err)
	}

	fmt.Println()
	fmt.Println(render.Transcript(client.Messages()))
}
