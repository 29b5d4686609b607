package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inventory-chat/application"
	"inventory-chat/domain"
	"inventory-chat/infrastructure/completion"
	"inventory-chat/infrastructure/config"
	"inventory-chat/infrastructure/httpserver"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		c, err := buildComponents(cfg)
		if err != nil {
			return err
		}
		defer c.close()

		completer, err := newCompletionClient(cfg)
		if err != nil {
			return err
		}

		chatService := application.NewChatService(c.embedder, c.index, completer, cfg.Chat.TopK, c.logger)
		server := httpserver.NewServer(c.store, c.sync, chatService, &cfg.Server, c.logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		c.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Stop(shutdownCtx)
	},
}

func newCompletionClient(cfg *config.Config) (domain.CompletionClient, error) {
	switch cfg.Chat.Provider {
	case "openai":
		return completion.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Chat.Model, float32(cfg.Chat.Temperature), cfg.Chat.MaxTokens)
	case "anthropic":
		return completion.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.Chat.Model, cfg.Chat.Temperature, int64(cfg.Chat.MaxTokens))
	default:
		return nil, fmt.Errorf("unknown chat provider %q", cfg.Chat.Provider)
	}
}
