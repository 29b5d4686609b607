// Package cmd holds the CLI commands for the inventory-chat server.
package cmd

import (
	"fmt"
	"os"

	"inventory-chat/application"
	"inventory-chat/infrastructure/config"
	"inventory-chat/infrastructure/embedding"
	"inventory-chat/infrastructure/store"
	"inventory-chat/infrastructure/vectorstore"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "inventory-chat",
	Short: "Mirror an item store into Qdrant and chat about it",
	Long: `inventory-chat keeps a Qdrant collection in sync with an item store and
answers natural-language questions about the items using retrieval-augmented
generation.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}

// components is the wired core shared by the serve and sync commands.
type components struct {
	store    *store.SQLiteItemStore
	embedder *embedding.OpenAIEmbeddingClient
	index    *vectorstore.QdrantClient
	sync     *application.SyncService
	logger   *zap.Logger
}

func buildComponents(cfg *config.Config) (*components, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	itemStore, err := store.NewSQLiteItemStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}

	embedder, err := embedding.NewOpenAIEmbeddingClient(
		cfg.OpenAIAPIKey,
		openai.EmbeddingModel(cfg.Embedding.Model),
		cfg.Qdrant.VectorSize,
	)
	if err != nil {
		return nil, err
	}

	index, err := vectorstore.NewQdrantClient(
		cfg.Qdrant.Addr,
		cfg.Qdrant.CollectionName,
		cfg.Qdrant.VectorSize,
		cfg.Qdrant.DistanceMetric,
		logger,
	)
	if err != nil {
		return nil, err
	}

	syncService := application.NewSyncService(itemStore, embedder, index, cfg.Qdrant.VectorSize, logger)
	itemStore.SetObserver(application.NewSyncObserver(syncService))

	return &components{
		store:    itemStore,
		embedder: embedder,
		index:    index,
		sync:     syncService,
		logger:   logger,
	}, nil
}

func (c *components) close() {
	c.store.Close()
	_ = c.logger.Sync()
}
