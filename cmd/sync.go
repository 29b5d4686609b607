package cmd

import (
	"context"
	"fmt"

	"inventory-chat/infrastructure/config"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-shot full sync of all items into the vector index",
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

		count, err := c.sync.FullSync(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Successfully synced %d items\n", count)
		return nil
	},
}
