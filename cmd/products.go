package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/bankseed/internal/seeder"
	"github.com/frahmantamala/bankseed/pkg/logger"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Ingest only the product catalog",
	Long:  `Posts the product catalog without touching users or entitlements, useful when re-pointing an environment at a fresh arrangements service.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Environment, cfg.Observability.Logging.Level)

		setup, err := seeder.NewUsersSetup(newPlatformClient(cfg), cfg, logger.LoggerWrapper())
		if err != nil {
			log.Fatalf("failed to initialize seeder: %v", err)
		}

		if err := setup.SetupProducts(context.Background()); err != nil {
			log.Fatalf("product ingestion failed: %v", err)
		}
	},
}
