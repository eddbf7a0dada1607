package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/bankseed/internal"
	"github.com/frahmantamala/bankseed/internal/platform"
	"github.com/frahmantamala/bankseed/internal/seeder"
	"github.com/frahmantamala/bankseed/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the target environment with test data",
	Long:  `Runs the full provisioning sequence: product catalog, legal entities and users, currency-bucketed arrangements, data groups, function groups and permissions, plus any engagement stages enabled in the config.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Environment, cfg.Observability.Logging.Level)
		slog := logger.LoggerWrapper()

		setup, err := seeder.NewUsersSetup(newPlatformClient(cfg), cfg, slog)
		if err != nil {
			log.Fatalf("failed to initialize seeder: %v", err)
		}

		// Deliberately no deadline: a seeding run fails fast on the first
		// unexpected response and otherwise runs to completion.
		ctx := context.Background()

		stages := []struct {
			name string
			run  func(context.Context) error
		}{
			{"products", setup.SetupProducts},
			{"users and entitlements", setup.SetupUsersWithAndWithoutPermissions},
			{"contacts", setup.SetupContactsPerUser},
			{"payments", setup.SetupPaymentsPerUser},
			{"conversations", setup.SetupConversationsPerUser},
			{"pockets", setup.SetupPocketsPerUser},
		}

		for _, stage := range stages {
			stageCtx := logger.With(ctx, "stage", stage.name)
			logger.From(stageCtx).Info("starting stage")
			if err := stage.run(stageCtx); err != nil {
				log.Fatalf("stage %s failed: %v", stage.name, err)
			}
		}

		slog.Info("seeding run completed")
	},
}

func newPlatformClient(cfg *internal.Config) *platform.Client {
	return platform.NewClient(platform.Config{
		ArrangementsURL: cfg.Platform.ArrangementsURL,
		AccessURL:       cfg.Platform.AccessURL,
		UsersURL:        cfg.Platform.UsersURL,
		PocketsURL:      cfg.Platform.PocketsURL,
		EngagementURL:   cfg.Platform.EngagementURL,
	}, logger.LoggerWrapper())
}
