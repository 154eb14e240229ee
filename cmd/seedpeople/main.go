// Command seedpeople creates the default admin and guest accounts together
// with their roles. Running it again leaves existing accounts untouched.
package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"person-manager-api/internal"
	"person-manager-api/internal/application/services"
	"person-manager-api/internal/infrastructure/db/postgres/person"
	"person-manager-api/internal/infrastructure/db/postgres/role"
)

func main() {
	ctx := context.Background()

	logger := internal.NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg := internal.LoadConfig(ctx, logger)
	db := internal.OpenDB(ctx, logger, cfg)
	defer db.Close()

	seeder := services.NewSeeder(person.NewRepository(db), role.NewRepository(db), logger)
	accounts := services.DefaultAccounts(cfg.Seed.AdminPassword, cfg.Seed.GuestPassword)
	if err := seeder.Seed(ctx, accounts); err != nil {
		logger.Error("seeding failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("seeding done", zap.Int("accounts", len(accounts)))
}
