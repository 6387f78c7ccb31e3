package main

import (
	"context"
	"log"

	corecmd "emobots/core/cmd"
	coreconfig "emobots/core/config"
	"emobots/core/database"
	coretelegram "emobots/core/telegram"
	"emobots/emocheck/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "EMOCHECK_CONFIG",
		DefaultConfigPath: "configs/emocheck.yaml",
		Bootstrap: func(ctx context.Context, cfg *coreconfig.Config) (coretelegram.RunOptions, error) {
			dbCfg := database.Config{
				Path:          cfg.Database.Path,
				MigrationsDir: cfg.Database.MigrationsDir,
			}
			if err := database.RunMigrations(dbCfg); err != nil {
				return coretelegram.RunOptions{}, err
			}
			db, err := database.Connect(dbCfg)
			if err != nil {
				return coretelegram.RunOptions{}, err
			}

			application, err := app.New(ctx, cfg, db)
			if err != nil {
				return coretelegram.RunOptions{}, err
			}
			return application.TelegramRunOptions()
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
