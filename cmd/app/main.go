package main

import (
	"context"
	"embed"
	"os"

	"keema/internal/application"
	"keema/internal/delivery/discord"
	"keema/internal/delivery/rest"
	"keema/internal/parser"
	"keema/internal/repository"
	"keema/internal/scheduler"
	"keema/internal/scoring"
	"keema/pkg/config"
	"keema/pkg/logger"
	service "keema/pkg/services"
	"keema/pkg/sheets"

	"github.com/joho/godotenv"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&cfg.Logger)
	ctx := context.Background()

	db, err := repository.NewPostgresDB(ctx, &cfg.Repo)
	if err != nil {
		log.Error("failed to init db: %s", err.Error())
		return err
	}
	defer db.Close()

	log.Info("Running migrations...")
	version, err := repository.RunMigrations(db, migrationFS, "migrations")
	if err != nil {
		log.Error("failed to run migrations: %s", err.Error())
		return err
	}
	log.Info("Schema at version %d", version)

	repos := repository.NewRepository(db)

	scorer, err := scoring.NewScorer(scoring.DefaultWeights())
	if err != nil {
		log.Error("invalid scoring weights: %s", err.Error())
		return err
	}

	var sheetsClient sheets.Client
	if cfg.GoogleCredentialsFile != "" {
		client, err := sheets.NewGoogleSheetsClient(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			log.Error("failed to init google sheets: %s", err.Error())
			return err
		}
		sheetsClient = client
	}

	services := application.NewService(repos, parser.NewRunner(&cfg.Parser), scorer, sheetsClient, application.Config{
		PendingDir:    cfg.PendingDir,
		ApprovedDir:   cfg.ApprovedDir,
		Gamma:         cfg.Gamma,
		ParserWorkers: cfg.Parser.Workers,
		SpreadsheetID: cfg.GoogleSpreadsheetID,
		OwnerEmail:    cfg.GoogleOwnerEmail,
	}, log)
	if err := services.IngestService.EnsureDirs(); err != nil {
		log.Error("failed to prepare replay dirs: %s", err.Error())
		return err
	}

	manager := service.NewManager(log)
	manager.AddService(rest.NewServer(cfg.HTTP, services, repos, log))

	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(&cfg, services, log)
		if err != nil {
			log.Error("failed to init bot: %s", err.Error())
			return err
		}
		manager.AddService(bot)
	}

	if cfg.RefreshCron != "" {
		var syncer scheduler.SheetSyncing
		if sheetsClient != nil {
			syncer = services.ReportService
		}
		manager.AddService(scheduler.NewRefresher(cfg.RefreshCron, services.IngestService, syncer, log))
	}

	if err := manager.Run(ctx); err != nil {
		log.Error("service error: %s", err.Error())
		return err
	}
	log.Info("Stopped")
	return nil
}
