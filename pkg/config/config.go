package config

import (
	"keema/internal/delivery/rest"
	"keema/internal/parser"
	"keema/internal/repository"
	"keema/pkg/logger"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo   repository.Config `envPrefix:"REPO_"`
	Parser parser.Config     `envPrefix:"PARSER_"`
	HTTP   rest.Config       `envPrefix:"HTTP_"`
	Logger logger.Config     `envPrefix:"LOGGER_"`

	PendingDir  string  `env:"PENDING_DIR" envDefault:"./data/pending"`
	ApprovedDir string  `env:"APPROVED_DIR" envDefault:"./data/approved"`
	Gamma       float64 `env:"SB_GAMMA" envDefault:"1.0"`
	RefreshCron string  `env:"REFRESH_CRON" envDefault:""`

	DiscordToken     string   `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID   string   `env:"GUILD_ID" envDefault:""`
	AllowedChannelID string   `env:"ALLOWED_CHANNEL_ID" envDefault:""`
	AdminUserIDs     []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`

	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:""`
	GoogleSpreadsheetID   string `env:"GOOGLE_SPREADSHEET_ID" envDefault:""`
	GoogleOwnerEmail      string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
