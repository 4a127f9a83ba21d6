package discord

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"keema/internal/application"
	"keema/pkg/config"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger
	http     *http.Client

	commands         []*discordgo.ApplicationCommand
	adminIDs         map[string]struct{}
	allowedChannelID string
	guildID          string

	ctx context.Context
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	admins := make(map[string]struct{})
	for _, id := range cfg.AdminUserIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	return &Bot{
		session:          s,
		services:         services,
		logger:           logger,
		http:             &http.Client{Timeout: replayDownloadTimeout},
		adminIDs:         admins,
		allowedChannelID: cfg.AllowedChannelID,
		guildID:          cfg.DiscordGuildID,
		ctx:              context.Background(),
	}, nil
}

func (b *Bot) Init() error {
	b.registerCommands()
	b.session.AddHandler(b.onInteraction)
	b.session.AddHandler(b.onMessage)
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		b.logger.Error("failed to open discord session: %v", err)
		return
	}

	b.logger.Info("Discord bot started, registering %d slash commands", len(b.commands))
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, b.commands); err != nil {
		b.logger.Error("failed to register commands: %v", err)
		return
	}
	b.logger.Info("slash commands registered")
}

func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		b.logger.Warn("failed to close discord session: %v", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return
	}
	i := ic.Interaction

	switch i.ApplicationCommandData().Name {
	case "top":
		b.handleTop(s, i)
	case "champions":
		b.handleChampions(s, i)
	case "game":
		b.handleGame(s, i)
	case "refresh":
		b.ensureAdmin(s, i, b.handleRefresh)
	case "delete_match":
		b.ensureAdmin(s, i, b.handleDeleteMatch)
	case "export":
		b.ensureAdmin(s, i, b.handleExport)
	case "sync_sheet":
		b.ensureAdmin(s, i, b.handleSyncSheet)
	}
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if b.allowedChannelID != "" && m.ChannelID != b.allowedChannelID {
		return
	}
	if len(m.Attachments) == 0 || !b.isAdmin(m.Author.ID) {
		return
	}

	for _, a := range m.Attachments {
		if isReplayAttachment(a) {
			b.handleReplay(s, m, a)
		}
	}
}
