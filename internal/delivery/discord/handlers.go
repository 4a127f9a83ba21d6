package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"keema/internal/models"
)

func (b *Bot) handleTop(s *discordgo.Session, i *discordgo.Interaction) {
	limit := topPlayersLimit
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 && opts[0].IntValue() > 0 {
		limit = int(opts[0].IntValue())
	}

	board, err := b.services.LeaderboardService.Players(b.ctx)
	if err != nil {
		b.logger.Error("scoreboard: %v", err)
		b.respondMessage(s, i, "Failed to load the scoreboard.", true)
		return
	}
	if len(board.Rows) == 0 {
		b.respondMessage(s, i, "No games recorded yet. Upload a replay!", false)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Scoreboard",
		Description: formatLeaderboard(board, limit),
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s | avg games %.1f", footerText, board.AvgGames)},
	})
}

func (b *Bot) handleChampions(s *discordgo.Session, i *discordgo.Interaction) {
	board, err := b.services.LeaderboardService.Champions(b.ctx)
	if err != nil {
		b.logger.Error("champions: %v", err)
		b.respondMessage(s, i, "Failed to load champion stats.", true)
		return
	}
	if len(board.Rows) == 0 {
		b.respondMessage(s, i, "No champion stats yet.", false)
		return
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Champions",
		Description: formatLeaderboard(board, topPlayersLimit),
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	})
}

func (b *Bot) handleGame(s *discordgo.Session, i *discordgo.Interaction) {
	idx := 1
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		idx = int(opts[0].IntValue())
	}

	match, err := b.services.MatchService.GetGame(b.ctx, idx)
	if errors.Is(err, models.ErrMatchNotFound) {
		b.respondMessage(s, i, fmt.Sprintf("Game #%d not found.", idx), true)
		return
	}
	if err != nil {
		b.logger.Error("game %d: %v", idx, err)
		b.respondMessage(s, i, "Failed to load the game.", true)
		return
	}

	b.respondEmbed(s, i, gameEmbed(match))
}

func (b *Bot) handleRefresh(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	report, err := b.services.IngestService.Refresh(b.ctx)
	if err != nil {
		b.logger.Error("refresh: %v", err)
		b.editResponse(s, i, "Refresh failed: "+err.Error())
		return
	}
	b.editResponse(s, i, formatBatchReport(report))
}

func (b *Bot) handleDeleteMatch(s *discordgo.Session, i *discordgo.Interaction) {
	id := i.ApplicationCommandData().Options[0].IntValue()

	err := b.services.MatchService.DeleteMatch(b.ctx, int(id))
	if errors.Is(err, models.ErrMatchNotFound) {
		b.respondMessage(s, i, fmt.Sprintf("Match #%d not found.", id), true)
		return
	}
	if err != nil {
		b.respondMessage(s, i, fmt.Sprintf("Failed to delete match: %v", err), true)
		return
	}

	b.respondMessage(s, i, fmt.Sprintf("Match #%d deleted.", id), false)
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	data, err := b.services.ReportService.GetExcelReport(b.ctx)
	if err != nil {
		b.logger.Error("export: %v", err)
		b.editResponse(s, i, "Export failed: "+err.Error())
		return
	}

	b.editResponse(s, i, "Your report is ready!", &discordgo.File{
		Name:   exportFileName,
		Reader: bytes.NewReader(data),
	})
}

func (b *Bot) handleSyncSheet(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	url, err := b.services.ReportService.SyncToGoogleSheet(b.ctx)
	if err != nil {
		b.editResponse(s, i, "Sync failed: "+err.Error())
		return
	}
	b.editResponse(s, i, "Sheet updated: "+url)
}

func (b *Bot) handleReplay(s *discordgo.Session, m *discordgo.MessageCreate, a *discordgo.MessageAttachment) {
	if a.Size > maxReplayBytes {
		b.reply(s, m, fmt.Sprintf("%s is too large.", a.Filename))
		return
	}
	if err := s.ChannelTyping(m.ChannelID); err != nil {
		b.logger.Debug("typing indicator: %v", err)
	}

	ctx, cancel := context.WithTimeout(b.ctx, ingestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
	if err != nil {
		b.logger.Error("replay request: %v", err)
		return
	}
	resp, err := b.http.Do(req)
	if err != nil {
		b.logger.Error("failed to download replay: %v", err)
		b.reply(s, m, "Failed to download the replay.")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b.logger.Error("replay download status %d", resp.StatusCode)
		b.reply(s, m, "Failed to download the replay.")
		return
	}

	res, err := b.services.IngestService.IngestUpload(ctx, a.Filename, io.LimitReader(resp.Body, maxReplayBytes))
	if err != nil {
		b.logger.Error("replay %s: %v", a.Filename, err)
		b.reply(s, m, ingestErrorMessage(a.Filename, err))
		return
	}
	b.reply(s, m, formatIngestResult(res))
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, msg string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, msg, m.Reference()); err != nil {
		b.logger.Error("failed to send reply: %v", err)
	}
}
