package discord

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"keema/internal/application"
	"keema/internal/models"
)

func getMedalEmoji(position int) string {
	switch position {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return "▪️"
	}
}

func truncate(msg string) string {
	if len(msg) <= maxMessageLength {
		return msg
	}
	cut := maxMessageTruncation
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + "\n..."
}

func formatLeaderboard(board *models.Leaderboard, limit int) string {
	rows := board.Rows
	if len(rows) > limit {
		rows = rows[:limit]
	}

	var sb strings.Builder
	for idx, e := range rows {
		fmt.Fprintf(&sb, "%s **%s** | Score: `%.2f` | WR: `%.0f%%` | KDA: `%.2f` (%d games)\n",
			getMedalEmoji(idx), e.Name, e.AdjustedScore, e.WinRate, e.KDA, e.Games)
	}
	return truncate(sb.String())
}

func formatPerformance(p models.Performance) string {
	kda := "-/-/-"
	if p.Kills != nil && p.Deaths != nil && p.Assists != nil {
		kda = fmt.Sprintf("%d/%d/%d", *p.Kills, *p.Deaths, *p.Assists)
	}
	result := "L"
	if p.Win {
		result = "W"
	}
	return fmt.Sprintf("%s %s | %s | %s | `%.2f`", result, p.Role, p.Champion, kda, p.Score)
}

func gameEmbed(match *models.Match) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(match.Performances))
	for _, p := range match.Performances {
		if len(fields) == maxEmbedFields {
			break
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("[%s] %s", p.Team, p.Name),
			Value: formatPerformance(p),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Game %s (ID: %d)", match.GameID, match.ID),
		Color:  colorBlue,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: match.CreatedAt.Format("2006-01-02 15:04")},
	}
}

func formatBatchReport(report *application.BatchReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ingested: **%d** | Duplicates: **%d** | Failed: **%d**",
		report.Ingested, report.Duplicates, len(report.Failed))
	for _, f := range report.Failed {
		fmt.Fprintf(&sb, "\n`%s`: %s", f.File, f.Error)
	}
	return truncate(sb.String())
}

func formatIngestResult(res *application.IngestResult) string {
	if res.Duplicate {
		return fmt.Sprintf("Game %s was already recorded (match #%d).", res.GameID, res.MatchID)
	}
	return fmt.Sprintf("Game %s recorded as match #%d with %d players.", res.GameID, res.MatchID, res.Participants)
}

func ingestErrorMessage(filename string, err error) string {
	switch {
	case errors.Is(err, models.ErrParserFailure):
		return fmt.Sprintf("Could not parse %s.", filename)
	case errors.Is(err, models.ErrMissingParticipants), errors.Is(err, models.ErrInvalidRoster):
		return fmt.Sprintf("%s has no usable roster.", filename)
	default:
		return fmt.Sprintf("Failed to record %s.", filename)
	}
}

func isReplayAttachment(a *discordgo.MessageAttachment) bool {
	return strings.EqualFold(filepath.Ext(a.Filename), ".rofl")
}
