package discord

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keema/internal/application"
	"keema/internal/models"
)

func intPtr(v int) *int { return &v }

func TestFormatLeaderboard_LimitsRows(t *testing.T) {
	board := &models.Leaderboard{}
	for i := 0; i < 15; i++ {
		board.Rows = append(board.Rows, models.LeaderboardEntry{
			GroupStats:    models.GroupStats{Name: fmt.Sprintf("P%02d", i), Games: 3, KDA: 2.5, WinRate: 66.6},
			AdjustedScore: float64(80 - i),
		})
	}

	out := formatLeaderboard(board, topPlayersLimit)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, topPlayersLimit)
	assert.True(t, strings.HasPrefix(lines[0], "🥇 **P00**"))
	assert.Contains(t, lines[0], "`80.00`")
	assert.Contains(t, lines[0], "`67%`")
	assert.NotContains(t, out, "P10")
}

func TestGameEmbed(t *testing.T) {
	match := &models.Match{
		ID: 4, GameID: "EUW1-4", CreatedAt: time.Date(2025, 2, 1, 18, 30, 0, 0, time.UTC),
		Performances: []models.Performance{
			{Team: models.TeamBlue, Name: "Alpha", Role: models.RoleMid, Champion: "Ahri",
				Kills: intPtr(7), Deaths: intPtr(1), Assists: intPtr(4), Win: true, Score: 81.5},
			{Team: models.TeamRed, Name: "Bravo", Role: models.RoleMid, Champion: "Zed", Score: 40},
		},
	}

	embed := gameEmbed(match)
	assert.Equal(t, "Game EUW1-4 (ID: 4)", embed.Title)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "[BLUE] Alpha", embed.Fields[0].Name)
	assert.Equal(t, "W MID | Ahri | 7/1/4 | `81.50`", embed.Fields[0].Value)
	assert.Equal(t, "L MID | Zed | -/-/- | `40.00`", embed.Fields[1].Value)
	assert.Equal(t, "2025-02-01 18:30", embed.Footer.Text)
}

func TestFormatBatchReport(t *testing.T) {
	out := formatBatchReport(&application.BatchReport{
		Ingested:   3,
		Duplicates: 1,
		Failed:     []application.FileFailure{{File: "x.rofl", Error: "replay parser failed"}},
	})
	assert.Contains(t, out, "Ingested: **3** | Duplicates: **1** | Failed: **1**")
	assert.Contains(t, out, "`x.rofl`: replay parser failed")
}

func TestFormatIngestResult(t *testing.T) {
	assert.Equal(t, "Game EUW1-1 recorded as match #2 with 10 players.",
		formatIngestResult(&application.IngestResult{MatchID: 2, GameID: "EUW1-1", Participants: 10}))
	assert.Equal(t, "Game EUW1-1 was already recorded (match #2).",
		formatIngestResult(&application.IngestResult{MatchID: 2, GameID: "EUW1-1", Duplicate: true}))
}

func TestIngestErrorMessage(t *testing.T) {
	assert.Equal(t, "Could not parse a.rofl.", ingestErrorMessage("a.rofl", fmt.Errorf("x: %w", models.ErrParserFailure)))
	assert.Equal(t, "a.rofl has no usable roster.", ingestErrorMessage("a.rofl", models.ErrInvalidRoster))
	assert.Equal(t, "Failed to record a.rofl.", ingestErrorMessage("a.rofl", assert.AnError))
}

func TestIsReplayAttachment(t *testing.T) {
	assert.True(t, isReplayAttachment(&discordgo.MessageAttachment{Filename: "game.rofl"}))
	assert.True(t, isReplayAttachment(&discordgo.MessageAttachment{Filename: "GAME.ROFL"}))
	assert.False(t, isReplayAttachment(&discordgo.MessageAttachment{Filename: "screenshot.png"}))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", maxMessageLength+10)
	assert.Len(t, truncate(long), maxMessageTruncation+4)
	assert.Equal(t, "short", truncate("short"))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	msg := strings.Repeat("a", maxMessageTruncation-1) + strings.Repeat("🥇", 10)

	out := truncate(msg)
	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "\n..."))
	assert.LessOrEqual(t, len(out), maxMessageLength)
	assert.Equal(t, strings.Repeat("a", maxMessageTruncation-1)+"\n...", out)
}

func TestTruncate_ShortMessageUntouched(t *testing.T) {
	assert.Equal(t, "🥈 Bravo", truncate("🥈 Bravo"))
}
