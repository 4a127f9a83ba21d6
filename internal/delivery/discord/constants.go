package discord

import "time"

const (
	// Display limits
	topPlayersLimit      = 10
	maxMessageLength     = 2000
	maxMessageTruncation = 1990
	maxEmbedFields       = 25

	// Embed colors
	colorGold = 0xFFD700 // Leaderboard
	colorBlue = 0x3498DB // Game details

	// Replay attachments
	replayDownloadTimeout = 30 * time.Second
	maxReplayBytes        = 64 << 20
	ingestTimeout         = 2 * time.Minute

	footerText     = "Keema Scoreboard"
	exportFileName = "scoreboard.xlsx"
)
