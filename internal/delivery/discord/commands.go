package discord

import "github.com/bwmarrin/discordgo"

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func (b *Bot) registerCommands() {
	b.addCommands(
		b.newTopCommand(),
		b.newChampionsCommand(),
		b.newGameCommand(),
		b.newRefreshCommand(),
		b.newDeleteMatchCommand(),
		b.newExportCommand(),
		b.newSyncSheetCommand(),
	)
}

func (b *Bot) newTopCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "top",
		Description: "Player scoreboard",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "limit", Description: "Rows to show", Required: false},
		},
	}
}

func (b *Bot) newChampionsCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "champions",
		Description: "Champion scoreboard",
	}
}

func (b *Bot) newGameCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "game",
		Description: "Show a recent game (1 = latest)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "index", Description: "1 = latest", Required: false},
		},
	}
}

func (b *Bot) newRefreshCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "refresh",
		Description: "Re-ingest approved replays (admins only)",
	}
}

func (b *Bot) newDeleteMatchCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "delete_match",
		Description: "Delete a match by ID (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "Match ID", Required: true},
		},
	}
}

func (b *Bot) newExportCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "export",
		Description: "Export the scoreboard to Excel (admins only)",
	}
}

func (b *Bot) newSyncSheetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "sync_sheet",
		Description: "Sync the scoreboard to Google Sheets (admins only)",
	}
}
