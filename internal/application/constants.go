package application

const (
	replayExt = ".rofl"

	defaultParserWorkers = 4
	parserQueueSize      = 64

	// Leaderboard shrinkage: adjusted = raw * (shrinkFloor + shrinkSpan*(1-penalty)).
	shrinkFloor = 0.75
	shrinkSpan  = 0.25

	// Google Sheets configuration
	defaultSheetTitle    = "Keema Scoreboard"
	defaultClearRange    = "A1:Z1000"
	defaultStartCell     = "A1"
	sheetsOwnerRole      = "writer"
	spreadsheetURLFormat = "https://docs.google.com/spreadsheets/d/%s"

	// Excel report configuration
	excelPlayersSheet   = "Players"
	excelChampionsSheet = "Champions"
	excelDefaultSheet   = "Sheet1"
)

var excelColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 8},
	{"B", "B", 24},
	{"C", "G", 12},
}
