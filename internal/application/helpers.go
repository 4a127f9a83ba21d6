package application

import (
	"math"
	"path/filepath"
	"strings"
)

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func isReplayFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), replayExt)
}

// replayID is the identifier used when the parser output carries no game id.
func replayID(path string) string {
	return filepath.Base(path)
}

func rankRows(header []interface{}, rows [][]interface{}) [][]interface{} {
	out := make([][]interface{}, 0, len(rows)+1)
	out = append(out, header)
	for i, row := range rows {
		out = append(out, append([]interface{}{i + 1}, row...))
	}
	return out
}
