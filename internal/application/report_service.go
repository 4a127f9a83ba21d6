package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"keema/internal/models"
	"keema/pkg/sheets"
)

var leaderboardHeader = []interface{}{"Rank", "Name", "Games", "WinRate %", "KDA", "Raw Score", "Score"}

type ReportServiceImpl struct {
	leaderboard  LeaderboardService
	sheetsClient sheets.Client
	ownerEmail   string
	logger       Logger

	mu            sync.Mutex
	spreadsheetID string
}

func NewReportServiceImpl(leaderboard LeaderboardService, sheetsClient sheets.Client, spreadsheetID, ownerEmail string, logger Logger) *ReportServiceImpl {
	return &ReportServiceImpl{
		leaderboard:   leaderboard,
		sheetsClient:  sheetsClient,
		spreadsheetID: spreadsheetID,
		ownerEmail:    ownerEmail,
		logger:        logger,
	}
}

func (s *ReportServiceImpl) GetExcelReport(ctx context.Context) ([]byte, error) {
	players, err := s.leaderboard.Players(ctx)
	if err != nil {
		return nil, err
	}
	champions, err := s.leaderboard.Champions(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, sheet := range []struct {
		name  string
		board *models.Leaderboard
	}{
		{excelPlayersSheet, players},
		{excelChampionsSheet, champions},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}
		for r, row := range leaderboardRows(sheet.board) {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write %s row %d: %w", sheet.name, r+1, err)
			}
		}
		for _, col := range excelColumnWidths {
			if err := f.SetColWidth(sheet.name, col.from, col.to, col.width); err != nil {
				return nil, fmt.Errorf("failed to size %s columns %s:%s: %w", sheet.name, col.from, col.to, err)
			}
		}
	}
	if err := f.DeleteSheet(excelDefaultSheet); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SyncToGoogleSheet publishes the player leaderboard, creating the spreadsheet
// on first use when no id is configured.
func (s *ReportServiceImpl) SyncToGoogleSheet(ctx context.Context) (string, error) {
	if s.sheetsClient == nil {
		return "", fmt.Errorf("google sheets service is not configured")
	}

	players, err := s.leaderboard.Players(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSpreadsheet(ctx); err != nil {
		return "", err
	}

	if err := s.sheetsClient.ClearRange(ctx, s.spreadsheetID, defaultClearRange); err != nil {
		s.logger.Error("failed to clear sheet: %v", err)
	}
	if err := s.sheetsClient.UpdateValues(ctx, s.spreadsheetID, defaultStartCell, leaderboardRows(players)); err != nil {
		return "", fmt.Errorf("failed to update stats: %w", err)
	}

	return fmt.Sprintf(spreadsheetURLFormat, s.spreadsheetID), nil
}

func (s *ReportServiceImpl) ensureSpreadsheet(ctx context.Context) error {
	if s.spreadsheetID != "" {
		return nil
	}

	id, _, err := s.sheetsClient.CreateSpreadsheet(ctx, defaultSheetTitle)
	if err != nil {
		return fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	if s.ownerEmail != "" {
		if err := s.sheetsClient.AddPermission(ctx, id, s.ownerEmail, sheetsOwnerRole); err != nil {
			return fmt.Errorf("failed to add owner permission: %w", err)
		}
	}
	if err := s.sheetsClient.MakePublic(ctx, id); err != nil {
		return fmt.Errorf("failed to make spreadsheet public: %w", err)
	}

	s.spreadsheetID = id
	s.logger.Info("created spreadsheet %s", id)
	return nil
}

func leaderboardRows(board *models.Leaderboard) [][]interface{} {
	rows := make([][]interface{}, 0, len(board.Rows))
	for _, r := range board.Rows {
		rows = append(rows, []interface{}{
			r.Name,
			r.Games,
			round(r.WinRate, 1),
			round(r.KDA, 2),
			round(r.RawScore, 2),
			round(r.AdjustedScore, 2),
		})
	}
	return rankRows(leaderboardHeader, rows)
}
