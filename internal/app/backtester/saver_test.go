package backtester

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bforest/internal"
)

func TestFileSaver_SaveTicker(t *testing.T) {
	dir := t.TempDir()
	saver := NewFileSaver(filepath.Join(dir, "evaluation"))

	date := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	result := TickerResult{
		Ticker: "2888.HK",
		EnhancedRows: []internal.EvaluationRow{{
			FrameRow:       internal.FrameRow{Date: date, Close: 55.5},
			PredictedDiff:  0.25,
			PredictedWMA:   55.75,
			Position:       internal.LONG,
			PortfolioValue: 101000,
		}},
		ClassicalRows: []internal.ClassicalRow{{
			Date:           date,
			Close:          55.5,
			Upper:          60,
			Lower:          50,
			PortfolioValue: 100000,
		}},
	}

	if err := saver.SaveTicker(result); err != nil {
		t.Fatalf("SaveTicker failed: %v", err)
	}

	// Точка в тикере заменяется, каталог создаётся сам
	enhanced := readCSV(t, filepath.Join(dir, "evaluation", "2888_HK_enhanced.csv"))
	if len(enhanced) != 2 {
		t.Fatalf("Expected header + 1 row, got %d rows", len(enhanced))
	}
	row := enhanced[1]
	if row[0] != "2021-03-01" || row[4] != "LONG" {
		t.Errorf("Unexpected enhanced row: %v", row)
	}

	classical := readCSV(t, filepath.Join(dir, "evaluation", "2888_HK_classical.csv"))
	if len(classical) != 2 {
		t.Fatalf("Expected header + 1 row, got %d rows", len(classical))
	}
	if classical[0][4] != "portfolio_value" {
		t.Errorf("Unexpected classical header: %v", classical[0])
	}
}

func TestFileSaver_SaveSummary(t *testing.T) {
	dir := t.TempDir()
	saver := NewFileSaver(dir)

	results := []TickerResult{{
		Ticker:    "0005.HK",
		Classical: StrategyMetrics{Return: 12.3456, Drawdown: -5.5, Sharpe: 1.234},
		Enhanced:  StrategyMetrics{Return: 20.1, Drawdown: -3.25, Sharpe: 2},
		BuyHold:   StrategyMetrics{Return: 8},
	}}

	if err := saver.SaveSummary(results); err != nil {
		t.Fatalf("SaveSummary failed: %v", err)
	}

	rows := readCSV(t, filepath.Join(dir, "results_summary.csv"))
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 row, got %d rows", len(rows))
	}
	// Метрики округляются до двух знаков
	if rows[1][0] != "0005.HK" || rows[1][1] != "12.35" || rows[1][7] != "8.00" {
		t.Errorf("Unexpected summary row: %v", rows[1])
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}
