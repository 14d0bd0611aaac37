package backtester

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileSaver пишет результаты в каталог оценки: по две CSV-кривые на тикер
// и общую сводку. Эти файлы — входной контракт слоя отчётов и графиков.
type FileSaver struct {
	dir string
}

// NewFileSaver — конструктор для FileSaver.
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{dir: dir}
}

// SaveTicker сохраняет кривые капитала одного тикера.
func (s *FileSaver) SaveTicker(result TickerResult) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("создание каталога %s: %w", s.dir, err)
	}

	safe := safeTicker(result.Ticker)

	enhanced := [][]string{{"date", "close", "predicted_diff", "predicted_wma", "position", "portfolio_value"}}
	for _, r := range result.EnhancedRows {
		enhanced = append(enhanced, []string{
			r.Date.Format("2006-01-02"),
			formatFloat(r.Close),
			formatFloat(r.PredictedDiff),
			formatFloat(r.PredictedWMA),
			r.Position.String(),
			formatFloat(r.PortfolioValue),
		})
	}
	if err := s.writeCSV(safe+"_enhanced.csv", enhanced); err != nil {
		return err
	}

	classical := [][]string{{"date", "close", "upper", "lower", "portfolio_value"}}
	for _, r := range result.ClassicalRows {
		classical = append(classical, []string{
			r.Date.Format("2006-01-02"),
			formatFloat(r.Close),
			formatFloat(r.Upper),
			formatFloat(r.Lower),
			formatFloat(r.PortfolioValue),
		})
	}
	return s.writeCSV(safe+"_classical.csv", classical)
}

// SaveSummary сохраняет сводную таблицу метрик по всем тикерам.
func (s *FileSaver) SaveSummary(results []TickerResult) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("создание каталога %s: %w", s.dir, err)
	}

	rows := [][]string{{
		"ticker",
		"classical_return_pct", "enhanced_return_pct",
		"classical_dd_pct", "enhanced_dd_pct",
		"classical_sharpe", "enhanced_sharpe",
		"buyhold_return_pct",
	}}
	for _, r := range results {
		rows = append(rows, []string{
			r.Ticker,
			round2(r.Classical.Return), round2(r.Enhanced.Return),
			round2(r.Classical.Drawdown), round2(r.Enhanced.Drawdown),
			round2(r.Classical.Sharpe), round2(r.Enhanced.Sharpe),
			round2(r.BuyHold.Return),
		})
	}
	return s.writeCSV("results_summary.csv", rows)
}

func (s *FileSaver) writeCSV(name string, rows [][]string) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("создание файла %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("запись %s: %w", path, err)
	}
	return w.Error()
}

// safeTicker убирает символы, неудобные в именах файлов ("^GSPC", "2888.HK").
func safeTicker(ticker string) string {
	replacer := strings.NewReplacer("^", "", ".", "_", "/", "_")
	return replacer.Replace(ticker)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
