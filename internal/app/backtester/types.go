package backtester

import (
	"time"

	"bforest/internal"
)

// StrategyMetrics — сводные метрики одной кривой капитала.
type StrategyMetrics struct {
	Return   float64 // итоговая доходность, %
	Drawdown float64 // максимальная просадка, %
	Sharpe   float64 // годовой коэффициент Шарпа
}

// TickerResult — результат обработки одного тикера.
type TickerResult struct {
	Ticker        string
	Classical     StrategyMetrics
	Enhanced      StrategyMetrics
	BuyHold       StrategyMetrics
	ClassicalRows []internal.ClassicalRow
	EnhancedRows  []internal.EvaluationRow
	ExecutionTime time.Duration
}

// PriceProvider — источник ценовых рядов (кэш + сеть, см. internal/datasource).
type PriceProvider interface {
	DailyCandles(ticker string, from, to time.Time) ([]internal.Candle, error)
}

// ResultPrinter — интерфейс для вывода результатов.
type ResultPrinter interface {
	PrintSummary(results []TickerResult)
}

// ResultSaver — интерфейс для сохранения результатов.
type ResultSaver interface {
	SaveTicker(result TickerResult) error
	SaveSummary(results []TickerResult) error
}

// Config — конфигурация прогона.
type Config struct {
	Tickers        []string
	Start          time.Time
	End            time.Time
	Split          time.Time
	InitialCapital float64
	Model          string
	Estimators     int
	Seed           int64
	ModelPath      string
	Debug          bool
}
