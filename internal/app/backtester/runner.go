package backtester

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/lo"

	"bforest/internal"
)

// Runner — пакетный прогон двух стратегий по списку тикеров. Ошибка одного
// тикера (нет данных, пустой оценочный период) логируется, и прогон
// продолжается со следующего.
type Runner struct {
	config   Config
	provider PriceProvider
	printer  ResultPrinter
	saver    ResultSaver
}

func NewRunner(config Config, provider PriceProvider, printer ResultPrinter, saver ResultSaver) *Runner {
	return &Runner{
		config:   config,
		provider: provider,
		printer:  printer,
		saver:    saver,
	}
}

// Run обрабатывает все тикеры по очереди и печатает сводную таблицу.
func (r *Runner) Run() ([]TickerResult, error) {
	if len(r.config.Tickers) == 0 {
		return nil, fmt.Errorf("список тикеров пуст")
	}

	fmt.Println("\n" + strings.Repeat("═", 80))
	fmt.Println("🚀 ЗАПУСК БЭКТЕСТА: КЛАССИЧЕСКАЯ И УСИЛЕННАЯ СТРАТЕГИИ")
	fmt.Println(strings.Repeat("═", 80))
	fmt.Printf("📊 Тикеров: %d │ Период: %s — %s │ Разбиение: %s │ Модель: %s\n",
		len(r.config.Tickers),
		r.config.Start.Format("2006-01-02"),
		r.config.End.Format("2006-01-02"),
		r.config.Split.Format("2006-01-02"),
		r.config.Model)
	fmt.Println(strings.Repeat("─", 80))

	startTime := time.Now()

	results := make([]TickerResult, 0, len(r.config.Tickers))
	for _, ticker := range r.config.Tickers {
		result, err := r.runTicker(ticker)
		if err != nil {
			log.Printf("❌ %s пропущен: %v", ticker, err)
			continue
		}
		results = append(results, *result)

		if r.saver != nil {
			if err := r.saver.SaveTicker(*result); err != nil {
				log.Printf("⚠️ Не удалось сохранить результаты %s: %v", ticker, err)
			}
		}
	}

	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("⚡ Обработано %d из %d тикеров за %v\n",
		len(results), len(r.config.Tickers), time.Since(startTime))

	if r.printer != nil {
		r.printer.PrintSummary(results)
	}
	if r.saver != nil && len(results) > 0 {
		if err := r.saver.SaveSummary(results); err != nil {
			log.Printf("⚠️ Не удалось сохранить сводку: %v", err)
		}
	}

	return results, nil
}

// runTicker — полный конвейер одного тикера: котировки, усиленная стратегия
// (обучение до даты разбиения, симуляция после), классическая стратегия на
// том же оценочном окне и buy & hold как бенчмарк.
func (r *Runner) runTicker(ticker string) (*TickerResult, error) {
	started := time.Now()
	log.Printf("📥 Обработка %s...", ticker)

	candles, err := r.provider.DailyCandles(ticker, r.config.Start, r.config.End)
	if err != nil {
		return nil, fmt.Errorf("загрузка котировок: %w", err)
	}
	if err := internal.ValidateSeries(candles); err != nil {
		return nil, err
	}
	if r.config.Debug {
		log.Printf("🐛 DEBUG: %s — %d свечей", ticker, len(candles))
	}

	// Свежая модель на каждый тикер: Fit вызывается ровно один раз на модель.
	model, err := internal.NewModel(r.config.Model, internal.ModelParams{
		Estimators: r.config.Estimators,
		Seed:       r.config.Seed,
		DumpPath:   r.config.ModelPath,
	})
	if err != nil {
		return nil, err
	}

	enhanced := internal.NewEnhancedStrategy(r.config.InitialCapital, model)
	evalRows, err := enhanced.Run(candles, r.config.Split)
	if err != nil {
		return nil, err
	}

	// Классическая стратегия сравнивается на том же оценочном окне и
	// пересчитывает полосы по нему же.
	testCandles := lo.Filter(candles, func(c internal.Candle, _ int) bool {
		return !c.Date.Before(r.config.Split)
	})
	classical := internal.NewClassicalStrategy(r.config.InitialCapital)
	classicalRows := classical.Run(testCandles)

	enhancedValues := internal.EnhancedValues(evalRows)
	classicalValues := internal.ClassicalValues(classicalRows)
	buyHoldValues := buyHold(evalRows, r.config.InitialCapital)

	result := &TickerResult{
		Ticker:        ticker,
		Classical:     metricsFor(classicalValues, r.config.InitialCapital),
		Enhanced:      metricsFor(enhancedValues, r.config.InitialCapital),
		BuyHold:       metricsFor(buyHoldValues, r.config.InitialCapital),
		ClassicalRows: classicalRows,
		EnhancedRows:  evalRows,
		ExecutionTime: time.Since(started),
	}

	log.Printf("✅ %s │ усиленная %+.2f%% │ классическая %+.2f%% │ buy&hold %+.2f%% │ %v",
		ticker, result.Enhanced.Return, result.Classical.Return,
		result.BuyHold.Return, result.ExecutionTime)

	return result, nil
}

func metricsFor(values []float64, initialCapital float64) StrategyMetrics {
	return StrategyMetrics{
		Return:   internal.TotalReturn(values, initialCapital),
		Drawdown: internal.MaxDrawdown(values),
		Sharpe:   internal.SharpeRatio(values),
	}
}

// buyHold — кривая капитала «купил и держи» на оценочном окне усиленной
// стратегии: capital * close/close[0].
func buyHold(rows []internal.EvaluationRow, initialCapital float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	first := rows[0].Close
	return lo.Map(rows, func(r internal.EvaluationRow, _ int) float64 {
		return initialCapital * r.Close / first
	})
}
