// main.go — Предзагрузка дневных свечей в локальный SQLite-кэш
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"bforest/internal"
	"bforest/internal/config"
	"bforest/internal/datasource"
	"bforest/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Путь к YAML-файлу конфигурации")
	tickersFlag := flag.String("tickers", "", "Список тикеров через запятую (пусто = из конфигурации)")
	startFlag := flag.String("start", "", "Начало периода (YYYY-MM-DD, пусто = из конфигурации)")
	endFlag := flag.String("end", "", "Конец периода (YYYY-MM-DD, пусто = из конфигурации)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("❌ Не удалось загрузить конфигурацию:", err)
	}
	if *tickersFlag != "" {
		cfg.Tickers = strings.Split(*tickersFlag, ",")
	}
	if *startFlag != "" {
		cfg.Start = *startFlag
	}
	if *endFlag != "" {
		cfg.End = *endFlag
	}

	from, to, _, err := cfg.Dates()
	if err != nil {
		log.Fatal("❌ Некорректные даты:", err)
	}

	store, err := storage.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal("❌ Не удалось открыть кэш:", err)
	}
	defer store.Close()

	fetchers := []datasource.Fetcher{
		datasource.NewYahooFetcher(),
		datasource.NewChartAPIFetcher(),
	}

	log.Printf("🚀 Загрузка свечей: %d тикеров, %s — %s",
		len(cfg.Tickers), cfg.Start, cfg.End)

	failed := 0
	for _, ticker := range cfg.Tickers {
		ticker = strings.TrimSpace(ticker)
		if ticker == "" {
			continue
		}

		candles := fetchTicker(fetchers, ticker, from, to)
		if len(candles) == 0 {
			log.Printf("❌ %s: данные не получены ни из одного источника", ticker)
			failed++
			continue
		}

		internal.SortCandles(candles)
		if err := store.SaveCandles(ticker, candles); err != nil {
			log.Printf("❌ %s: ошибка сохранения в кэш: %v", ticker, err)
			failed++
			continue
		}
		log.Printf("✅ %s: сохранено %d свечей (%s — %s)",
			ticker, len(candles),
			candles[0].Date.Format("2006-01-02"),
			candles[len(candles)-1].Date.Format("2006-01-02"))

		// Пауза между тикерами, чтобы не упереться в лимиты API
		time.Sleep(500 * time.Millisecond)
	}

	if failed > 0 {
		log.Fatalf("⚠️ Завершено с ошибками: %d из %d тикеров не загружены", failed, len(cfg.Tickers))
	}
	log.Println("💾 Кэш обновлён")
}

// fetchTicker — пробует источники по порядку, возвращает первый непустой результат.
func fetchTicker(fetchers []datasource.Fetcher, ticker string, from, to time.Time) []internal.Candle {
	for _, f := range fetchers {
		candles, err := f.FetchDailyCandles(ticker, from, to)
		if err != nil {
			log.Printf("⚠️ %s: источник %s недоступен: %v", ticker, f.Name(), err)
			continue
		}
		if len(candles) > 0 {
			return candles
		}
	}
	return nil
}
