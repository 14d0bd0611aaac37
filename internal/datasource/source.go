package datasource

import (
	"fmt"
	"log"
	"time"

	"bforest/internal"
	"bforest/internal/storage"
)

// Fetcher — сетевой источник дневных свечей.
type Fetcher interface {
	FetchDailyCandles(ticker string, from, to time.Time) ([]internal.Candle, error)
	Name() string
}

// ErrNoData — ни один источник не вернул данных по тикеру.
type ErrNoData struct {
	Ticker string
}

func (e *ErrNoData) Error() string {
	return fmt.Sprintf("нет данных для тикера %s", e.Ticker)
}

// Provider — кэширующий источник ценовых рядов: сначала локальный кэш,
// при промахе — сетевые источники по порядку, результат сохраняется в кэш.
// Ядро бэктеста вызывает его один раз на тикер до начала симуляции и
// дальше работает только с рядом в памяти.
type Provider struct {
	store    *storage.Store
	fetchers []Fetcher
}

// NewProvider — конструктор. store может быть nil (кэш отключён).
func NewProvider(store *storage.Store, fetchers ...Fetcher) *Provider {
	return &Provider{store: store, fetchers: fetchers}
}

// DailyCandles возвращает дневные свечи тикера за период, по возрастанию дат.
func (p *Provider) DailyCandles(ticker string, from, to time.Time) ([]internal.Candle, error) {
	if p.store != nil {
		cached, err := p.store.LoadCandles(ticker, from, to)
		if err != nil {
			log.Printf("⚠️ Кэш недоступен для %s: %v", ticker, err)
		} else if len(cached) > 0 {
			log.Printf("💾 %s: %d свечей из кэша", ticker, len(cached))
			return cached, nil
		}
	}

	for _, f := range p.fetchers {
		candles, err := f.FetchDailyCandles(ticker, from, to)
		if err != nil {
			log.Printf("⚠️ Источник %s не ответил для %s: %v", f.Name(), ticker, err)
			continue
		}
		if len(candles) == 0 {
			continue
		}

		internal.SortCandles(candles)
		log.Printf("📥 %s: %d свечей из источника %s", ticker, len(candles), f.Name())

		if p.store != nil {
			if err := p.store.SaveCandles(ticker, candles); err != nil {
				log.Printf("⚠️ Не удалось сохранить %s в кэш: %v", ticker, err)
			}
		}
		return candles, nil
	}

	return nil, &ErrNoData{Ticker: ticker}
}
