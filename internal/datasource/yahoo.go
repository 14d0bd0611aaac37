package datasource

import (
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"bforest/internal"
)

// YahooFetcher — основной источник: Yahoo Finance через piquette/finance-go.
type YahooFetcher struct{}

func NewYahooFetcher() *YahooFetcher { return &YahooFetcher{} }

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) FetchDailyCandles(ticker string, from, to time.Time) ([]internal.Candle, error) {
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var candles []internal.Candle
	for iter.Next() {
		bar := iter.Bar()
		candles = append(candles, internal.Candle{
			Date:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Open:   toFloat(bar.Open),
			High:   toFloat(bar.High),
			Low:    toFloat(bar.Low),
			Close:  toFloat(bar.Close),
			Volume: float64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	return candles, nil
}

func toFloat(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}
