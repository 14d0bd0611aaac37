// chartapi.go — запасной источник: прямой запрос к chart API Yahoo.
// Используется, когда основной источник недоступен; формат ответа тот же,
// что отдаёт v8/finance/chart.
package datasource

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"bforest/internal"
)

// ChartAPIFetcher ходит в chart API напрямую через resty.
type ChartAPIFetcher struct {
	client *resty.Client
}

func NewChartAPIFetcher() *ChartAPIFetcher {
	return &ChartAPIFetcher{
		client: resty.New().
			SetBaseURL("https://query1.finance.yahoo.com").
			SetTimeout(30 * time.Second).
			SetHeader("User-Agent", "Mozilla/5.0"),
	}
}

func (f *ChartAPIFetcher) Name() string { return "yahoo-chart-api" }

// chartResponse — структура ответа chart API. Пропуски торговых дней
// приходят как null, поэтому поля котировок — указатели.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *ChartAPIFetcher) FetchDailyCandles(ticker string, from, to time.Time) ([]internal.Candle, error) {
	var payload chartResponse
	resp, err := f.client.R().
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(from.Unix(), 10),
			"period2":  strconv.FormatInt(to.Unix(), 10),
			"interval": "1d",
			"events":   "history",
		}).
		SetResult(&payload).
		Get("/v8/finance/chart/" + url.PathEscape(ticker))
	if err != nil {
		return nil, fmt.Errorf("chart api %s: %w", ticker, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("chart api %s: HTTP %d", ticker, resp.StatusCode())
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart api %s: %s (%s)",
			ticker, payload.Chart.Error.Description, payload.Chart.Error.Code)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, nil
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	candles := make([]internal.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) ||
			i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		// день без котировок (биржевой пропуск) — отбрасываем
		if quote.Open[i] == nil || quote.High[i] == nil ||
			quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		volume := 0.0
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
		candles = append(candles, internal.Candle{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}
	return candles, nil
}
