// candle.go
package internal

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"
)

// Candle — одна дневная свеча. После загрузки из источника данных не меняется.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// ErrBadSeries — ошибка структуры ценового ряда
type ErrBadSeries struct {
	Reason string
}

func (e *ErrBadSeries) Error() string {
	return "некорректный ценовой ряд: " + e.Reason
}

// SortCandles сортирует свечи по дате по возрастанию.
func SortCandles(candles []Candle) {
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Date.Before(candles[j].Date)
	})
}

// ValidateSeries проверяет, что ряд пригоден для расчётов: даты уникальны и
// идут по возрастанию, цены заполнены. Ряд с пропусками отклоняется сразу,
// а не в середине симуляции.
func ValidateSeries(candles []Candle) error {
	if len(candles) == 0 {
		return &ErrBadSeries{Reason: "пустой ряд"}
	}
	for i, c := range candles {
		if c.Date.IsZero() {
			return &ErrBadSeries{Reason: "свеча без даты"}
		}
		if i > 0 && !candles[i-1].Date.Before(c.Date) {
			return &ErrBadSeries{Reason: "даты не уникальны или не по возрастанию: " + c.Date.Format("2006-01-02")}
		}
		if badPrice(c.Open) || badPrice(c.High) || badPrice(c.Low) || badPrice(c.Close) {
			return &ErrBadSeries{Reason: "незаполненная цена на " + c.Date.Format("2006-01-02")}
		}
		if c.High < c.Low {
			return &ErrBadSeries{Reason: "high < low на " + c.Date.Format("2006-01-02")}
		}
	}
	return nil
}

func badPrice(p float64) bool {
	return p <= 0 || math.IsNaN(p) || math.IsInf(p, 0)
}

// Closes возвращает ряд цен закрытия.
func Closes(candles []Candle) []float64 {
	return lo.Map(candles, func(c Candle, _ int) float64 {
		return c.Close
	})
}
