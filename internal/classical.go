// classical.go
//
// Классическая стратегия полос Боллинджера
//
// Описание стратегии:
// Простая возвратно-средняя логика на двух состояниях (вне рынка / лонг):
// - Покупка всем доступным кэшем, когда цена закрытия опускается к нижней
//   полосе или ниже неё.
// - Полное закрытие позиции, когда цена закрытия поднимается к верхней
//   полосе или выше неё.
//
// Полосы считаются по тому же ряду, который передан на симуляцию; на
// прогреве индикатора значения полос — NaN, сравнения с NaN ложны, и
// сделки не открываются. Стоимость портфеля фиксируется на каждом баре
// как cash + shares*close.
package internal

import (
	"time"

	"github.com/samber/lo"
)

// ClassicalRow — бар симуляции классической стратегии.
type ClassicalRow struct {
	Date           time.Time
	Close          float64
	Upper          float64
	Lower          float64
	InPosition     bool
	PortfolioValue float64
}

// ClassicalStrategy — параметры классической стратегии.
type ClassicalStrategy struct {
	InitialCapital float64
	Window         int
	Multiplier     float64
}

func NewClassicalStrategy(initialCapital float64) *ClassicalStrategy {
	return &ClassicalStrategy{
		InitialCapital: initialCapital,
		Window:         BandWindow,
		Multiplier:     BandMultiplier,
	}
}

// Run выполняет симуляцию по переданному ряду и возвращает бар за баром
// значения полос и кривую капитала.
func (s *ClassicalStrategy) Run(candles []Candle) []ClassicalRow {
	bands := BollingerBands(Closes(candles), s.Window, s.Multiplier)

	cash := s.InitialCapital
	shares := 0.0
	inPosition := false

	rows := make([]ClassicalRow, len(candles))
	for i, c := range candles {
		close := c.Close
		upper := bands.Upper[i]
		lower := bands.Lower[i]

		if !inPosition && close <= lower {
			inPosition = true
			shares = cash / close
			cash = 0
		} else if inPosition && close >= upper {
			inPosition = false
			cash = shares * close
			shares = 0
		}

		rows[i] = ClassicalRow{
			Date:           c.Date,
			Close:          close,
			Upper:          upper,
			Lower:          lower,
			InPosition:     inPosition,
			PortfolioValue: cash + shares*close,
		}
	}
	return rows
}

// ClassicalValues — кривая капитала из строк симуляции.
func ClassicalValues(rows []ClassicalRow) []float64 {
	return lo.Map(rows, func(r ClassicalRow, _ int) float64 {
		return r.PortfolioValue
	})
}
