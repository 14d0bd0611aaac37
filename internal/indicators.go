// indicators.go — индикаторы с NaN-префиксом на прогреве
package internal

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Bands — полосы Боллинджера и их составляющие. Все срезы той же длины,
// что и входной ряд; первые window-1 значений — NaN.
type Bands struct {
	MA    []float64
	STD   []float64
	Upper []float64
	Lower []float64
}

// WMA3 — трёхдневная взвешенная скользящая средняя с весами 1,2,3
// (последняя цена весит больше всех): (p[t-2] + 2*p[t-1] + 3*p[t]) / 6.
// Первые два значения не определены.
func WMA3(prices []float64) []float64 {
	out := nanSlice(len(prices))
	for t := 2; t < len(prices); t++ {
		out[t] = (prices[t-2] + 2*prices[t-1] + 3*prices[t]) / 6.0
	}
	return out
}

// BollingerBands считает скользящую среднюю за window баров и полосы на
// расстоянии mult выборочных стандартных отклонений от неё. Отклонение
// выборочное (делитель n-1) — stat.StdDev считает именно так.
func BollingerBands(prices []float64, window int, mult float64) Bands {
	n := len(prices)
	b := Bands{
		MA:    nanSlice(n),
		STD:   nanSlice(n),
		Upper: nanSlice(n),
		Lower: nanSlice(n),
	}
	if window <= 0 {
		return b
	}
	for t := window - 1; t < n; t++ {
		w := prices[t-window+1 : t+1]
		ma := stat.Mean(w, nil)
		sd := stat.StdDev(w, nil)
		b.MA[t] = ma
		b.STD[t] = sd
		b.Upper[t] = ma + mult*sd
		b.Lower[t] = ma - mult*sd
	}
	return b
}

// ATR — средний истинный диапазон за window баров. Истинный диапазон на
// баре t — максимум из high-low, |high-prevClose| и |low-prevClose|;
// на первом баре предыдущего закрытия нет, поэтому он не определён, и его
// NaN проходит через скользящее среднее: первое определённое значение
// ATR — индекс window.
func ATR(candles []Candle, window int) []float64 {
	n := len(candles)
	tr := nanSlice(n)
	for t := 1; t < n; t++ {
		highLow := candles[t].High - candles[t].Low
		highClose := math.Abs(candles[t].High - candles[t-1].Close)
		lowClose := math.Abs(candles[t].Low - candles[t-1].Close)
		tr[t] = math.Max(highLow, math.Max(highClose, lowClose))
	}

	out := nanSlice(n)
	if window <= 0 {
		return out
	}
	for t := window - 1; t < n; t++ {
		// NaN первого истинного диапазона пробрасывается через среднее
		out[t] = stat.Mean(tr[t-window+1:t+1], nil)
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
