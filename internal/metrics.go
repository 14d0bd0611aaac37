// metrics.go — метрики качества кривой капитала
package internal

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Торговых дней в году — множитель аннуализации Шарпа.
const tradingDaysPerYear = 252

// MaxDrawdown — максимальная просадка кривой капитала в процентах.
// Считается как минимум value[t]/runningMax(value[0..t]) - 1; для
// неубывающего ряда равна ровно нулю, иначе отрицательна.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	peak := values[0]
	worst := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if dd := v/peak - 1.0; dd < worst {
			worst = dd
		}
	}
	return worst * 100.0
}

// SharpeRatio — годовой коэффициент Шарпа по простым дневным доходностям
// (безрисковая ставка 0). Для ряда с нулевой дисперсией доходностей
// возвращает ровно 0 — это не ошибка, а вырожденный случай.
func SharpeRatio(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns[i-1] = values[i]/values[i-1] - 1.0
	}
	sd := stat.StdDev(returns, nil)
	if sd == 0 {
		return 0
	}
	return stat.Mean(returns, nil) / sd * math.Sqrt(tradingDaysPerYear)
}

// TotalReturn — итоговая доходность в процентах от начального капитала.
func TotalReturn(values []float64, initialCapital float64) float64 {
	if len(values) == 0 || initialCapital == 0 {
		return 0
	}
	final := values[len(values)-1]
	return (final - initialCapital) / initialCapital * 100.0
}
