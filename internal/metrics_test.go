package internal

import (
	"math"
	"testing"
)

func TestMaxDrawdown_MonotonicSeriesIsZero(t *testing.T) {
	// Неубывающая кривая капитала — просадка ровно ноль
	values := []float64{100, 100, 110, 125, 125, 130}
	if dd := MaxDrawdown(values); dd != 0 {
		t.Errorf("Expected exactly 0 drawdown for non-decreasing series, got %v", dd)
	}
}

func TestMaxDrawdown_KnownValue(t *testing.T) {
	// Падение со 100 до 50 — просадка 50%
	values := []float64{100, 50, 100}
	if dd := MaxDrawdown(values); math.Abs(dd-(-50)) > 1e-9 {
		t.Errorf("Expected -50, got %v", dd)
	}

	// Просадка считается от бегущего максимума, а не от старта
	values2 := []float64{100, 200, 150, 300}
	if dd := MaxDrawdown(values2); math.Abs(dd-(-25)) > 1e-9 {
		t.Errorf("Expected -25 (150 against peak 200), got %v", dd)
	}
}

func TestMaxDrawdown_NeverPositive(t *testing.T) {
	values := []float64{100, 120, 90, 140, 80}
	if dd := MaxDrawdown(values); dd > 0 {
		t.Errorf("Drawdown must be <= 0, got %v", dd)
	}
}

func TestSharpeRatio_DegenerateCases(t *testing.T) {
	// Постоянная кривая: дисперсия доходностей нулевая, Шарп ровно 0
	if s := SharpeRatio([]float64{100, 100, 100, 100}); s != 0 {
		t.Errorf("Expected exactly 0 for constant series, got %v", s)
	}

	// Меньше двух точек — доходностей нет
	if s := SharpeRatio([]float64{100}); s != 0 {
		t.Errorf("Expected 0 for single point, got %v", s)
	}
	if s := SharpeRatio(nil); s != 0 {
		t.Errorf("Expected 0 for empty series, got %v", s)
	}
}

func TestSharpeRatio_KnownValue(t *testing.T) {
	// Доходности 0.1 и -1/22: среднее 0.027273, выборочное отклонение 0.102852,
	// аннуализация sqrt(252)
	values := []float64{100, 110, 105}
	expected := 0.0272727272 / 0.1028518967 * math.Sqrt(252)
	if s := SharpeRatio(values); math.Abs(s-expected) > 1e-6 {
		t.Errorf("Expected %v, got %v", expected, s)
	}
}

func TestTotalReturn(t *testing.T) {
	values := []float64{100000, 95000, 120000}
	if r := TotalReturn(values, 100000); math.Abs(r-20) > 1e-9 {
		t.Errorf("Expected 20%%, got %v", r)
	}

	if r := TotalReturn(nil, 100000); r != 0 {
		t.Errorf("Expected 0 for empty series, got %v", r)
	}
}
