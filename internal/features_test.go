package internal

import (
	"math"
	"testing"
	"time"
)

// syntheticCandles — детерминированный волнообразный ряд на n торговых дней.
func syntheticCandles(n int) []Candle {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]Candle, n)
	for i := 0; i < n; i++ {
		close := 100.0 + 10.0*math.Sin(float64(i)/5.0) + 0.1*float64(i)
		candles[i] = Candle{
			Date:   base.AddDate(0, 0, i),
			Open:   close - 0.5,
			High:   close + 1.5,
			Low:    close - 1.5,
			Close:  close,
			Volume: 1000 + float64(i),
		}
	}
	return candles
}

func TestPrepareFeatures_ColumnOrder(t *testing.T) {
	_, cols := PrepareFeatures(syntheticCandles(40))

	expected := []string{
		"Open", "High", "Low", "Close", "Volume",
		"WMA_3_lag_0", "WMA_3_lag_1", "WMA_3_lag_2",
		"WMA_3_lag_3", "WMA_3_lag_4", "WMA_3_lag_5",
	}
	if len(cols) != len(expected) {
		t.Fatalf("Expected %d columns, got %d", len(expected), len(cols))
	}
	for i, name := range expected {
		if cols[i] != name {
			t.Errorf("Column %d: expected %q, got %q", i, name, cols[i])
		}
	}
}

func TestPrepareFeatures_NoNaNSurvives(t *testing.T) {
	rows, cols := PrepareFeatures(syntheticCandles(40))

	if len(rows) == 0 {
		t.Fatal("Expected non-empty feature table for 40 candles")
	}
	for i, r := range rows {
		if len(r.Features) != len(cols) {
			t.Fatalf("Row %d: %d features, expected %d", i, len(r.Features), len(cols))
		}
		for j, f := range r.Features {
			if math.IsNaN(f) {
				t.Errorf("Row %d feature %d is NaN", i, j)
			}
		}
		if math.IsNaN(r.Target) || math.IsNaN(r.WMA) || math.IsNaN(r.Upper) ||
			math.IsNaN(r.Lower) || math.IsNaN(r.ATR) {
			t.Errorf("Row %d has undefined target or indicator", i)
		}
	}
}

func TestPrepareFeatures_WarmupIsDropped(t *testing.T) {
	candles := syntheticCandles(40)
	rows, _ := PrepareFeatures(candles)

	// Первое определённое значение ATR — индекс 20, последняя цель — на
	// предпоследнем баре: остаются строки с индексами 20..38
	if len(rows) != 19 {
		t.Fatalf("Expected 19 complete rows out of 40 candles, got %d", len(rows))
	}
	if !rows[0].Date.Equal(candles[20].Date) {
		t.Errorf("Expected first row at %v, got %v", candles[20].Date, rows[0].Date)
	}
	if !rows[len(rows)-1].Date.Equal(candles[38].Date) {
		t.Errorf("Expected last row at %v, got %v", candles[38].Date, rows[len(rows)-1].Date)
	}
}

func TestPrepareFeatures_LagsAndTarget(t *testing.T) {
	rows, _ := PrepareFeatures(syntheticCandles(40))

	for i, r := range rows {
		// Лаг 0 — текущее значение WMA, закрытие — четвёртый признак
		if r.Features[3] != r.Close {
			t.Errorf("Row %d: feature[3]=%v, expected Close=%v", i, r.Features[3], r.Close)
		}
		if r.Features[5] != r.WMA {
			t.Errorf("Row %d: lag 0 %v does not match WMA %v", i, r.Features[5], r.WMA)
		}
	}

	// Строки здесь идут по соседним барам, поэтому лаг 1 — это WMA
	// предыдущей строки, а цель — изменение WMA до следующей
	for i := 1; i < len(rows); i++ {
		if rows[i].Features[6] != rows[i-1].WMA {
			t.Errorf("Row %d: lag 1 %v does not match previous WMA %v",
				i, rows[i].Features[6], rows[i-1].WMA)
		}
		diff := rows[i].WMA - rows[i-1].WMA
		if math.Abs(rows[i-1].Target-diff) > 1e-9 {
			t.Errorf("Row %d: target %v, expected WMA diff %v", i-1, rows[i-1].Target, diff)
		}
	}
}

func TestSplitByDate_BoundaryGoesToTest(t *testing.T) {
	rows, _ := PrepareFeatures(syntheticCandles(40))
	split := rows[5].Date

	train, test := SplitByDate(rows, split)

	if len(train) != 5 {
		t.Errorf("Expected 5 train rows (strictly before split), got %d", len(train))
	}
	if len(test) != len(rows)-5 {
		t.Errorf("Expected %d test rows, got %d", len(rows)-5, len(test))
	}
	// Строка с датой, равной дате разбиения, попадает в оценочную выборку
	if !test[0].Date.Equal(split) {
		t.Errorf("Expected first test row at split date %v, got %v", split, test[0].Date)
	}
	for _, r := range train {
		if !r.Date.Before(split) {
			t.Errorf("Train row %v is not before split %v", r.Date, split)
		}
	}
}
