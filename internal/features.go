// features.go — признаковая таблица для модели тренда
package internal

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
)

const (
	// Параметры индикаторов, общие для обеих стратегий.
	BandWindow     = 20
	BandMultiplier = 3.0
	ATRWindow      = 20

	// Сколько лагов WMA3 входит в вектор признаков (лаг 0 — текущее значение).
	wmaLagCount = 6
)

// FrameRow — одна строка признаковой таблицы: бар, индикаторы на нём,
// вектор признаков модели и целевое значение (изменение WMA3 на шаг вперёд).
// Порядок и длина Features всегда совпадают со списком колонок из
// PrepareFeatures.
type FrameRow struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	WMA   float64
	Upper float64
	Lower float64
	ATR   float64

	Features []float64
	Target   float64
}

// PrepareFeatures строит таблицу признаков по ценовому ряду: OHLCV плюс
// шесть лагов WMA3, цель — WMA3(t+1) - WMA3(t). Строки, где хотя бы один
// признак, индикатор или цель не определены, отбрасываются целиком —
// модель никогда не обучается и не предсказывает на неполной истории.
func PrepareFeatures(candles []Candle) ([]FrameRow, []string) {
	closes := Closes(candles)
	wma := WMA3(closes)
	bands := BollingerBands(closes, BandWindow, BandMultiplier)
	atr := ATR(candles, ATRWindow)

	cols := []string{"Open", "High", "Low", "Close", "Volume"}
	for i := 0; i < wmaLagCount; i++ {
		cols = append(cols, fmt.Sprintf("WMA_3_lag_%d", i))
	}

	rows := make([]FrameRow, 0, len(candles))
	for t, c := range candles {
		feats := make([]float64, 0, len(cols))
		feats = append(feats, c.Open, c.High, c.Low, c.Close, c.Volume)
		for lag := 0; lag < wmaLagCount; lag++ {
			if t-lag >= 0 {
				feats = append(feats, wma[t-lag])
			} else {
				feats = append(feats, math.NaN())
			}
		}

		target := math.NaN()
		if t+1 < len(candles) {
			target = wma[t+1] - wma[t]
		}

		rows = append(rows, FrameRow{
			Date:     c.Date,
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			Volume:   c.Volume,
			WMA:      wma[t],
			Upper:    bands.Upper[t],
			Lower:    bands.Lower[t],
			ATR:      atr[t],
			Features: feats,
			Target:   target,
		})
	}

	complete := lo.Filter(rows, func(r FrameRow, _ int) bool {
		return rowComplete(r)
	})
	return complete, cols
}

func rowComplete(r FrameRow) bool {
	if math.IsNaN(r.WMA) || math.IsNaN(r.Upper) || math.IsNaN(r.Lower) ||
		math.IsNaN(r.ATR) || math.IsNaN(r.Target) {
		return false
	}
	for _, f := range r.Features {
		if math.IsNaN(f) {
			return false
		}
	}
	return true
}

// SplitByDate делит строки по дате: строго до split — обучающая выборка,
// начиная со split — оценочная. Временной порядок обучения и оценки
// гарантируется именно здесь, сама модель дат не видит.
func SplitByDate(rows []FrameRow, split time.Time) (train, test []FrameRow) {
	for _, r := range rows {
		if r.Date.Before(split) {
			train = append(train, r)
		} else {
			test = append(test, r)
		}
	}
	return train, test
}

// FeatureMatrix — векторы признаков строк в том же порядке.
func FeatureMatrix(rows []FrameRow) [][]float64 {
	return lo.Map(rows, func(r FrameRow, _ int) []float64 {
		return r.Features
	})
}

// Targets — целевые значения строк в том же порядке.
func Targets(rows []FrameRow) []float64 {
	return lo.Map(rows, func(r FrameRow, _ int) float64 {
		return r.Target
	})
}
