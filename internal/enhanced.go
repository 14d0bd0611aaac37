// enhanced.go
//
// Усиленная стратегия полос Боллинджера
//
// Описание стратегии:
// Регрессионная модель предсказывает изменение WMA3 на шаг вперёд; вход
// в позицию разрешается только когда предсказанная WMA пробивает полосу
// Боллинджера. Выходы асимметричные: жёсткий стоп на расстоянии трёх ATR
// от цены входа и фиксация прибыли при пробое противоположной полосы
// (возврат к среднему состоялся).
//
// Машина состояний (ровно один переход за бар, в порядке приоритета):
//   FLAT -> LONG   predWMA <= lower: shares = cash/close, cash = 0
//   FLAT -> SHORT  predWMA >= upper: shares = capital/close,
//                  cash = capital + shares*close
//   LONG -> FLAT   predWMA < entry - 3*ATR или predWMA > upper:
//                  cash = shares*close
//   SHORT -> FLAT  predWMA > entry + 3*ATR или predWMA < lower:
//                  cash = cash - shares*close
//
// Кэш при входе в шорт завышен на выручку от продажи; в оценке портфеля
// это компенсируется короткой задолженностью (value = cash - shares*close).
// Учёт воспроизводится в точности, менять его нельзя — от него зависят
// все численные результаты стратегии.
//
// Модель обучается строго на данных до даты разбиения и предсказывает
// только после неё, заглядывание в будущее исключено на уровне разбиения.
package internal

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Position — состояние позиции симулятора.
type Position int

const (
	FLAT Position = iota
	LONG
	SHORT
)

func (p Position) String() string {
	return [...]string{"FLAT", "LONG", "SHORT"}[p]
}

// Множитель ATR для стоп-лосса.
const ATRStopMultiplier = 3.0

// ErrNoTestData — после разбиения не осталось оценочных строк.
type ErrNoTestData struct {
	Split time.Time
}

func (e *ErrNoTestData) Error() string {
	return fmt.Sprintf("нет данных для оценки: все строки раньше даты разбиения %s",
		e.Split.Format("2006-01-02"))
}

// EvaluationRow — бар оценочного периода с предсказанием модели,
// состоянием позиции и стоимостью портфеля после перехода.
type EvaluationRow struct {
	FrameRow

	PredictedDiff  float64
	PredictedWMA   float64
	Position       Position
	PortfolioValue float64
}

// EnhancedStrategy — усиленная стратегия с подключаемой моделью тренда.
type EnhancedStrategy struct {
	InitialCapital float64
	Model          TrendModel
}

func NewEnhancedStrategy(initialCapital float64, model TrendModel) *EnhancedStrategy {
	return &EnhancedStrategy{
		InitialCapital: initialCapital,
		Model:          model,
	}
}

// Run строит признаки по всему ряду, обучает модель на строках до splitDate
// и симулирует торговлю на строках после неё. Возвращает оценочные бары
// с предсказаниями и кривой капитала.
func (s *EnhancedStrategy) Run(candles []Candle, splitDate time.Time) ([]EvaluationRow, error) {
	rows, _ := PrepareFeatures(candles)
	train, test := SplitByDate(rows, splitDate)
	if len(test) == 0 {
		return nil, &ErrNoTestData{Split: splitDate}
	}

	if err := s.Model.Fit(FeatureMatrix(train), Targets(train)); err != nil {
		return nil, fmt.Errorf("обучение модели: %w", err)
	}

	diffs, err := s.Model.Predict(FeatureMatrix(test))
	if err != nil {
		return nil, fmt.Errorf("предсказание модели: %w", err)
	}
	if len(diffs) != len(test) {
		return nil, fmt.Errorf("модель вернула %d предсказаний на %d строк", len(diffs), len(test))
	}

	eval := make([]EvaluationRow, len(test))
	for i, r := range test {
		eval[i] = EvaluationRow{
			FrameRow:      r,
			PredictedDiff: diffs[i],
			PredictedWMA:  r.WMA + diffs[i],
		}
	}

	s.simulate(eval)
	return eval, nil
}

// simulate прогоняет машину состояний по оценочным барам и проставляет в
// каждую строку позицию и стоимость портфеля. Все входы к этому моменту
// определены (NaN-строки отброшены при построении признаков), поэтому
// внутри цикла отказов не бывает.
func (s *EnhancedStrategy) simulate(rows []EvaluationRow) {
	cash := s.InitialCapital
	position := FLAT
	entryPrice := 0.0
	shares := 0.0

	for i := range rows {
		r := &rows[i]
		predWMA := r.PredictedWMA
		close := r.Close

		switch position {
		case FLAT:
			if predWMA <= r.Lower {
				position = LONG
				entryPrice = close
				shares = cash / close
				cash = 0
			} else if predWMA >= r.Upper {
				position = SHORT
				entryPrice = close
				shares = s.InitialCapital / close
				cash = s.InitialCapital + shares*close
			}
		case LONG:
			stopLoss := entryPrice - ATRStopMultiplier*r.ATR
			if predWMA < stopLoss || predWMA > r.Upper {
				position = FLAT
				cash = shares * close
				shares = 0
			}
		case SHORT:
			stopLoss := entryPrice + ATRStopMultiplier*r.ATR
			if predWMA > stopLoss || predWMA < r.Lower {
				position = FLAT
				cash = cash - shares*close
				shares = 0
			}
		}

		switch position {
		case FLAT:
			r.PortfolioValue = cash
		case LONG:
			r.PortfolioValue = shares * close
		case SHORT:
			r.PortfolioValue = cash - shares*close
		}
		r.Position = position
	}
}

// EnhancedValues — кривая капитала из оценочных строк.
func EnhancedValues(rows []EvaluationRow) []float64 {
	return lo.Map(rows, func(r EvaluationRow, _ int) float64 {
		return r.PortfolioValue
	})
}
