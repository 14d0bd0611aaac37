// model.go — контракт регрессионной модели тренда и реестр реализаций
package internal

import (
	"fmt"
	"sort"
)

// TrendModel — регрессионная модель, предсказывающая изменение WMA3 на шаг
// вперёд. Fit вызывается ровно один раз за прогон и меняет внутреннее
// состояние; Predict состояния не меняет и зависит только от обученной
// модели и входа.
type TrendModel interface {
	Fit(features [][]float64, targets []float64) error
	Predict(features [][]float64) ([]float64, error)
}

// ModelParams — параметры, с которыми реестр собирает модель.
type ModelParams struct {
	Estimators int
	Seed       int64
	DumpPath   string // путь к дампу для предобученных моделей
}

// ModelFactory — конструктор модели по параметрам.
type ModelFactory func(p ModelParams) (TrendModel, error)

var models = make(map[string]ModelFactory)

// RegisterModel регистрирует реализацию под именем. Вызывается из init().
func RegisterModel(name string, factory ModelFactory) {
	models[name] = factory
}

// NewModel собирает зарегистрированную модель по имени.
func NewModel(name string, p ModelParams) (TrendModel, error) {
	factory, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("неизвестная модель: %s", name)
	}
	return factory(p)
}

// ModelNames — отсортированный список зарегистрированных моделей.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
