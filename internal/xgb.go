// xgb.go — предобученная градиентно-бустинговая модель (дамп XGBoost)
package internal

import (
	"fmt"

	xgb "github.com/Elvenson/xgboost-go"
	"github.com/Elvenson/xgboost-go/activation"
	"github.com/Elvenson/xgboost-go/mat"
)

func init() {
	RegisterModel("xgboost", func(p ModelParams) (TrendModel, error) {
		if p.DumpPath == "" {
			return nil, fmt.Errorf("для модели xgboost нужен путь к JSON-дампу (model.dump_path)")
		}
		return &XGBModel{path: p.DumpPath}, nil
	})
}

// XGBModel оборачивает JSON-дамп XGBoost в интерфейс TrendModel. Обучение
// выполняется вне прогона; состоянием обученной модели является сам дамп,
// поэтому Fit только фиксирует размерность и проверять её будет Predict.
type XGBModel struct {
	path      string
	nFeatures int
}

func (m *XGBModel) Fit(features [][]float64, _ []float64) error {
	if len(features) > 0 {
		m.nFeatures = len(features[0])
	}
	return nil
}

func (m *XGBModel) Predict(features [][]float64) ([]float64, error) {
	ensemble, err := xgb.LoadXGBoostFromJSON(m.path, "", 1, 0, &activation.Raw{})
	if err != nil {
		return nil, fmt.Errorf("загрузка дампа XGBoost %s: %w", m.path, err)
	}

	input := mat.SparseMatrix{Vectors: make([]mat.SparseVector, len(features))}
	for i, row := range features {
		if m.nFeatures > 0 && len(row) != m.nFeatures {
			return nil, fmt.Errorf("строка %d: %d признаков вместо %d", i, len(row), m.nFeatures)
		}
		vec := make(mat.SparseVector, len(row))
		for j, v := range row {
			vec[j] = float32(v)
		}
		input.Vectors[i] = vec
	}

	pred, err := ensemble.PredictRegression(input, 0)
	if err != nil {
		return nil, fmt.Errorf("инференс XGBoost: %w", err)
	}

	out := make([]float64, len(pred.Vectors))
	for i, vec := range pred.Vectors {
		out[i] = float64((*vec)[0])
	}
	return out, nil
}
