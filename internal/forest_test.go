package internal

import (
	"math"
	"testing"
)

func TestForestRegressor_Deterministic(t *testing.T) {
	X, y := stepData()

	// Два независимых обучения с одним зерном обязаны совпасть бит в бит,
	// несмотря на параллельное построение деревьев
	first := NewForestRegressor(20, 42)
	if err := first.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	second := NewForestRegressor(20, 42)
	if err := second.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	p1, err := first.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	p2, err := second.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("Row %d: predictions differ: %v vs %v", i, p1[i], p2[i])
		}
	}
}

func TestForestRegressor_DifferentSeedsDiffer(t *testing.T) {
	// Непрерывная цель и точки между обучающими: предсказание зависит от
	// бутстрэп-состава листьев, поэтому разные зёрна дают разные ансамбли
	X := make([][]float64, 20)
	y := make([]float64, 20)
	for i := 0; i < 20; i++ {
		X[i] = []float64{float64(i)}
		y[i] = float64(i) + math.Sin(float64(i))
	}
	queries := [][]float64{{2.5}, {7.3}, {12.8}, {18.2}}

	a := NewForestRegressor(20, 1)
	b := NewForestRegressor(20, 2)
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pa, _ := a.Predict(queries)
	pb, _ := b.Predict(queries)
	same := true
	for i := range pa {
		if pa[i] != pb[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected different seeds to produce different ensembles")
	}
}

func TestForestRegressor_ConstantTarget(t *testing.T) {
	// При постоянной цели любой лист предсказывает ровно эту константу
	X := [][]float64{{1}, {2}, {3}, {4}, {5}}
	y := []float64{7, 7, 7, 7, 7}

	f := NewForestRegressor(10, 42)
	if err := f.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	preds, err := f.Predict([][]float64{{1.5}, {10}})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i, p := range preds {
		if p != 7 {
			t.Errorf("Prediction %d: expected exactly 7, got %v", i, p)
		}
	}
}

func TestForestRegressor_LearnsStepFunction(t *testing.T) {
	X, y := stepData()

	f := NewForestRegressor(30, 42)
	if err := f.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	preds, err := f.Predict([][]float64{{2}, {15}})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(preds[0]-0) > 2 {
		t.Errorf("Expected prediction near 0 on the left plateau, got %v", preds[0])
	}
	if math.Abs(preds[1]-10) > 2 {
		t.Errorf("Expected prediction near 10 on the right plateau, got %v", preds[1])
	}
}

func TestForestRegressor_InputValidation(t *testing.T) {
	f := NewForestRegressor(5, 42)

	// Предсказание до обучения
	if _, err := f.Predict([][]float64{{1}}); err == nil {
		t.Error("Expected error when predicting before Fit")
	}

	// Пустая выборка
	if err := f.Fit(nil, nil); err == nil {
		t.Error("Expected error on empty training set")
	}

	// Несовпадение длин
	if err := f.Fit([][]float64{{1}, {2}}, []float64{1}); err == nil {
		t.Error("Expected error on features/targets length mismatch")
	}

	// Несовпадение размерности на предсказании
	if err := f.Fit([][]float64{{1, 2}, {3, 4}}, []float64{1, 2}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if _, err := f.Predict([][]float64{{1}}); err == nil {
		t.Error("Expected error on feature dimension mismatch")
	}
}

// stepData — ступенчатая зависимость: y = 0 при x < 10, y = 10 при x >= 10.
func stepData() ([][]float64, []float64) {
	X := make([][]float64, 20)
	y := make([]float64, 20)
	for i := 0; i < 20; i++ {
		X[i] = []float64{float64(i)}
		if i < 10 {
			y[i] = 0
		} else {
			y[i] = 10
		}
	}
	return X, y
}
