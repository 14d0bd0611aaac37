// forest.go — случайный лес регрессионных деревьев
//
// Ансамбль CART-деревьев на бутстрэп-выборках. Дерево растёт без ограничения
// глубины, раздел выбирается по минимуму суммы квадратов остатков, предсказание
// ансамбля — среднее по деревьям. Источник случайности один — зерно модели:
// каждое дерево получает собственный генератор с производным зерном, поэтому
// обучение детерминировано при любом порядке выполнения горутин.
package internal

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

const (
	DefaultEstimators = 100
	DefaultSeed       = 42
)

func init() {
	RegisterModel("forest", func(p ModelParams) (TrendModel, error) {
		estimators := p.Estimators
		if estimators <= 0 {
			estimators = DefaultEstimators
		}
		return NewForestRegressor(estimators, p.Seed), nil
	})
}

// ForestRegressor реализует TrendModel. До вызова Fit предсказания невозможны.
type ForestRegressor struct {
	estimators int
	seed       int64
	nFeatures  int
	trees      []*regressionTree
}

func NewForestRegressor(estimators int, seed int64) *ForestRegressor {
	return &ForestRegressor{
		estimators: estimators,
		seed:       seed,
	}
}

// Fit обучает ансамбль. Деревья строятся параллельно, каждое пишет только
// в свой слот среза.
func (f *ForestRegressor) Fit(features [][]float64, targets []float64) error {
	if len(features) == 0 {
		return fmt.Errorf("обучающая выборка пуста")
	}
	if len(features) != len(targets) {
		return fmt.Errorf("признаков %d, целей %d — длины должны совпадать", len(features), len(targets))
	}

	f.nFeatures = len(features[0])
	f.trees = make([]*regressionTree, f.estimators)

	var wg sync.WaitGroup
	for i := range f.trees {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(f.seed + int64(idx)))
			sample := bootstrapSample(len(features), rng)
			f.trees[idx] = buildRegressionTree(features, targets, sample)
		}(i)
	}
	wg.Wait()

	return nil
}

// Predict возвращает по одной оценке изменения тренда на строку входа.
func (f *ForestRegressor) Predict(features [][]float64) ([]float64, error) {
	if f.trees == nil {
		return nil, fmt.Errorf("модель не обучена: Fit не вызывался")
	}
	out := make([]float64, len(features))
	for i, x := range features {
		if len(x) != f.nFeatures {
			return nil, fmt.Errorf("строка %d: %d признаков вместо %d", i, len(x), f.nFeatures)
		}
		sum := 0.0
		for _, t := range f.trees {
			sum += t.predict(x)
		}
		out[i] = sum / float64(len(f.trees))
	}
	return out, nil
}

// bootstrapSample — выборка с возвращением того же размера, что и исходная.
func bootstrapSample(n int, rng *rand.Rand) []int {
	sample := make([]int, n)
	for i := range sample {
		sample[i] = rng.Intn(n)
	}
	return sample
}

type regressionTree struct {
	root *treeNode
}

// treeNode — узел дерева; лист при left == nil.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
}

func buildRegressionTree(X [][]float64, y []float64, idx []int) *regressionTree {
	return &regressionTree{root: growNode(X, y, idx)}
}

func (t *regressionTree) predict(x []float64) float64 {
	node := t.root
	for node.left != nil {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

func growNode(X [][]float64, y []float64, idx []int) *treeNode {
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	mean := sum / float64(len(idx))

	if len(idx) < 2 || pureTargets(y, idx) {
		return &treeNode{value: mean}
	}

	feature, threshold, ok := bestSplit(X, y, idx)
	if !ok {
		return &treeNode{value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growNode(X, y, left),
		right:     growNode(X, y, right),
		value:     mean,
	}
}

func pureTargets(y []float64, idx []int) bool {
	first := y[idx[0]]
	for _, i := range idx[1:] {
		if y[i] != first {
			return false
		}
	}
	return true
}

// bestSplit перебирает все признаки и все границы между соседними
// различающимися значениями. Минимизация суммы квадратов остатков
// эквивалентна максимизации sumL²/nL + sumR²/nR, что считается за один
// проход по префиксным суммам.
func bestSplit(X [][]float64, y []float64, idx []int) (int, float64, bool) {
	n := len(idx)
	nFeatures := len(X[idx[0]])

	totalSum := 0.0
	for _, i := range idx {
		totalSum += y[i]
	}
	baseScore := totalSum * totalSum / float64(n)

	bestScore := baseScore
	bestFeature := -1
	bestThreshold := 0.0

	order := make([]int, n)
	for feature := 0; feature < nFeatures; feature++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return X[order[a]][feature] < X[order[b]][feature]
		})

		leftSum := 0.0
		for pos := 1; pos < n; pos++ {
			leftSum += y[order[pos-1]]
			prev := X[order[pos-1]][feature]
			curr := X[order[pos]][feature]
			if curr == prev {
				continue
			}
			rightSum := totalSum - leftSum
			score := leftSum*leftSum/float64(pos) + rightSum*rightSum/float64(n-pos)
			if score > bestScore {
				bestScore = score
				bestFeature = feature
				bestThreshold = (prev + curr) / 2.0
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}
