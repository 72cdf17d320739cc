package matching

import (
	"math"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// WEIGHT CONFIGURATION
// Веса измерений композитного скора. Сумма весов равна 1.0, поэтому
// композитный скор всегда остаётся в [0,1]. Веса - конфигурационная
// константа запуска, а не параметр каждого вызова.
// ══════════════════════════════════════════════════════════════════════════════

// weightSumTolerance - допуск на накопленную ошибку float при проверке суммы.
const weightSumTolerance = 1e-9

// ScoreWeights задаёт веса пяти измерений скоринга.
type ScoreWeights struct {
	// Expertise - вес пересечения навыков.
	Expertise float64

	// Industry - вес совпадения индустрии.
	Industry float64

	// Availability - вес доступности и совместимости поясов.
	Availability float64

	// Rating - вес рейтинга ментора.
	Rating float64

	// ProjectNeeds - вес соответствия типа ментора категории проекта.
	ProjectNeeds float64
}

// DefaultScoreWeights возвращает веса по умолчанию.
// Навыки - главный сигнал, рейтинг - второй по важности.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Expertise:    0.35,
		Industry:     0.15,
		Availability: 0.15,
		Rating:       0.20,
		ProjectNeeds: 0.15,
	}
}

// Validate проверяет, что веса неотрицательны и в сумме дают 1.0.
func (w ScoreWeights) Validate() error {
	for _, v := range []float64{w.Expertise, w.Industry, w.Availability, w.Rating, w.ProjectNeeds} {
		if v < 0 || math.IsNaN(v) {
			return shared.ErrInvalidWeights
		}
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return shared.ErrInvalidWeights
	}
	return nil
}

// Sum возвращает сумму весов.
func (w ScoreWeights) Sum() float64 {
	return w.Expertise + w.Industry + w.Availability + w.Rating + w.ProjectNeeds
}
