package matching

import (
	"sort"
	"sync"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANKING ENGINE
// Оценивает весь пул кандидатов, сортирует и разрешает ничьи детерминированно:
// скор по убыванию → рейтинг по убыванию → ID ментора по возрастанию.
// Два запуска с одинаковыми входами дают побайтово одинаковый порядок.
// ══════════════════════════════════════════════════════════════════════════════

// RankingEngine ранжирует пул кандидатов по композитному скору.
type RankingEngine struct {
	scorer *ScoringEngine

	// parallelThreshold - размер пула, начиная с которого скоринг
	// раскладывается на воркеры. 0 = всегда последовательно.
	// Для реальных справочников (сотни менторов) последовательный
	// проход проще и достаточно быстр.
	parallelThreshold int
}

// NewRankingEngine создаёт движок ранжирования.
func NewRankingEngine(scorer *ScoringEngine, parallelThreshold int) *RankingEngine {
	return &RankingEngine{
		scorer:            scorer,
		parallelThreshold: parallelThreshold,
	}
}

// rankWorkers - количество воркеров при параллельном скоринге.
const rankWorkers = 4

// Rank оценивает пул и возвращает полный упорядоченный список результатов.
// Лимит применяет вызывающая сторона. Пустой пул - пустой список, не ошибка.
//
// Жёсткие фильтры критериев перепроверяются на случай, если справочник
// вернул неотфильтрованный снимок: ни один ментор ниже MinRating или
// чужого MentorType не должен попасть в результат.
func (r *RankingEngine) Rank(c Criteria, pool []*mentor.Profile) []Result {
	filter := c.HardFilter()

	candidates := make([]*mentor.Profile, 0, len(pool))
	for _, p := range pool {
		if filter.Allows(p) {
			candidates = append(candidates, p)
		}
	}

	results := r.scoreAll(c, candidates)

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		ri := results[i].Mentor.Rating.OrNeutral()
		rj := results[j].Mentor.Rating.OrNeutral()
		if ri != rj {
			return ri > rj
		}
		return results[i].MentorID < results[j].MentorID
	})

	return results
}

// scoreAll оценивает кандидатов последовательно или пулом воркеров.
// Каждый кандидат независим, результат пишется по своему индексу,
// поэтому порядок до сортировки одинаков в обоих режимах.
func (r *RankingEngine) scoreAll(c Criteria, candidates []*mentor.Profile) []Result {
	results := make([]Result, len(candidates))

	if r.parallelThreshold <= 0 || len(candidates) < r.parallelThreshold {
		for i, p := range candidates {
			results[i] = r.scorer.Score(c, p)
		}
		return results
	}

	var wg sync.WaitGroup
	jobs := make(chan int)

	for w := 0; w < rankWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.scorer.Score(c, candidates[i])
			}
		}()
	}

	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// Truncate возвращает первые limit результатов.
func Truncate(results []Result, limit int) []Result {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}
