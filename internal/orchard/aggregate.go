package orchard

import (
	"github.com/applico/orchard-advisor/internal/models"
	"github.com/applico/orchard-advisor/internal/stats"
)

// Summarize counts trees per health category. An empty set yields a zero
// summary with 0% everywhere. Trees with an unknown health value are not
// counted, so TotalTrees can be less than len(trees).
func Summarize(trees []models.Tree) models.OrchardSummary {
	var healthy, atRisk, diseased int
	for _, t := range trees {
		switch t.Health {
		case models.HealthHealthy:
			healthy++
		case models.HealthWarning:
			atRisk++
		case models.HealthDiseased:
			diseased++
		}
	}
	return SummarizeCounts(healthy, atRisk, diseased)
}

// SummarizeCounts builds a summary from raw category counts. The total is
// always the sum of the three categories.
func SummarizeCounts(healthy, atRisk, diseased int) models.OrchardSummary {
	total := healthy + atRisk + diseased

	return models.OrchardSummary{
		TotalTrees:      total,
		HealthyTrees:    healthy,
		AtRiskTrees:     atRisk,
		DiseasedTrees:   diseased,
		HealthyPercent:  stats.RoundPercent(healthy, total),
		AtRiskPercent:   stats.RoundPercent(atRisk, total),
		DiseasedPercent: stats.RoundPercent(diseased, total),
		HasData:         total > 0,
	}
}

// FruitStats describes the fruit count distribution of trees
func FruitStats(trees []models.Tree) models.FruitStatistics {
	counts := make([]int, len(trees))
	for i, t := range trees {
		counts[i] = t.FruitCount
	}

	min, max := stats.MinMax(counts)
	return models.FruitStatistics{
		Total:  stats.Sum(counts),
		Mean:   stats.Mean(counts),
		Min:    min,
		Max:    max,
		Median: stats.Percentile(counts, 50),
		P90:    stats.Percentile(counts, 90),
	}
}
