package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"varstats/domain/core"
	"varstats/domain/sample"
)

// Family-wise error rate for Tukey HSD. Fixed by contract, not
// configurable.
const tukeyAlpha = 0.05

// TukeyComparison is one pairwise post-hoc comparison. Group1 sorts
// before Group2 lexicographically and MeanDiff is mean(group2) -
// mean(group1). Numeric fields carry 4 decimal places.
type TukeyComparison struct {
	Group1   string  `json:"group1"`
	Group2   string  `json:"group2"`
	MeanDiff float64 `json:"meandiff"`
	PAdj     float64 `json:"p-adj"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Reject   bool    `json:"reject"`
}

// TukeyEngine computes pairwise post-hoc comparisons over a grouped
// dataset using the studentized range distribution.
type TukeyEngine struct {
	distributions *Distributions
}

// NewTukeyEngine creates a new Tukey HSD engine
func NewTukeyEngine() *TukeyEngine {
	return &TukeyEngine{distributions: NewDistributions()}
}

// Analyze runs Tukey's HSD over every unordered pair of groups and
// returns only the comparisons that reject the null hypothesis of
// equal means, ordered by (Group1, Group2) ascending. The pooled
// variance estimate needs at least 2 groups and one spare observation
// beyond the group count; anything less is an InsufficientData error.
func (e *TukeyEngine) Analyze(dataset sample.GroupedDataset) ([]TukeyComparison, error) {
	k := dataset.GroupCount()
	if k < 2 {
		return nil, core.NewInsufficientDataError("need at least 2 groups for pairwise comparison")
	}

	n := dataset.TotalSamples()
	dfWithin := n - k
	if dfWithin < 1 {
		return nil, core.NewInsufficientDataError("too few observations for a pooled variance estimate")
	}

	groups := dataset.Groups()

	// Pooled within-group mean square (the ANOVA MSE).
	var ssWithin float64
	means := make([]float64, len(groups))
	for i, g := range groups {
		samples := g.Samples()
		mean, _ := stats.Mean(samples)
		means[i] = mean
		for _, v := range samples {
			d := v - mean
			ssWithin += d * d
		}
	}
	mse := ssWithin / float64(dfWithin)

	qCritical := e.distributions.StudentizedRangeQuantile(1-tukeyAlpha, k, dfWithin)

	var rejected []TukeyComparison
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			g1, g2 := groups[i], groups[j]

			meanDiff := means[j] - means[i]

			// Tukey-Kramer standard error for unequal group sizes.
			se := math.Sqrt(mse / 2 * (1/float64(g1.Size()) + 1/float64(g2.Size())))

			qObserved := math.Abs(meanDiff) / se
			pAdj := 1 - e.distributions.StudentizedRangeCDF(qObserved, k, dfWithin)

			halfWidth := qCritical * se
			lower := meanDiff - halfWidth
			upper := meanDiff + halfWidth

			// Rejection at the family-wise level; equivalent to the
			// confidence interval excluding zero. A NaN pAdj (0/0 when
			// both the pooled variance and the difference are zero)
			// must never reject.
			if !(pAdj <= tukeyAlpha) {
				continue
			}

			rejected = append(rejected, TukeyComparison{
				Group1:   g1.Label(),
				Group2:   g2.Label(),
				MeanDiff: core.Round4(meanDiff),
				PAdj:     core.Round4(pAdj),
				Lower:    core.Round4(lower),
				Upper:    core.Round4(upper),
				Reject:   true,
			})
		}
	}

	return rejected, nil
}
