package engine

import (
	"github.com/montanaflynn/stats"

	"varstats/domain/core"
	"varstats/domain/sample"
)

// ANOVAResult reports the one-way analysis of variance outcome, both
// fields rounded to 3 decimal places. Non-finite values (zero
// within-group variance) are propagated literally; callers must handle
// them.
type ANOVAResult struct {
	FStatistic float64 `json:"F-statistic"`
	PValue     float64 `json:"p-value"`
}

// ANOVAEngine computes the F-statistic and p-value for a grouped
// dataset. Stateless; one invocation per dataset.
type ANOVAEngine struct {
	distributions *Distributions
}

// NewANOVAEngine creates a new ANOVA engine
func NewANOVAEngine() *ANOVAEngine {
	return &ANOVAEngine{distributions: NewDistributions()}
}

// Analyze runs a one-way ANOVA over the dataset. At least 2 groups
// must have survived extraction or the call fails with an
// InsufficientGroups error rather than a degenerate numeric result.
func (e *ANOVAEngine) Analyze(dataset sample.GroupedDataset) (*ANOVAResult, error) {
	k := dataset.GroupCount()
	if k < 2 {
		return nil, core.NewInsufficientGroupsError(k, 2)
	}

	groups := dataset.Groups()
	n := dataset.TotalSamples()

	var all []float64
	for _, g := range groups {
		all = append(all, g.Samples()...)
	}
	grandMean, _ := stats.Mean(all)

	// Between-group and within-group sums of squares.
	var ssBetween, ssWithin float64
	for _, g := range groups {
		samples := g.Samples()
		groupMean, _ := stats.Mean(samples)

		diff := groupMean - grandMean
		ssBetween += float64(len(samples)) * diff * diff

		for _, v := range samples {
			d := v - groupMean
			ssWithin += d * d
		}
	}

	dfBetween := k - 1
	dfWithin := n - k

	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)

	// msWithin of exactly zero yields +Inf or NaN here; both are
	// propagated after rounding rather than special-cased.
	fStat := msBetween / msWithin
	pValue := e.distributions.FTestPValue(fStat, dfBetween, dfWithin)

	return &ANOVAResult{
		FStatistic: core.Round3(fStat),
		PValue:     core.Round3(pValue),
	}, nil
}
