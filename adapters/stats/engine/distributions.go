package engine

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides unified access to the reference distributions
// the variance engines need: the F-distribution for the ANOVA p-value
// and the studentized range distribution for Tukey HSD.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// FTestPValue computes the upper-tail probability under F(df1, df2).
func (d *Distributions) FTestPValue(fStatistic float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}
	if math.IsNaN(fStatistic) {
		return math.NaN()
	}
	if math.IsInf(fStatistic, 1) {
		return 0.0
	}
	if fStatistic <= 0 {
		return 1.0
	}

	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return 1 - fDist.CDF(fStatistic)
}

// Quadrature node counts. The integrands are smooth, so fixed
// Gauss-Legendre rules of this size give well beyond the 3-4 decimal
// places the reported statistics carry.
const (
	rangeInnerNodes = 64
	rangeOuterNodes = 128
)

// StudentizedRangeCDF computes P(Q <= q) for the studentized range of
// k groups with df within-group degrees of freedom. gonum ships no
// studentized range distribution, so the standard double integral is
// evaluated with gonum fixed-point quadrature over the normal CDF:
//
//	F(q; k, df) = Int_0^inf P_k(q*u) g_df(u) du
//
// where P_k(w) is the CDF of the range of k standard normals and
// g_df is the density of sqrt(chi2_df / df).
func (d *Distributions) StudentizedRangeCDF(q float64, k, df int) float64 {
	if k < 2 || df < 1 {
		return 0
	}
	if math.IsNaN(q) {
		return math.NaN()
	}
	if q <= 0 {
		return 0
	}
	if math.IsInf(q, 1) {
		return 1
	}

	nu := float64(df)

	// The scale factor u concentrates around 1 with spread ~1/sqrt(2*df);
	// past this bound its density is vanishingly small.
	uMax := 1 + 10/math.Sqrt(2*nu)

	lgamma, _ := math.Lgamma(nu / 2)
	logNorm := math.Ln2 + (nu/2)*math.Log(nu/2) - lgamma

	p := quad.Fixed(func(u float64) float64 {
		if u <= 0 {
			return 0
		}
		logDensity := logNorm + (nu-1)*math.Log(u) - nu*u*u/2
		return normalRangeCDF(q*u, k) * math.Exp(logDensity)
	}, 0, uMax, rangeOuterNodes, quad.Legendre{}, 0)

	return clampProbability(p)
}

// StudentizedRangeQuantile inverts StudentizedRangeCDF by bisection.
func (d *Distributions) StudentizedRangeQuantile(p float64, k, df int) float64 {
	if k < 2 || df < 1 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return math.Inf(1)
	}

	lo, hi := 0.0, 1.0
	for d.StudentizedRangeCDF(hi, k, df) < p {
		hi *= 2
		if hi > 1e6 {
			return math.Inf(1)
		}
	}
	for i := 0; i < 80; i++ {
		mid := (lo + hi) / 2
		if d.StudentizedRangeCDF(mid, k, df) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// normalRangeCDF computes P(range of k iid standard normals <= w):
//
//	P_k(w) = k * Int phi(z) * (Phi(z) - Phi(z-w))^(k-1) dz
func normalRangeCDF(w float64, k int) float64 {
	if w <= 0 {
		return 0
	}

	norm := distuv.UnitNormal
	p := quad.Fixed(func(z float64) float64 {
		inner := norm.CDF(z) - norm.CDF(z-w)
		if inner <= 0 {
			return 0
		}
		return norm.Prob(z) * math.Pow(inner, float64(k-1))
	}, -8, 8, rangeInnerNodes, quad.Legendre{}, 0)

	return clampProbability(float64(k) * p)
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
