package manifold

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"varstats/domain/embedding"
)

// Projection hyperparameters. The seed is fixed so repeated calls on
// identical input produce identical coordinates; each call owns its
// rand.Source, so concurrent calls stay deterministic too.
const (
	projectionSeed = 42

	tsneIterations     = 500
	tsneLearningRate   = 200.0
	tsneMaxPerplexity  = 30.0
	earlyExaggeration  = 4.0
	exaggerationPhase  = 100
	initialMomentum    = 0.5
	finalMomentum      = 0.8
	momentumSwitchIter = 250
	minProbability     = 1e-12
	minGain            = 0.01
)

// Projector reduces equal-dimension vectors to 2-D coordinates with a
// stochastic neighbor embedding. Input size is advisory-capped around
// a few hundred records because the pairwise affinity computation is
// quadratic; larger input is processed anyway, never truncated.
type Projector struct{}

// NewProjector creates a new embedding projector
func NewProjector() *Projector {
	return &Projector{}
}

// Project maps each record's vector to a 2-D point, preserving input
// order. Fails with a DimensionMismatch error on ragged vectors and an
// EmptyInput error on zero records.
func (p *Projector) Project(records []embedding.Record) ([][2]float64, error) {
	if _, err := validateRecords(records); err != nil {
		return nil, err
	}

	n := len(records)
	rng := rand.New(rand.NewSource(projectionSeed))

	points := make([][2]float64, n)
	for i := range points {
		points[i][0] = rng.NormFloat64() * 1e-4
		points[i][1] = rng.NormFloat64() * 1e-4
	}
	if n == 1 {
		return points, nil
	}

	perplexity := math.Min(tsneMaxPerplexity, float64(n-1)/3)
	if perplexity < 1 {
		perplexity = 1
	}

	affinities := symmetricAffinities(records, perplexity)

	// Gradient descent with momentum, adaptive gains, and early
	// exaggeration of the input affinities.
	update := make([][2]float64, n)
	gains := make([][2]float64, n)
	for i := range gains {
		gains[i] = [2]float64{1, 1}
	}

	for iter := 0; iter < tsneIterations; iter++ {
		exaggeration := 1.0
		if iter < exaggerationPhase {
			exaggeration = earlyExaggeration
		}
		momentum := initialMomentum
		if iter >= momentumSwitchIter {
			momentum = finalMomentum
		}

		grad := tsneGradient(points, affinities, exaggeration)

		for i := 0; i < n; i++ {
			for d := 0; d < 2; d++ {
				if (grad[i][d] > 0) != (update[i][d] > 0) {
					gains[i][d] += 0.2
				} else {
					gains[i][d] *= 0.8
				}
				if gains[i][d] < minGain {
					gains[i][d] = minGain
				}
				update[i][d] = momentum*update[i][d] - tsneLearningRate*gains[i][d]*grad[i][d]
				points[i][d] += update[i][d]
			}
		}

		recenter(points)
	}

	return points, nil
}

// symmetricAffinities computes the symmetrized input-space affinity
// matrix P, with per-point bandwidths found by binary search on the
// target perplexity.
func symmetricAffinities(records []embedding.Record, perplexity float64) [][]float64 {
	n := len(records)

	sqDist := make([][]float64, n)
	for i := range sqDist {
		sqDist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := floats.Distance(records[i].Vector, records[j].Vector, 2)
			sqDist[i][j] = d * d
			sqDist[j][i] = d * d
		}
	}

	p := make([][]float64, n)
	for i := range p {
		p[i] = conditionalProbabilities(sqDist[i], i, perplexity)
	}

	// Symmetrize and normalize over all pairs.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := (p[i][j] + p[j][i]) / (2 * float64(n))
			if v < minProbability {
				v = minProbability
			}
			p[i][j] = v
			p[j][i] = v
		}
		p[i][i] = 0
	}
	return p
}

// conditionalProbabilities finds the Gaussian bandwidth for point i
// whose conditional distribution matches the target perplexity, then
// returns that distribution.
func conditionalProbabilities(sqDist []float64, i int, perplexity float64) []float64 {
	n := len(sqDist)
	targetEntropy := math.Log(perplexity)

	beta := 1.0
	betaMin := math.Inf(-1)
	betaMax := math.Inf(1)

	probs := make([]float64, n)
	for attempt := 0; attempt < 50; attempt++ {
		var sum float64
		for j := 0; j < n; j++ {
			if j == i {
				probs[j] = 0
				continue
			}
			probs[j] = math.Exp(-beta * sqDist[j])
			sum += probs[j]
		}
		if sum == 0 {
			sum = minProbability
		}

		var entropy float64
		for j := 0; j < n; j++ {
			probs[j] /= sum
			if probs[j] > 0 {
				entropy -= probs[j] * math.Log(probs[j])
			}
		}

		diff := entropy - targetEntropy
		if math.Abs(diff) < 1e-5 {
			break
		}
		if diff > 0 {
			betaMin = beta
			if math.IsInf(betaMax, 1) {
				beta *= 2
			} else {
				beta = (beta + betaMax) / 2
			}
		} else {
			betaMax = beta
			if math.IsInf(betaMin, -1) {
				beta /= 2
			} else {
				beta = (beta + betaMin) / 2
			}
		}
	}

	return probs
}

// tsneGradient computes the Kullback-Leibler gradient with the
// Student-t kernel in the embedding space.
func tsneGradient(points [][2]float64, p [][]float64, exaggeration float64) [][2]float64 {
	n := len(points)

	q := make([][]float64, n)
	var z float64
	for i := 0; i < n; i++ {
		q[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := points[i][0] - points[j][0]
			dy := points[i][1] - points[j][1]
			kernel := 1 / (1 + dx*dx + dy*dy)
			q[i][j] = kernel
			q[j][i] = kernel
			z += 2 * kernel
		}
	}
	if z < minProbability {
		z = minProbability
	}

	grad := make([][2]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			qNorm := q[i][j] / z
			if qNorm < minProbability {
				qNorm = minProbability
			}
			mult := 4 * (exaggeration*p[i][j] - qNorm) * q[i][j]
			grad[i][0] += mult * (points[i][0] - points[j][0])
			grad[i][1] += mult * (points[i][1] - points[j][1])
		}
	}
	return grad
}

func recenter(points [][2]float64) {
	var cx, cy float64
	for _, pt := range points {
		cx += pt[0]
		cy += pt[1]
	}
	cx /= float64(len(points))
	cy /= float64(len(points))
	for i := range points {
		points[i][0] -= cx
		points[i][1] -= cy
	}
}
