package manifold

import (
	"math"
	"sort"

	"varstats/domain/embedding"
)

// MinClusterSize is the density threshold: a region must hold at
// least this many points (itself included) to seed a cluster.
const MinClusterSize = 10

// ClusterEngine assigns density-based cluster labels to 2-D points.
// Points outside every dense region get embedding.NoiseLabel (-1);
// that is a valid outcome, never an error. With fewer than
// MinClusterSize points every label is -1 by construction.
type ClusterEngine struct{}

// NewClusterEngine creates a new density cluster engine
func NewClusterEngine() *ClusterEngine {
	return &ClusterEngine{}
}

// Cluster labels each point with its cluster index (0, 1, ...) or -1
// for noise. Labels are parallel to the input and deterministic:
// clusters are numbered in order of first discovery over the input.
func (e *ClusterEngine) Cluster(points [][2]float64) []int {
	n := len(points)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = embedding.NoiseLabel
	}
	if n < MinClusterSize {
		return labels
	}

	eps := neighborhoodRadius(points)

	visited := make([]bool, n)
	nextCluster := 0

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := regionQuery(points, i, eps)
		if len(neighbors) < MinClusterSize {
			continue // stays noise unless a later cluster absorbs it
		}

		cluster := nextCluster
		nextCluster++
		labels[i] = cluster

		// Expand the cluster breadth-first from its core points.
		queue := neighbors
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == embedding.NoiseLabel {
				labels[j] = cluster
			}
			if visited[j] {
				continue
			}
			visited[j] = true

			reachable := regionQuery(points, j, eps)
			if len(reachable) >= MinClusterSize {
				queue = append(queue, reachable...)
			}
		}
	}

	return labels
}

// neighborhoodRadius derives the density radius from the data itself:
// the median distance to the (MinClusterSize-1)th nearest neighbor.
// Deterministic for a given point set.
func neighborhoodRadius(points [][2]float64) float64 {
	n := len(points)
	k := MinClusterSize - 1

	kthDistances := make([]float64, 0, n)
	distances := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		distances = distances[:0]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			distances = append(distances, euclidean(points[i], points[j]))
		}
		sort.Float64s(distances)
		kthDistances = append(kthDistances, distances[k-1])
	}

	sort.Float64s(kthDistances)
	mid := len(kthDistances) / 2
	if len(kthDistances)%2 == 0 {
		return (kthDistances[mid-1] + kthDistances[mid]) / 2
	}
	return kthDistances[mid]
}

func regionQuery(points [][2]float64, i int, eps float64) []int {
	var neighbors []int
	for j := range points {
		if euclidean(points[i], points[j]) <= eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

func euclidean(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}
