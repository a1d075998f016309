package manifold

import (
	"testing"

	"varstats/domain/embedding"
)

// blob scatters count points tightly around a center so every member
// is density-reachable from every other.
func blob(cx, cy float64, count int) [][2]float64 {
	points := make([][2]float64, count)
	for i := range points {
		points[i] = [2]float64{cx + float64(i%4)*0.1, cy + float64(i/4)*0.1}
	}
	return points
}

func TestCluster_FewerThanMinIsAllNoise(t *testing.T) {
	e := NewClusterEngine()

	points := blob(0, 0, MinClusterSize-1)
	labels := e.Cluster(points)

	if len(labels) != len(points) {
		t.Fatalf("labels not parallel to input: %d vs %d", len(labels), len(points))
	}
	for i, l := range labels {
		if l != embedding.NoiseLabel {
			t.Fatalf("point %d: expected noise label, got %d", i, l)
		}
	}
}

func TestCluster_EmptyInputYieldsEmptyLabels(t *testing.T) {
	e := NewClusterEngine()

	if labels := e.Cluster(nil); len(labels) != 0 {
		t.Fatalf("expected no labels for no points, got %d", len(labels))
	}
}

func TestCluster_TwoSeparatedBlobsFormTwoClusters(t *testing.T) {
	e := NewClusterEngine()

	points := append(blob(0, 0, 15), blob(100, 100, 15)...)
	labels := e.Cluster(points)

	// First blob discovered first, so it takes cluster 0.
	for i := 0; i < 15; i++ {
		if labels[i] != 0 {
			t.Fatalf("point %d: expected cluster 0, got %d", i, labels[i])
		}
	}
	for i := 15; i < 30; i++ {
		if labels[i] != 1 {
			t.Fatalf("point %d: expected cluster 1, got %d", i, labels[i])
		}
	}
}

func TestCluster_FarOutlierStaysNoise(t *testing.T) {
	e := NewClusterEngine()

	points := append(blob(0, 0, 15), blob(100, 100, 15)...)
	points = append(points, [2]float64{5000, 5000})

	labels := e.Cluster(points)
	if labels[len(labels)-1] != embedding.NoiseLabel {
		t.Fatalf("expected outlier to stay noise, got %d", labels[len(labels)-1])
	}
}

func TestCluster_DeterministicAcrossRuns(t *testing.T) {
	e := NewClusterEngine()

	points := append(blob(0, 0, 12), blob(50, 50, 12)...)
	first := e.Cluster(points)
	second := e.Cluster(points)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d labeled %d then %d", i, first[i], second[i])
		}
	}
}
