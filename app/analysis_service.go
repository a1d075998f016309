// Package app wires the read-only query capability to the analysis
// engines. Each method fetches once, validates, analyzes, and returns
// plain JSON-serializable data; nothing is retained between calls.
package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"varstats/adapters/stats/engine"
	"varstats/adapters/stats/manifold"
	"varstats/domain/core"
	"varstats/domain/embedding"
	"varstats/domain/sample"
	"varstats/internal"
	"varstats/ports"
)

// EmbeddingRecordGuideline is the advisory input cap for the
// projection pipeline. Dimensionality reduction cost grows
// super-linearly, so callers should keep queries under this many rows;
// larger input is still processed in full, never truncated.
const EmbeddingRecordGuideline = 500

// VarianceReport bundles ANOVA with its Tukey post-hoc over one
// fetched dataset.
type VarianceReport struct {
	Anova *engine.ANOVAResult      `json:"anova"`
	Tukey []engine.TukeyComparison `json:"tukey"`
}

// AnalysisService orchestrates fetch, extraction and the five engines.
type AnalysisService struct {
	queries   ports.QueryExecutor
	extractor *engine.GroupExtractor
	anova     *engine.ANOVAEngine
	tukey     *engine.TukeyEngine
	projector *manifold.Projector
	clusters  *manifold.ClusterEngine
	centroid  *manifold.CentroidEngine
	log       *internal.Logger
}

// NewAnalysisService creates an analysis service over a query executor
func NewAnalysisService(queries ports.QueryExecutor, logger *internal.Logger) *AnalysisService {
	return &AnalysisService{
		queries:   queries,
		extractor: engine.NewGroupExtractor(),
		anova:     engine.NewANOVAEngine(),
		tukey:     engine.NewTukeyEngine(),
		projector: manifold.NewProjector(),
		clusters:  manifold.NewClusterEngine(),
		centroid:  manifold.NewCentroidEngine(),
		log:       logger.With("analysis"),
	}
}

// Anova fetches (label, value) rows and runs a one-way ANOVA over the
// categories that retain strictly more than minSampleSize samples.
func (s *AnalysisService) Anova(ctx context.Context, query string, minSampleSize int) (*engine.ANOVAResult, error) {
	id := core.NewAnalysisID()

	dataset, err := s.fetchGrouped(ctx, query, minSampleSize)
	if err != nil {
		return nil, err
	}

	result, err := s.anova.Analyze(dataset)
	if err != nil {
		return nil, err
	}

	s.log.Info("analysis=%s anova groups=%d n=%d F=%v p=%v",
		id, dataset.GroupCount(), dataset.TotalSamples(), result.FStatistic, result.PValue)
	return result, nil
}

// TukeyHSD fetches (label, value) rows and returns the pairwise
// comparisons that reject equal means at the family-wise 0.05 level.
func (s *AnalysisService) TukeyHSD(ctx context.Context, query string, minSampleSize int) ([]engine.TukeyComparison, error) {
	id := core.NewAnalysisID()

	dataset, err := s.fetchGrouped(ctx, query, minSampleSize)
	if err != nil {
		return nil, err
	}

	comparisons, err := s.tukey.Analyze(dataset)
	if err != nil {
		return nil, err
	}

	s.log.Info("analysis=%s tukey groups=%d rejected=%d", id, dataset.GroupCount(), len(comparisons))
	return comparisons, nil
}

// VarianceReport runs ANOVA and Tukey HSD concurrently over a single
// fetched dataset.
func (s *AnalysisService) VarianceReport(ctx context.Context, query string, minSampleSize int) (*VarianceReport, error) {
	dataset, err := s.fetchGrouped(ctx, query, minSampleSize)
	if err != nil {
		return nil, err
	}

	report := &VarianceReport{}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.anova.Analyze(dataset)
		if err != nil {
			return err
		}
		report.Anova = result
		return nil
	})
	g.Go(func() error {
		comparisons, err := s.tukey.Analyze(dataset)
		if err != nil {
			return err
		}
		report.Tukey = comparisons
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

// EmbeddingMap fetches (id, vector) rows, projects the vectors to 2-D
// and labels the projected points by density. The result's four
// arrays are parallel over the input order; label -1 marks noise.
func (s *AnalysisService) EmbeddingMap(ctx context.Context, query string) (*embedding.ProjectionResult, error) {
	id := core.NewAnalysisID()

	rows, err := s.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	records, err := toEmbeddingRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) > EmbeddingRecordGuideline {
		s.log.Warn("analysis=%s embedding map over %d records exceeds the %d-record guideline; projection cost grows super-linearly",
			id, len(records), EmbeddingRecordGuideline)
	}

	points, err := s.projector.Project(records)
	if err != nil {
		return nil, err
	}
	labels := s.clusters.Cluster(points)

	result := &embedding.ProjectionResult{
		IDs:    make([]string, len(records)),
		XAxis:  make([]float64, len(records)),
		YAxis:  make([]float64, len(records)),
		Labels: labels,
	}
	for i, r := range records {
		result.IDs[i] = r.ID
		result.XAxis[i] = points[i][0]
		result.YAxis[i] = points[i][1]
	}

	s.log.Info("analysis=%s embedding map records=%d", id, len(records))
	return result, nil
}

// Centroid fetches 1-tuples of (vector) and returns their
// coordinate-wise mean.
func (s *AnalysisService) Centroid(ctx context.Context, query string) ([]float64, error) {
	id := core.NewAnalysisID()

	rows, err := s.fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	records, err := toVectorRecords(rows)
	if err != nil {
		return nil, err
	}

	centroid, err := s.centroid.Compute(records)
	if err != nil {
		return nil, err
	}

	s.log.Info("analysis=%s centroid records=%d dim=%d", id, len(records), len(centroid))
	return centroid, nil
}

func (s *AnalysisService) fetchGrouped(ctx context.Context, query string, minSampleSize int) (sample.GroupedDataset, error) {
	rows, err := s.fetch(ctx, query)
	if err != nil {
		return sample.GroupedDataset{}, err
	}
	return s.extractor.Extract(rows, minSampleSize)
}

// fetch runs the upstream query, unifying fetch failures behind the
// UpstreamQuery error kind so they can never masquerade as results.
func (s *AnalysisService) fetch(ctx context.Context, query string) ([]ports.Row, error) {
	rows, err := s.queries.ReadOnlyQuery(ctx, query)
	if err != nil {
		return nil, core.NewUpstreamQueryError(err)
	}
	return rows, nil
}
