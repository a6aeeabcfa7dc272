package jobmatch

import (
	"context"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/logx"
	"github.com/aarifhsn/nexthire-backend/pkg/metrics"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
)

// DefaultScanLimit bounds how many active jobs one recommendation scores
const DefaultScanLimit = 1000

// Recommender turns a profile into an ordered list of jobs
type Recommender interface {
	Recommend(ctx context.Context, profile Profile) ([]job.JobDetails, error)
}

// Embedder turns text into a vector
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// HeuristicRecommender scores the most recent active jobs. Ties keep
// insertion order.
type HeuristicRecommender struct {
	jobs      job.Repository
	scanLimit int
}

// NewHeuristicRecommender creates a recommender that scans the newest
// scanLimit active jobs; zero means unbounded.
func NewHeuristicRecommender(jobs job.Repository, scanLimit int) *HeuristicRecommender {
	return &HeuristicRecommender{
		jobs:      jobs,
		scanLimit: scanLimit,
	}
}

func (r *HeuristicRecommender) Recommend(ctx context.Context, profile Profile) ([]job.JobDetails, error) {
	if profile.IsEmpty() {
		return []job.JobDetails{}, nil
	}

	active, err := r.jobs.ListActive(ctx, r.scanLimit)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load active jobs", errx.TypeInternal)
	}
	metrics.ObserveRecommendationScan(len(active))

	return Rank(profile, active), nil
}

// SemanticRecommender preselects candidates by embedding similarity and then
// ranks them with the same scoring as the heuristic.
type SemanticRecommender struct {
	embedder   Embedder
	index      job.EmbeddingIndex
	fallback   Recommender
	candidates int
}

func NewSemanticRecommender(embedder Embedder, index job.EmbeddingIndex, fallback Recommender, candidates int) *SemanticRecommender {
	if candidates <= 0 {
		candidates = 200
	}
	return &SemanticRecommender{
		embedder:   embedder,
		index:      index,
		fallback:   fallback,
		candidates: candidates,
	}
}

func (r *SemanticRecommender) Recommend(ctx context.Context, profile Profile) ([]job.JobDetails, error) {
	if profile.IsEmpty() {
		return []job.JobDetails{}, nil
	}

	vector, err := r.embedder.GenerateEmbedding(ctx, profile.Text())
	if err != nil {
		logx.Warnf("semantic recommender: embedding failed, using heuristic: %v", err)
		return r.fallback.Recommend(ctx, profile)
	}

	nearest, err := r.index.NearestActive(ctx, vector, r.candidates)
	if err != nil {
		return nil, errx.Wrap(err, "failed to query job embeddings", errx.TypeInternal)
	}
	metrics.ObserveRecommendationScan(len(nearest))

	return Rank(profile, nearest), nil
}
