package jobmatch

import (
	"context"
	"fmt"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/pkg/logx"
	"github.com/aarifhsn/nexthire-backend/pkg/taskq"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
)

// TaskEmbedJob refreshes the stored vector of one job
const TaskEmbedJob = "job.embed"

// EmbedJobPayload is the payload of a TaskEmbedJob task
type EmbedJobPayload struct {
	JobID string `json:"job_id"`
}

// Indexer keeps job embeddings in sync with job content
type Indexer struct {
	jobs     job.Repository
	index    job.EmbeddingIndex
	embedder Embedder
}

func NewIndexer(jobs job.Repository, index job.EmbeddingIndex, embedder Embedder) *Indexer {
	return &Indexer{
		jobs:     jobs,
		index:    index,
		embedder: embedder,
	}
}

// HandleTask is the taskq handler for TaskEmbedJob
func (i *Indexer) HandleTask(ctx context.Context, task taskq.Task) error {
	var payload EmbedJobPayload
	if err := task.Decode(&payload); err != nil {
		return err
	}
	return i.IndexJob(ctx, kernel.NewJobID(payload.JobID))
}

// IndexJob embeds the job's text and stores the vector
func (i *Indexer) IndexJob(ctx context.Context, id kernel.JobID) error {
	j, err := i.jobs.GetByID(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			logx.Infof("job %s deleted before indexing, skipping", id)
			return nil
		}
		return fmt.Errorf("load job %s: %w", id, err)
	}

	vector, err := i.embedder.GenerateEmbedding(ctx, j.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embed job %s: %w", id, err)
	}

	if err := i.index.SetEmbedding(ctx, id, vector); err != nil {
		return fmt.Errorf("store embedding for job %s: %w", id, err)
	}
	return nil
}
