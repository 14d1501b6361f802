// Package plagiarism implements the two similarity signals of the
// screening flow: near-duplicate detection against the corpus of
// previously seen resumes, and an explicit similarity score between a
// resume and its job description.
package plagiarism

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resumeguard/backend/internal/config"
	"github.com/resumeguard/backend/internal/util"
	"github.com/resumeguard/backend/pkg/ai"
	"github.com/resumeguard/backend/pkg/index"
	"github.com/resumeguard/backend/pkg/loader"
	"github.com/resumeguard/backend/pkg/logger"
)

const maxConcurrentChunks = 8

// CorpusResult lists every high-confidence match found across all chunks
// of a document, in chunk order. Chunks without matches contribute
// nothing; an empty document yields an empty list.
type CorpusResult struct {
	Matches []index.Match `json:"matches"`
}

// JDResult is the outcome of comparing a resume against a job
// description: the combined similarity averaged over all chunks and the
// threshold classification.
type JDResult struct {
	AverageScore float64 `json:"average_score"`
	IsMatch      bool    `json:"is_match"`
}

// Detector runs both similarity checks over the chunks of one document.
// It is safe for concurrent use; all state is request-scoped.
type Detector struct {
	embedder ai.Embedder
	store    index.Store
	cfg      config.Screening
}

// NewDetector creates a Detector over the given embedder and index store.
func NewDetector(embedder ai.Embedder, store index.Store, cfg config.Screening) *Detector {
	return &Detector{
		embedder: embedder,
		store:    store,
		cfg:      cfg,
	}
}

// CheckCorpus embeds every chunk and queries the index for its nearest
// neighbors, retaining matches at or above the corpus threshold. Chunks
// are processed concurrently and results re-assembled in chunk order.
// Any chunk failure fails the whole call; no partial result is returned.
func (d *Detector) CheckCorpus(ctx context.Context, chunks []loader.Chunk) (CorpusResult, error) {
	result := CorpusResult{Matches: []index.Match{}}
	if len(chunks) == 0 {
		return result, nil
	}

	logger.Info("[Plagiarism] Checking chunks against corpus",
		"chunks", len(chunks),
		"top_k", d.cfg.CorpusTopK,
		"threshold", d.cfg.CorpusThreshold,
	)

	perChunk := make([][]index.Match, len(chunks))

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentChunks)
	for i := range chunks {
		idx := i
		chunk := chunks[i]
		eg.Go(func() error {
			vec, err := d.embed(ectx, chunk.Text)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.Index, err)
			}

			matches, err := d.query(ectx, vec)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.Index, err)
			}

			kept := make([]index.Match, 0, len(matches))
			for _, m := range matches {
				if m.Score >= d.cfg.CorpusThreshold {
					kept = append(kept, m)
				}
			}
			perChunk[idx] = kept
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return CorpusResult{}, err
	}

	for _, kept := range perChunk {
		result.Matches = append(result.Matches, kept...)
	}

	logger.Info("[Plagiarism] Corpus check finished", "matches", len(result.Matches))
	return result, nil
}

// CheckJD scores every chunk against the job-description text with the
// explicit weighted fusion of dense cosine and asymmetric sparse overlap,
// then averages across chunks. Zero chunks yield a zero score and no
// match, never an error.
func (d *Detector) CheckJD(ctx context.Context, chunks []loader.Chunk, jdText string) (JDResult, error) {
	if len(chunks) == 0 {
		return JDResult{AverageScore: 0.0, IsMatch: false}, nil
	}

	// The JD embedding is identical for every chunk, so it is computed
	// once per request instead of once per chunk.
	jdVec, err := d.embed(ctx, jdText)
	if err != nil {
		return JDResult{}, fmt.Errorf("job description: %w", err)
	}

	scores := make([]float64, len(chunks))

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentChunks)
	for i := range chunks {
		idx := i
		chunk := chunks[i]
		eg.Go(func() error {
			vec, err := d.embed(ectx, chunk.Text)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.Index, err)
			}

			dense := cosineSimilarity(vec.Dense, jdVec.Dense)
			sparse := sparseScore(vec.Sparse, jdVec.Sparse)
			scores[idx] = combinedScore(dense, sparse)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return JDResult{}, err
	}

	var total float64
	for _, s := range scores {
		total += s
	}
	avg := total / float64(len(chunks))

	logger.Info("[Plagiarism] JD comparison finished",
		"avg_score", fmt.Sprintf("%.4f", avg),
		"threshold", d.cfg.JDThreshold,
	)

	return JDResult{
		AverageScore: avg,
		IsMatch:      avg >= d.cfg.JDThreshold,
	}, nil
}

// embed runs the hybrid embedder with the configured timeout and bounded
// retry. Embedding is idempotent, so transient faults are safe to retry.
func (d *Detector) embed(ctx context.Context, text string) (ai.HybridVector, error) {
	timeout := d.cfg.EmbedTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return util.RetryWithContext(ctx, d.cfg.MaxRetries, func(ctx context.Context) (ai.HybridVector, error) {
		rCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return d.embedder.Embed(rCtx, text)
	})
}

func (d *Detector) query(ctx context.Context, vec ai.HybridVector) ([]index.Match, error) {
	timeout := d.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return util.RetryWithContext(ctx, d.cfg.MaxRetries, func(ctx context.Context) ([]index.Match, error) {
		rCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return d.store.Query(rCtx, vec, d.cfg.CorpusTopK, d.cfg.Namespace)
	})
}
