package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/resumeguard/backend/internal/config"
	"github.com/resumeguard/backend/internal/storage"
	"github.com/resumeguard/backend/internal/util"
	"github.com/resumeguard/backend/pkg/ai"
	"github.com/resumeguard/backend/pkg/index"
	"github.com/resumeguard/backend/pkg/leaselock"
	"github.com/resumeguard/backend/pkg/loader"
	"github.com/resumeguard/backend/pkg/logger"
)

const maxConcurrentUpserts = 8

// ProcessIngestMessage indexes one corpus resume: fetch from S3, extract
// and chunk its text, embed every chunk and upsert it under the stable
// chunk id. A lease per file key keeps concurrent workers from indexing
// the same file twice. Any failure returns an error so the message is
// retried or dead-lettered by the caller.
func ProcessIngestMessage(
	ctx context.Context,
	s3Client *awss3.Client,
	embedder ai.Embedder,
	store index.Store,
	locks *leaselock.Client,
	cfg config.Screening,
	msg string,
) error {
	data := new(IngestMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("invalid ingest message: %w", err)
	}

	return locks.WithLease(ctx, "ingest:"+data.FileKey, leaselock.Options{
		TTL:  5 * time.Minute,
		Wait: true,
	}, func(ctx context.Context) error {
		return ingestFile(ctx, s3Client, embedder, store, cfg, data)
	})
}

func ingestFile(
	ctx context.Context,
	s3Client *awss3.Client,
	embedder ai.Embedder,
	store index.Store,
	cfg config.Screening,
	data *IngestMsg,
) error {
	namespace := data.Namespace
	if namespace == "" {
		namespace = cfg.Namespace
	}
	sourceFile := filepath.Base(data.FileKey)

	format, err := loader.DetectFormat(sourceFile)
	if err != nil {
		return err
	}

	raw, err := storage.GetFile(ctx, s3Client, data.FileKey)
	if err != nil {
		return err
	}

	doc := loader.Document{Name: sourceFile, Format: format, Data: raw}
	chunks, err := loader.LoadAndChunk(ctx, doc, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		logger.Warn("[Ingest] Document yielded no chunks, skipping", "file", sourceFile)
		return nil
	}

	logger.Info("[Ingest] Indexing corpus resume",
		"file", sourceFile,
		"chunks", len(chunks),
		"namespace", namespace,
	)

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentUpserts)
	for _, chunk := range chunks {
		chunk := chunk
		eg.Go(func() error {
			return util.RetryErrWithContext(ectx, cfg.MaxRetries, func(ctx context.Context) error {
				vec, err := embedder.Embed(ctx, chunk.Text)
				if err != nil {
					return fmt.Errorf("chunk %d: %w", chunk.Index, err)
				}
				meta := index.Metadata{
					SourceFile: chunk.SourceFile,
					ChunkIndex: chunk.Index,
					Content:    chunk.Text,
				}
				if err := store.Upsert(ctx, chunk.ID(), vec, meta, namespace); err != nil {
					return fmt.Errorf("chunk %d: %w", chunk.Index, err)
				}
				return nil
			})
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	logger.Info("[Ingest] Corpus resume indexed", "file", sourceFile, "chunks", len(chunks))
	return nil
}
