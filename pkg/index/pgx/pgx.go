// Package pgx implements the similarity index on Postgres with pgvector.
// Dense embeddings live in a vector column, sparse lexical vectors in a
// sparsevec column; hybrid fusion is an equal-weight sum of the two
// cosine similarities computed store-side.
package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/resumeguard/backend/pkg/ai"
	"github.com/resumeguard/backend/pkg/fault"
	"github.com/resumeguard/backend/pkg/index"
	"github.com/resumeguard/backend/pkg/logger"
)

// sparseDims matches the o200k_base vocabulary size used by the lexical
// encoder and the sparsevec column in the schema.
const sparseDims = 201088

// ChunkIndex is the pgvector-backed similarity index.
type ChunkIndex struct {
	conn *pgxpool.Pool
}

// NewChunkIndex connects to the database and verifies the connection.
// A connection failure here is fatal for the screening flow: there is no
// query without a working index.
func NewChunkIndex(ctx context.Context, databaseURL string) (*ChunkIndex, error) {
	pgxCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fault.New(fault.KindIndexUnavailable, "invalid database url", err)
	}
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	conn, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fault.New(fault.KindIndexUnavailable, "failed to create connection pool", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fault.New(fault.KindIndexUnavailable, "failed to reach similarity index", err)
	}

	return &ChunkIndex{conn: conn}, nil
}

// NewChunkIndexFromPool wraps an existing pool, used by the worker which
// shares one pool across components.
func NewChunkIndexFromPool(conn *pgxpool.Pool) *ChunkIndex {
	return &ChunkIndex{conn: conn}
}

// Close releases the underlying connection pool.
func (s *ChunkIndex) Close() {
	s.conn.Close()
}

// Query returns the topK nearest neighbors of vec within namespace,
// ordered by descending hybrid score. Ties are broken by id so result
// order is deterministic.
func (s *ChunkIndex) Query(
	ctx context.Context,
	vec ai.HybridVector,
	topK int,
	namespace string,
) ([]index.Match, error) {
	if topK <= 0 {
		topK = 1
	}

	rows, err := s.conn.Query(ctx, `
		SELECT public_id, source_file,
			(1 - (embedding <=> $1)) * 0.5 + (1 - (sparse_embedding <=> $2)) * 0.5 AS score
		FROM resume_chunks
		WHERE namespace = $3
		ORDER BY score DESC, public_id ASC
		LIMIT $4`,
		pgvector.NewVector(vec.Dense),
		sparseVec(vec.Sparse),
		namespace,
		topK,
	)
	if err != nil {
		return nil, fault.New(fault.KindIndexQueryFailure, "similarity query failed", err)
	}
	defer rows.Close()

	matches := make([]index.Match, 0, topK)
	for rows.Next() {
		var m index.Match
		if err := rows.Scan(&m.ID, &m.SourceFile, &m.Score); err != nil {
			return nil, fault.New(fault.KindIndexQueryFailure, "failed to scan match", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.New(fault.KindIndexQueryFailure, "similarity query failed", err)
	}

	logger.Debug("[Index] Query finished", "namespace", namespace, "top_k", topK, "matches", len(matches))
	return matches, nil
}

// Upsert stores or replaces one chunk vector with its provenance.
func (s *ChunkIndex) Upsert(
	ctx context.Context,
	id string,
	vec ai.HybridVector,
	meta index.Metadata,
	namespace string,
) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO resume_chunks
			(public_id, namespace, source_file, chunk_index, content, embedding, sparse_embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (namespace, public_id) DO UPDATE SET
			source_file = EXCLUDED.source_file,
			chunk_index = EXCLUDED.chunk_index,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			sparse_embedding = EXCLUDED.sparse_embedding`,
		id,
		namespace,
		meta.SourceFile,
		meta.ChunkIndex,
		meta.Content,
		pgvector.NewVector(vec.Dense),
		sparseVec(vec.Sparse),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert chunk %s: %w", id, err)
	}
	return nil
}

func sparseVec(sparse map[uint32]float32) pgvector.SparseVector {
	elements := make(map[int32]float32, len(sparse))
	for idx, weight := range sparse {
		elements[int32(idx)] = weight
	}
	return pgvector.NewSparseVectorFromMap(elements, sparseDims)
}
