package plagiarism

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/resumeguard/backend/internal/config"
	"github.com/resumeguard/backend/pkg/ai"
	"github.com/resumeguard/backend/pkg/index"
	"github.com/resumeguard/backend/pkg/loader"
)

type fakeEmbedder struct {
	vectors map[string]ai.HybridVector
	failOn  string
	calls   atomic.Int64
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (ai.HybridVector, error) {
	f.calls.Add(1)
	if f.failOn != "" && text == f.failOn {
		return ai.HybridVector{}, errors.New("embedding service unavailable")
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return ai.HybridVector{Dense: []float32{1, 0}, Sparse: map[uint32]float32{}}, nil
}

type fakeStore struct {
	queryFn func(vec ai.HybridVector) ([]index.Match, error)
	calls   atomic.Int64
}

func (f *fakeStore) Query(ctx context.Context, vec ai.HybridVector, topK int, namespace string) ([]index.Match, error) {
	f.calls.Add(1)
	if f.queryFn == nil {
		return nil, nil
	}
	return f.queryFn(vec)
}

func (f *fakeStore) Upsert(ctx context.Context, id string, vec ai.HybridVector, meta index.Metadata, namespace string) error {
	return nil
}

func testCfg() config.Screening {
	return config.Screening{
		ChunkSize:       500,
		ChunkOverlap:    50,
		CorpusTopK:      1,
		CorpusThreshold: 0.85,
		JDThreshold:     0.7,
		Namespace:       "resumes",
		MaxRetries:      1,
		EmbedTimeout:    5 * time.Second,
		QueryTimeout:    5 * time.Second,
	}
}

func chunksOf(texts ...string) []loader.Chunk {
	chunks := make([]loader.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = loader.Chunk{Text: text, Index: i, SourceFile: "resume.pdf"}
	}
	return chunks
}

func TestCheckCorpusThresholdBoundary(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  int
	}{
		{"exactly at threshold is included", 0.85, 1},
		{"just below threshold is excluded", 0.85 - 1e-9, 0},
		{"above threshold is included", 0.99, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				queryFn: func(vec ai.HybridVector) ([]index.Match, error) {
					return []index.Match{{Score: tt.score, SourceFile: "prior.pdf", ID: "prior.pdf_chunk0"}}, nil
				},
			}
			d := NewDetector(&fakeEmbedder{}, store, testCfg())

			result, err := d.CheckCorpus(context.Background(), chunksOf("chunk text"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Matches) != tt.want {
				t.Fatalf("expected %d matches, got %d", tt.want, len(result.Matches))
			}
		})
	}
}

func TestCheckCorpusEmptyChunks(t *testing.T) {
	embedder := &fakeEmbedder{}
	store := &fakeStore{}
	d := NewDetector(embedder, store, testCfg())

	result, err := d.CheckCorpus(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(result.Matches))
	}
	if result.Matches == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if embedder.calls.Load() != 0 || store.calls.Load() != 0 {
		t.Fatal("expected no external calls for an empty document")
	}
}

func TestCheckCorpusPreservesChunkOrder(t *testing.T) {
	// Each chunk's vector carries its position in Dense[0]; the store maps
	// it back to a per-chunk match. Concurrent completion order must not
	// leak into the result.
	vectors := map[string]ai.HybridVector{}
	texts := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i, text := range texts {
		vectors[text] = ai.HybridVector{Dense: []float32{float32(i)}, Sparse: map[uint32]float32{}}
	}
	store := &fakeStore{
		queryFn: func(vec ai.HybridVector) ([]index.Match, error) {
			id := texts[int(vec.Dense[0])]
			return []index.Match{{Score: 0.9, SourceFile: id + ".pdf", ID: id}}, nil
		},
	}
	d := NewDetector(&fakeEmbedder{vectors: vectors}, store, testCfg())

	result, err := d.CheckCorpus(context.Background(), chunksOf(texts...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, len(result.Matches))
	for i, m := range result.Matches {
		got[i] = m.ID
	}
	if !reflect.DeepEqual(got, texts) {
		t.Fatalf("matches out of order: %v", got)
	}
}

func TestCheckCorpusFailFast(t *testing.T) {
	embedder := &fakeEmbedder{failOn: "poison"}
	store := &fakeStore{
		queryFn: func(vec ai.HybridVector) ([]index.Match, error) {
			return []index.Match{{Score: 0.95, SourceFile: "prior.pdf", ID: "m"}}, nil
		},
	}
	d := NewDetector(embedder, store, testCfg())

	result, err := d.CheckCorpus(context.Background(), chunksOf("fine", "poison", "also fine"))
	if err == nil {
		t.Fatal("expected error when embedding fails")
	}
	if len(result.Matches) != 0 {
		t.Fatalf("expected no partial result, got %d matches", len(result.Matches))
	}
}

func TestCheckCorpusQueryFailureAborts(t *testing.T) {
	store := &fakeStore{
		queryFn: func(vec ai.HybridVector) ([]index.Match, error) {
			return nil, errors.New("index connection reset")
		},
	}
	d := NewDetector(&fakeEmbedder{}, store, testCfg())

	if _, err := d.CheckCorpus(context.Background(), chunksOf("chunk")); err == nil {
		t.Fatal("expected error when query fails")
	}
}

func TestCheckJDConcreteFormula(t *testing.T) {
	// Resume sparse {1:0.5, 2:0.3}, JD sparse {2:0.4, 3:0.1}: common index
	// {2}, sparse = (0.3*0.4)/(0.5+0.3) = 0.15. Dense pair at cosine 0.9.
	// combined = 0.3*0.9 + 0.7*0.15 = 0.375.
	sin := float32(math.Sqrt(1 - 0.81))
	embedder := &fakeEmbedder{vectors: map[string]ai.HybridVector{
		"resume chunk": {
			Dense:  []float32{1, 0},
			Sparse: map[uint32]float32{1: 0.5, 2: 0.3},
		},
		"the jd": {
			Dense:  []float32{0.9, sin},
			Sparse: map[uint32]float32{2: 0.4, 3: 0.1},
		},
	}}
	d := NewDetector(embedder, &fakeStore{}, testCfg())

	result, err := d.CheckJD(context.Background(), chunksOf("resume chunk"), "the jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.AverageScore-0.375) > 1e-6 {
		t.Fatalf("expected average score 0.375, got %v", result.AverageScore)
	}
	if result.IsMatch {
		t.Fatal("expected no match below threshold 0.7")
	}
}

func TestCheckJDEmptyChunks(t *testing.T) {
	d := NewDetector(&fakeEmbedder{}, &fakeStore{}, testCfg())

	result, err := d.CheckJD(context.Background(), nil, "some jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AverageScore != 0.0 {
		t.Fatalf("expected average score 0.0, got %v", result.AverageScore)
	}
	if result.IsMatch {
		t.Fatal("expected no match for empty document")
	}
}

func TestCheckJDClassification(t *testing.T) {
	// Identical dense vectors and identical single-entry sparse vectors:
	// dense ~= 1.0, sparse = (0.5*0.5)/0.5 = 0.5, combined ~= 0.65.
	vec := ai.HybridVector{Dense: []float32{1, 0}, Sparse: map[uint32]float32{7: 0.5}}
	embedder := &fakeEmbedder{vectors: map[string]ai.HybridVector{
		"chunk": vec,
		"jd":    vec,
	}}

	tests := []struct {
		name      string
		threshold float64
		wantMatch bool
	}{
		{"below score classifies as match", 0.6, true},
		{"above score classifies as no match", 0.66, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testCfg()
			cfg.JDThreshold = tt.threshold
			d := NewDetector(embedder, &fakeStore{}, cfg)

			result, err := d.CheckJD(context.Background(), chunksOf("chunk"), "jd")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(result.AverageScore-0.65) > 1e-6 {
				t.Fatalf("expected average score 0.65, got %v", result.AverageScore)
			}
			if result.IsMatch != tt.wantMatch {
				t.Fatalf("IsMatch = %v, want %v", result.IsMatch, tt.wantMatch)
			}
		})
	}
}

func TestCheckJDEmbeddingFailureAborts(t *testing.T) {
	embedder := &fakeEmbedder{failOn: "the jd"}
	d := NewDetector(embedder, &fakeStore{}, testCfg())

	if _, err := d.CheckJD(context.Background(), chunksOf("chunk"), "the jd"); err == nil {
		t.Fatal("expected error when JD embedding fails")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"zero vector guarded", []float32{0, 0}, []float32{1, 1}, 0.0},
		{"both zero guarded", []float32{0, 0}, []float32{0, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Fatalf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSparseScoreNoCommonIndices(t *testing.T) {
	got := sparseScore(map[uint32]float32{1: 0.5}, map[uint32]float32{2: 0.5})
	if got != 0 {
		t.Fatalf("expected 0 for disjoint vectors, got %v", got)
	}
}

func TestCombinedScoreMonotonicity(t *testing.T) {
	// Holding one side fixed, increasing the other must increase the
	// fused score.
	base := combinedScore(0.5, 0.2)
	if combinedScore(0.5, 0.3) <= base {
		t.Fatal("expected combined score to grow with sparse similarity")
	}
	if combinedScore(0.6, 0.2) <= base {
		t.Fatal("expected combined score to grow with dense similarity")
	}

	// Sparse gains outweigh equal dense gains.
	sparseGain := combinedScore(0.5, 0.3) - base
	denseGain := combinedScore(0.6, 0.2) - base
	if sparseGain <= denseGain {
		t.Fatal("expected sparse overlap to be weighted more heavily than dense")
	}
}
