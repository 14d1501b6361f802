package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Screening.ChunkSize != 500 {
		t.Fatalf("expected default chunk size 500, got %d", cfg.Screening.ChunkSize)
	}
	if cfg.Screening.ChunkOverlap != 50 {
		t.Fatalf("expected default chunk overlap 50, got %d", cfg.Screening.ChunkOverlap)
	}
	if cfg.Screening.CorpusTopK != 1 {
		t.Fatalf("expected default corpus top_k 1, got %d", cfg.Screening.CorpusTopK)
	}
	if cfg.Screening.CorpusThreshold != 0.85 {
		t.Fatalf("expected default corpus threshold 0.85, got %v", cfg.Screening.CorpusThreshold)
	}
	if cfg.Screening.JDThreshold != 0.7 {
		t.Fatalf("expected default jd threshold 0.7, got %v", cfg.Screening.JDThreshold)
	}
	if cfg.Screening.Namespace != "resumes" {
		t.Fatalf("expected default namespace resumes, got %q", cfg.Screening.Namespace)
	}
	if cfg.Screening.ParserLenient {
		t.Fatal("expected strict parser by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "200")
	t.Setenv("CORPUS_THRESHOLD", "0.9")
	t.Setenv("INDEX_NAMESPACE", "cv-pool")
	t.Setenv("PARSER_LENIENT", "true")

	cfg := Load()

	if cfg.Screening.ChunkSize != 200 {
		t.Fatalf("expected chunk size 200, got %d", cfg.Screening.ChunkSize)
	}
	if cfg.Screening.CorpusThreshold != 0.9 {
		t.Fatalf("expected corpus threshold 0.9, got %v", cfg.Screening.CorpusThreshold)
	}
	if cfg.Screening.Namespace != "cv-pool" {
		t.Fatalf("expected namespace cv-pool, got %q", cfg.Screening.Namespace)
	}
	if !cfg.Screening.ParserLenient {
		t.Fatal("expected lenient parser")
	}
}

func TestLoadIgnoresGarbageNumbers(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg := Load()
	if cfg.Screening.ChunkSize != 500 {
		t.Fatalf("expected fallback to 500, got %d", cfg.Screening.ChunkSize)
	}
}
