package config

import (
	"time"

	"github.com/resumeguard/backend/internal/util"
)

// Screening holds the tuning knobs of the plagiarism pipeline.
type Screening struct {
	ChunkSize       int
	ChunkOverlap    int
	CorpusTopK      int
	CorpusThreshold float64
	JDThreshold     float64
	Namespace       string
	MaxRetries      int
	EmbedTimeout    time.Duration
	QueryTimeout    time.Duration
	ParserLenient   bool
}

// Config is the full application configuration, built once at startup
// and passed to component constructors.
type Config struct {
	Port        string
	Debug       bool
	DatabaseURL string

	Screening Screening
}

// Load reads configuration from the environment, applying defaults for
// every unset key.
func Load() Config {
	return Config{
		Port:        util.GetEnvString("PORT", "8080"),
		Debug:       util.GetEnvBool("DEBUG", false),
		DatabaseURL: util.GetEnv("DATABASE_URL"),

		Screening: Screening{
			ChunkSize:       util.GetEnvInt("CHUNK_SIZE", 500),
			ChunkOverlap:    util.GetEnvInt("CHUNK_OVERLAP", 50),
			CorpusTopK:      util.GetEnvInt("CORPUS_TOP_K", 1),
			CorpusThreshold: util.GetEnvNumeric("CORPUS_THRESHOLD", 0.85),
			JDThreshold:     util.GetEnvNumeric("JD_THRESHOLD", 0.7),
			Namespace:       util.GetEnvString("INDEX_NAMESPACE", "resumes"),
			MaxRetries:      util.GetEnvInt("MAX_RETRIES", 2),
			EmbedTimeout:    time.Duration(util.GetEnvInt("EMBED_TIMEOUT_SECONDS", 30)) * time.Second,
			QueryTimeout:    time.Duration(util.GetEnvInt("QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
			ParserLenient:   util.GetEnvBool("PARSER_LENIENT", false),
		},
	}
}
