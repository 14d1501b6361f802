package screening

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/resumeguard/backend/internal/config"
	"github.com/resumeguard/backend/pkg/loader"
	"github.com/resumeguard/backend/pkg/logger"
	"github.com/resumeguard/backend/pkg/plagiarism"
)

// Analysis is the complete outcome of screening one resume.
type Analysis struct {
	Resume  ResumeData   `json:"resume_data"`
	Signals SignalBundle `json:"signals"`
	Report  FraudReport  `json:"report"`
}

// Service orchestrates the full screening flow for one uploaded resume:
// extraction, chunking, the plausibility analyses, both plagiarism
// checks, and report synthesis.
type Service struct {
	screener *Screener
	detector *plagiarism.Detector
	cfg      config.Screening
}

// NewService wires the screening collaborators together.
func NewService(screener *Screener, detector *plagiarism.Detector, cfg config.Screening) *Service {
	return &Service{
		screener: screener,
		detector: detector,
		cfg:      cfg,
	}
}

// Analyze runs the whole screening pipeline over one document. The job
// description is optional; when empty, the JD similarity signal is
// omitted from the bundle. Any failing step fails the whole call.
func (s *Service) Analyze(ctx context.Context, doc loader.Document, jdText string) (Analysis, error) {
	text, err := loader.Extract(ctx, doc)
	if err != nil {
		return Analysis{}, err
	}

	chunks, err := loader.Split(text, doc.Name, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if err != nil {
		return Analysis{}, err
	}

	logger.Info("[Screening] Analyzing resume",
		"file", doc.Name,
		"format", doc.Format,
		"chunks", len(chunks),
		"jd_provided", jdText != "",
	)

	resume, err := s.screener.ParseResume(ctx, text)
	if err != nil {
		return Analysis{}, err
	}

	// The four signals are independent once the structured record exists.
	var bundle SignalBundle
	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		analysis, err := s.screener.AnalyzeExperience(ectx, resume)
		if err != nil {
			return fmt.Errorf("experience analysis: %w", err)
		}
		bundle.Experience = analysis
		return nil
	})
	eg.Go(func() error {
		analysis, err := s.screener.ValidateEducation(ectx, resume)
		if err != nil {
			return fmt.Errorf("education validation: %w", err)
		}
		bundle.Education = analysis
		return nil
	})
	eg.Go(func() error {
		result, err := s.detector.CheckCorpus(ectx, chunks)
		if err != nil {
			return fmt.Errorf("corpus check: %w", err)
		}
		bundle.Corpus = result
		return nil
	})
	if jdText != "" {
		eg.Go(func() error {
			result, err := s.detector.CheckJD(ectx, chunks, jdText)
			if err != nil {
				return fmt.Errorf("jd comparison: %w", err)
			}
			bundle.JD = &result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Analysis{}, err
	}

	report, err := s.screener.GenerateReport(ctx, bundle)
	if err != nil {
		return Analysis{}, err
	}

	logger.Info("[Screening] Analysis finished", "file", doc.Name)
	return Analysis{
		Resume:  resume,
		Signals: bundle,
		Report:  report,
	}, nil
}
