// Package screening implements the LLM-backed screening collaborators:
// structured resume extraction, experience and education plausibility
// analysis, and synthesis of the final fraud report.
package screening

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/resumeguard/backend/internal/util"
	"github.com/resumeguard/backend/pkg/ai"
	"github.com/resumeguard/backend/pkg/fault"
	"github.com/resumeguard/backend/pkg/logger"
)

// FresherReasoning is the verdict for candidates without any work
// experience. No completion call is made for them.
const FresherReasoning = "Candidate appears to be a fresher with no prior work experience."

// Screener runs the structured-completion steps of the screening flow.
// When lenient is set, a failed resume extraction degrades to an empty
// candidate record instead of failing the request.
type Screener struct {
	completion ai.CompletionClient
	maxRetries int
	lenient    bool
}

// NewScreener creates a Screener over the given completion client.
func NewScreener(completion ai.CompletionClient, maxRetries int, lenient bool) *Screener {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Screener{
		completion: completion,
		maxRetries: maxRetries,
		lenient:    lenient,
	}
}

// ParseResume extracts the structured candidate record from raw resume
// text.
func (s *Screener) ParseResume(ctx context.Context, text string) (ResumeData, error) {
	var data ResumeData
	prompt := fmt.Sprintf(ParsePrompt, text)

	err := util.RetryErrWithContext(ctx, s.maxRetries, func(ctx context.Context) error {
		return s.completion.GenerateCompletionWithFormat(
			ctx, "parse_resume", "Extract structured candidate data from a resume.", prompt, &data,
		)
	})
	if err != nil {
		if s.lenient {
			logger.Warn("[Screening] Resume extraction failed, continuing with empty record", "error", err)
			return emptyResumeData(), nil
		}
		return ResumeData{}, fault.New(fault.KindCompletionFailure, "resume extraction failed", err)
	}

	normalizeResumeData(&data)
	logger.Debug("[Screening] Resume parsed",
		"skills", len(data.Skills),
		"education", len(data.Education),
		"experience", len(data.Experience),
	)
	return data, nil
}

// AnalyzeExperience checks the extracted work history for plausibility.
// Candidates without any experience entries are classified as freshers
// without a completion call.
func (s *Screener) AnalyzeExperience(ctx context.Context, data ResumeData) (ExperienceAnalysis, error) {
	if len(data.Experience) == 0 {
		return ExperienceAnalysis{
			Status:    "no_experience",
			Reasoning: FresherReasoning,
			Flags:     []string{},
		}, nil
	}

	payload, err := json.MarshalIndent(data.Experience, "", "  ")
	if err != nil {
		return ExperienceAnalysis{}, fault.New(fault.KindCompletionFailure, "experience analysis failed", err)
	}

	var analysis ExperienceAnalysis
	prompt := fmt.Sprintf(ExperiencePrompt, string(payload))

	err = util.RetryErrWithContext(ctx, s.maxRetries, func(ctx context.Context) error {
		return s.completion.GenerateCompletionWithFormat(
			ctx, "analyze_experience", "Check work experience entries for plausibility.", prompt, &analysis,
		)
	})
	if err != nil {
		return ExperienceAnalysis{}, fault.New(fault.KindCompletionFailure, "experience analysis failed", err)
	}
	if analysis.Flags == nil {
		analysis.Flags = []string{}
	}
	return analysis, nil
}

// ValidateEducation checks the extracted education history for fraud
// indicators.
func (s *Screener) ValidateEducation(ctx context.Context, data ResumeData) (EducationAnalysis, error) {
	if len(data.Education) == 0 {
		return EducationAnalysis{Suspicious: false, Reasons: []string{}}, nil
	}

	payload, err := json.MarshalIndent(data.Education, "", "  ")
	if err != nil {
		return EducationAnalysis{}, fault.New(fault.KindCompletionFailure, "education validation failed", err)
	}

	var analysis EducationAnalysis
	prompt := fmt.Sprintf(EducationPrompt, string(payload))

	err = util.RetryErrWithContext(ctx, s.maxRetries, func(ctx context.Context) error {
		return s.completion.GenerateCompletionWithFormat(
			ctx, "validate_education", "Check education entries for fraud indicators.", prompt, &analysis,
		)
	})
	if err != nil {
		return EducationAnalysis{}, fault.New(fault.KindCompletionFailure, "education validation failed", err)
	}
	if analysis.Reasons == nil {
		analysis.Reasons = []string{}
	}
	return analysis, nil
}

// GenerateReport synthesizes the reviewer-facing report from the full
// signal bundle. The bundle is rendered verbatim; the report content is
// entirely the model's synthesis.
func (s *Screener) GenerateReport(ctx context.Context, bundle SignalBundle) (FraudReport, error) {
	payload, err := json.MarshalIndent(renderBundle(bundle), "", "  ")
	if err != nil {
		return FraudReport{}, fault.New(fault.KindCompletionFailure, "report generation failed", err)
	}

	var report FraudReport
	prompt := fmt.Sprintf(ReportPrompt, string(payload))

	err = util.RetryErrWithContext(ctx, s.maxRetries, func(ctx context.Context) error {
		return s.completion.GenerateCompletionWithFormat(
			ctx, "generate_report", "Write the final screening report from aggregated signals.", prompt, &report,
		)
	})
	if err != nil {
		return FraudReport{}, fault.New(fault.KindCompletionFailure, "report generation failed", err)
	}
	return report, nil
}

// renderBundle prepares the bundle for prompting. The absence of a job
// description is spelled out so the model does not invent a score.
func renderBundle(bundle SignalBundle) map[string]any {
	rendered := map[string]any{
		"experience_analysis": bundle.Experience,
		"plagiarism_corpus":   bundle.Corpus,
		"education_analysis":  bundle.Education,
	}
	if bundle.JD != nil {
		rendered["plagiarism_jd"] = bundle.JD
	} else {
		rendered["plagiarism_jd"] = "No job description provided."
	}
	return rendered
}

func emptyResumeData() ResumeData {
	return ResumeData{
		Skills:     []string{},
		Education:  []EducationEntry{},
		Experience: []ExperienceEntry{},
	}
}

// normalizeResumeData trims stray whitespace and replaces nil slices so
// downstream JSON always carries arrays.
func normalizeResumeData(data *ResumeData) {
	data.Name = strings.TrimSpace(data.Name)
	data.Email = strings.TrimSpace(data.Email)
	data.Phone = strings.TrimSpace(data.Phone)
	if data.Skills == nil {
		data.Skills = []string{}
	}
	if data.Education == nil {
		data.Education = []EducationEntry{}
	}
	if data.Experience == nil {
		data.Experience = []ExperienceEntry{}
	}
}
