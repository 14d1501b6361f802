package screening

import (
	"github.com/resumeguard/backend/pkg/plagiarism"
)

// ExperienceEntry is one job position extracted from a resume.
type ExperienceEntry struct {
	JobTitle  string `json:"job_title" jsonschema_description:"The job title, e.g. 'Software Engineer'"`
	Company   string `json:"company" jsonschema_description:"The company name, e.g. 'ABC Corp'"`
	StartDate string `json:"start_date" jsonschema_description:"The start date, e.g. 'March 2021'"`
	EndDate   string `json:"end_date,omitempty" jsonschema_description:"The end date if available, otherwise 'Present'"`
}

// EducationEntry is one education record extracted from a resume.
type EducationEntry struct {
	Degree      string `json:"degree" jsonschema_description:"The degree, e.g. 'B.Sc. in Computer Science'"`
	Institution string `json:"institution" jsonschema_description:"The institution name"`
	StartDate   string `json:"start_date,omitempty" jsonschema_description:"The start date if available"`
	EndDate     string `json:"end_date,omitempty" jsonschema_description:"The end date if available, otherwise 'Present'"`
}

// ResumeData is the structured candidate record extracted from the raw
// resume text.
type ResumeData struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
}

// ExperienceAnalysis is the career-history plausibility verdict.
type ExperienceAnalysis struct {
	Status    string   `json:"status" jsonschema_description:"Either 'valid' or 'suspicious'"`
	Reasoning string   `json:"reasoning" jsonschema_description:"Short explanation of the validation result"`
	Flags     []string `json:"flags" jsonschema_description:"List of suspicious issues found in the experience"`
}

// EducationAnalysis is the education-history plausibility verdict.
type EducationAnalysis struct {
	Suspicious bool     `json:"suspicious" jsonschema_description:"True if fraud indicators were detected"`
	Reasons    []string `json:"reasons" jsonschema_description:"Reasons why the education history is suspicious"`
}

// FraudIndicator is one finding in the final report.
type FraudIndicator struct {
	Status    string   `json:"status"`
	Reasoning string   `json:"reasoning"`
	Flags     []string `json:"flags,omitempty"`
}

// FraudReport is the final reviewer-facing report.
type FraudReport struct {
	FraudIndicators      []FraudIndicator `json:"fraud_indicators" jsonschema_description:"Fraud indicators with reasoning and flags"`
	PlagiarismSummary    string           `json:"plagiarism_summary" jsonschema_description:"Summary of plagiarism detection instead of raw matches"`
	ResumeVsJDSimilarity string           `json:"resume_vs_jd_similarity" jsonschema_description:"Conclusion about resume vs job description similarity"`
	EducationAnomalies   []string         `json:"education_anomalies,omitempty" jsonschema_description:"Any anomalies in education"`
	FinalRecommendation  string           `json:"final_recommendation" jsonschema_description:"Short final recommendation"`
}

// SignalBundle aggregates every screening signal for report synthesis.
// It is a pure data-transfer structure: all four signal fields are
// present (possibly zero-valued) before handoff. JD is nil when no job
// description was provided with the request.
type SignalBundle struct {
	Experience ExperienceAnalysis      `json:"experience_analysis"`
	Corpus     plagiarism.CorpusResult `json:"plagiarism_corpus"`
	JD         *plagiarism.JDResult    `json:"plagiarism_jd,omitempty"`
	Education  EducationAnalysis       `json:"education_analysis"`
}
