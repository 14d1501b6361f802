package screening

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/resumeguard/backend/pkg/ai"
	"github.com/resumeguard/backend/pkg/fault"
)

type fakeCompletion struct {
	mu      sync.Mutex
	calls   []string
	prompts map[string]string
	respond func(name string, out any) error
}

func newFakeCompletion(respond func(name string, out any) error) *fakeCompletion {
	return &fakeCompletion{
		prompts: map[string]string{},
		respond: respond,
	}
}

func (f *fakeCompletion) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", nil
}

func (f *fakeCompletion) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.prompts[name] = prompt
	f.mu.Unlock()
	if f.respond == nil {
		return nil
	}
	return f.respond(name, out)
}

func (f *fakeCompletion) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func respondJSON(payloads map[string]string) func(name string, out any) error {
	return func(name string, out any) error {
		payload, ok := payloads[name]
		if !ok {
			return errors.New("unexpected completion call: " + name)
		}
		return json.Unmarshal([]byte(payload), out)
	}
}

func TestParseResumeStrictFailure(t *testing.T) {
	completion := newFakeCompletion(func(name string, out any) error {
		return errors.New("model overloaded")
	})
	s := NewScreener(completion, 1, false)

	_, err := s.ParseResume(context.Background(), "some resume text")
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
	if fault.KindOf(err) != fault.KindCompletionFailure {
		t.Fatalf("expected completion_failure, got %q", fault.KindOf(err))
	}
}

func TestParseResumeLenientFallback(t *testing.T) {
	completion := newFakeCompletion(func(name string, out any) error {
		return errors.New("model overloaded")
	})
	s := NewScreener(completion, 1, true)

	data, err := s.ParseResume(context.Background(), "some resume text")
	if err != nil {
		t.Fatalf("expected lenient mode to swallow the failure, got %v", err)
	}
	if data.Skills == nil || data.Education == nil || data.Experience == nil {
		t.Fatal("expected empty slices, not nil")
	}
	if len(data.Skills) != 0 || len(data.Education) != 0 || len(data.Experience) != 0 {
		t.Fatal("expected an empty candidate record")
	}
}

func TestParseResumeNormalizes(t *testing.T) {
	completion := newFakeCompletion(respondJSON(map[string]string{
		"parse_resume": `{"name": "  Jane Doe ", "email": "jane@example.com", "phone": ""}`,
	}))
	s := NewScreener(completion, 1, false)

	data, err := s.ParseResume(context.Background(), "some resume text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Name != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", data.Name)
	}
	if data.Skills == nil || data.Education == nil || data.Experience == nil {
		t.Fatal("expected missing lists to become empty slices")
	}
}

func TestAnalyzeExperienceFresher(t *testing.T) {
	completion := newFakeCompletion(nil)
	s := NewScreener(completion, 1, false)

	analysis, err := s.AnalyzeExperience(context.Background(), ResumeData{Experience: []ExperienceEntry{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Status != "no_experience" {
		t.Fatalf("expected status no_experience, got %q", analysis.Status)
	}
	if analysis.Reasoning != FresherReasoning {
		t.Fatalf("unexpected reasoning: %q", analysis.Reasoning)
	}
	if completion.callCount() != 0 {
		t.Fatal("expected no completion call for a fresher")
	}
}

func TestAnalyzeExperience(t *testing.T) {
	completion := newFakeCompletion(respondJSON(map[string]string{
		"analyze_experience": `{"status": "suspicious", "reasoning": "overlapping positions", "flags": ["overlap"]}`,
	}))
	s := NewScreener(completion, 1, false)

	data := ResumeData{Experience: []ExperienceEntry{
		{JobTitle: "Engineer", Company: "ABC Corp", StartDate: "2020", EndDate: "2022"},
		{JobTitle: "Engineer", Company: "XYZ Inc", StartDate: "2021", EndDate: "2023"},
	}}
	analysis, err := s.AnalyzeExperience(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Status != "suspicious" || len(analysis.Flags) != 1 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
	if !strings.Contains(completion.prompts["analyze_experience"], "ABC Corp") {
		t.Fatal("expected the prompt to carry the experience entries")
	}
}

func TestValidateEducationEmptyShortCircuit(t *testing.T) {
	completion := newFakeCompletion(nil)
	s := NewScreener(completion, 1, false)

	analysis, err := s.ValidateEducation(context.Background(), ResumeData{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Suspicious {
		t.Fatal("expected empty education to be unsuspicious")
	}
	if completion.callCount() != 0 {
		t.Fatal("expected no completion call without education entries")
	}
}

func TestGenerateReportWithoutJD(t *testing.T) {
	completion := newFakeCompletion(respondJSON(map[string]string{
		"generate_report": `{"plagiarism_summary": "no matches", "resume_vs_jd_similarity": "not provided", "final_recommendation": "proceed"}`,
	}))
	s := NewScreener(completion, 1, false)

	report, err := s.GenerateReport(context.Background(), SignalBundle{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.FinalRecommendation != "proceed" {
		t.Fatalf("unexpected recommendation: %q", report.FinalRecommendation)
	}
	if !strings.Contains(completion.prompts["generate_report"], "No job description provided.") {
		t.Fatal("expected the prompt to spell out the missing job description")
	}
}
