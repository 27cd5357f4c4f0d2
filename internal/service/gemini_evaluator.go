package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/fadilmartias/ats-interviewer/internal/usecase"
	"github.com/tidwall/gjson"
)

// GeminiEvaluator scores a finished interview with Gemini. It is a pure
// function of its input: nothing is persisted here, so a failed or repeated
// call has no side effects.
type GeminiEvaluator struct {
	gemini GeminiServiceInterface
	model  string
}

func NewGeminiEvaluator(gemini GeminiServiceInterface) *GeminiEvaluator {
	return &GeminiEvaluator{gemini: gemini, model: "gemini-2.5-flash"}
}

func (e *GeminiEvaluator) Evaluate(ctx context.Context, in usecase.EvaluationInput) (float64, *model.Analysis, error) {
	prompt := buildEvaluationPrompt(in)

	text, err := e.gemini.GenerateContent(ctx, e.model, prompt)
	if err != nil {
		return 0, nil, err
	}
	return parseEvaluation(text)
}

func buildEvaluationPrompt(in usecase.EvaluationInput) string {
	var transcript strings.Builder
	byQuestion := make(map[int]model.Answer, len(in.Answers))
	for _, a := range in.Answers {
		byQuestion[a.QuestionID] = a
	}
	for i, q := range in.Questions {
		a := byQuestion[q.ID]
		fmt.Fprintf(&transcript, "Q%d (%s): %s\nA%d: %s\n\n", i+1, q.Category, q.Text, i+1, a.Text)
	}

	return fmt.Sprintf(`
You are an experienced technical recruiter. A candidate applied for the position below and completed a written interview. Evaluate the interview transcript against the job requirements and the candidate's resume.

Position: %s
Description: %s
Requirements: %s

Resume:
%s

Interview transcript:
%s

Return your answer STRICTLY in JSON format with this schema:
{
	"score": <float with 1 decimal place, range 0-100, overall interview performance>,
	"overall_assessment": "<one paragraph overall impression>",
	"strengths": ["<strength>", ...],
	"areas_for_improvement": ["<area>", ...],
	"recommendation": "<one of: Proceed to next round, Hold, Do not proceed>"
}
`, in.Job.Title, in.Job.Description, in.Job.Requirements, in.ResumeText, transcript.String())
}

// parseEvaluation extracts the score and analysis from the model's JSON
// answer. Models occasionally wrap JSON in a code fence, so the fences are
// stripped before parsing.
func parseEvaluation(text string) (float64, *model.Analysis, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	if !gjson.Valid(cleaned) {
		return 0, nil, fmt.Errorf("evaluator returned non-JSON output")
	}

	scoreResult := gjson.Get(cleaned, "score")
	if !scoreResult.Exists() {
		return 0, nil, fmt.Errorf("evaluator output missing score")
	}
	score := scoreResult.Float()
	if score < 0 || score > 100 {
		return 0, nil, fmt.Errorf("evaluator score %v out of range", score)
	}

	analysis := &model.Analysis{
		OverallAssessment:   gjson.Get(cleaned, "overall_assessment").String(),
		Recommendation:      gjson.Get(cleaned, "recommendation").String(),
		Strengths:           stringSlice(gjson.Get(cleaned, "strengths")),
		AreasForImprovement: stringSlice(gjson.Get(cleaned, "areas_for_improvement")),
	}
	return score, analysis, nil
}

func stringSlice(result gjson.Result) []string {
	items := result.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}
