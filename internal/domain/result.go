package domain

import "time"

// TimestampLayout is the ISO-8601 layout used for result timestamps
const TimestampLayout = "2006-01-02T15:04:05.000000"

// TokenUsage holds LLM token counters
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add accumulates input and output counts and recomputes the total
func (u *TokenUsage) Add(input, output int) {
	u.InputTokens += input
	u.OutputTokens += output
	u.TotalTokens = u.InputTokens + u.OutputTokens
}

// AnalysisResult is the outcome of analyzing one project
type AnalysisResult struct {
	Project       string     `json:"project"`
	Timestamp     string     `json:"timestamp"`
	FilesAnalyzed int        `json:"files_analyzed"`
	FilesSkipped  int        `json:"files_skipped"`
	TotalFindings int        `json:"total_findings"`
	Findings      []Finding  `json:"findings"`
	TokenUsage    TokenUsage `json:"token_usage"`

	// FilesFailed counts submitted files whose request or response failed.
	// They are already included in FilesAnalyzed.
	FilesFailed int `json:"-"`
}

// NewAnalysisResult builds a result from raw accumulated findings, deduplicating them
func NewAnalysisResult(project string, at time.Time, findings []Finding) *AnalysisResult {
	unique := Dedupe(findings)
	return &AnalysisResult{
		Project:       project,
		Timestamp:     at.Format(TimestampLayout),
		TotalFindings: len(unique),
		Findings:      unique,
	}
}

// EmptyResult returns a result for a project with nothing to analyze
func EmptyResult(project string, at time.Time) *AnalysisResult {
	return NewAnalysisResult(project, at, nil)
}

// SeverityCounts returns the number of findings per severity
func (r *AnalysisResult) SeverityCounts() map[Severity]int {
	counts := make(map[Severity]int)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}

// HighCount returns the number of critical and high severity findings
func (r *AnalysisResult) HighCount() int {
	count := 0
	for _, f := range r.Findings {
		if f.IsHighPriority() {
			count++
		}
	}
	return count
}

// HasFindings returns true if there are any findings
func (r *AnalysisResult) HasFindings() bool {
	return len(r.Findings) > 0
}
