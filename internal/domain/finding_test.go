package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFindingID_Deterministic(t *testing.T) {
	a := NewFindingID("Vault.sol", "Reentrancy")
	b := NewFindingID("Vault.sol", "Reentrancy")

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", a)
}

func TestNewFindingID_DiffersByFileAndTitle(t *testing.T) {
	base := NewFindingID("a.sol", "Reentrancy")

	assert.NotEqual(t, base, NewFindingID("b.sol", "Reentrancy"))
	assert.NotEqual(t, base, NewFindingID("a.sol", "Overflow"))
}

func TestNewFindingID_KnownValue(t *testing.T) {
	// ids must stay stable across releases for downstream comparison
	assert.Equal(t, "74ab5b121349f7a8", NewFindingID("Vault.sol", "Reentrancy"))
	assert.Equal(t, "853ae90f0351324b", NewFindingID("", ""))
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"critical", SeverityCritical},
		{"HIGH", SeverityHigh},
		{" Medium ", SeverityMedium},
		{"low", SeverityLow},
		{"informational", SeverityLow},
		{"severe", SeverityMedium},
		{"", SeverityMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSeverity(tt.in), "input %q", tt.in)
	}
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	first := Finding{ID: "x", Title: "Reentrancy", Description: "first"}
	second := Finding{ID: "x", Title: "Reentrancy", Description: "second"}
	other := Finding{ID: "y", Title: "Overflow"}

	got := Dedupe([]Finding{first, other, second})

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Description)
	assert.Equal(t, "y", got[1].ID)
}

func TestDedupe_Idempotent(t *testing.T) {
	findings := []Finding{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}, {ID: "b"}}

	once := Dedupe(findings)
	twice := Dedupe(once)

	assert.Equal(t, once, twice)
	assert.Len(t, once, 3)
}

func TestDedupe_EmptyIsNonNil(t *testing.T) {
	got := Dedupe(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewAnalysisResult_TotalMatchesFindings(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	findings := []Finding{
		{ID: NewFindingID("a.sol", "Reentrancy"), File: "a.sol", Title: "Reentrancy", Severity: SeverityHigh},
		{ID: NewFindingID("b.sol", "Reentrancy"), File: "b.sol", Title: "Reentrancy", Severity: SeverityHigh},
		{ID: NewFindingID("a.sol", "Reentrancy"), File: "a.sol", Title: "Reentrancy", Severity: SeverityLow},
	}

	r := NewAnalysisResult("proj", at, findings)

	assert.Equal(t, "proj", r.Project)
	assert.Equal(t, "2026-10-19T08:30:00.000000", r.Timestamp)
	assert.Equal(t, 2, r.TotalFindings)
	assert.Len(t, r.Findings, r.TotalFindings)
	assert.Equal(t, 2, r.HighCount())
	assert.Equal(t, map[Severity]int{SeverityHigh: 2}, r.SeverityCounts())
}

func TestEmptyResult(t *testing.T) {
	r := EmptyResult("proj", time.Now())

	assert.Zero(t, r.FilesAnalyzed)
	assert.Zero(t, r.FilesSkipped)
	assert.Zero(t, r.TotalFindings)
	assert.NotNil(t, r.Findings)
	assert.Empty(t, r.Findings)
	assert.Equal(t, TokenUsage{}, r.TokenUsage)
	assert.False(t, r.HasFindings())
}

func TestTokenUsage_Add(t *testing.T) {
	var u TokenUsage
	u.Add(100, 20)
	u.Add(50, 5)

	assert.Equal(t, TokenUsage{InputTokens: 150, OutputTokens: 25, TotalTokens: 175}, u)
}
