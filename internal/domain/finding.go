package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Severity represents the impact level of a finding
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all severity levels from most to least severe
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity maps a free-form severity label onto a known level.
// Unknown labels fall back to medium.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "low", "info", "informational":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// StatusProposed is the status every freshly reported finding carries
const StatusProposed = "proposed"

// idLength is the number of hex characters kept from the hash
const idLength = 16

// Finding represents a single reported vulnerability
type Finding struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	VulnerabilityType string   `json:"vulnerability_type"`
	Severity          Severity `json:"severity"`
	Confidence        float64  `json:"confidence"`
	Location          string   `json:"location"`
	File              string   `json:"file"`
	ID                string   `json:"id"`
	ReportedByModel   string   `json:"reported_by_model"`
	Status            string   `json:"status"`
}

// NewFindingID derives the identity of a finding from its file and title
func NewFindingID(file, title string) string {
	sum := md5.Sum([]byte(file + ":" + title))
	return hex.EncodeToString(sum[:])[:idLength]
}

// IsHighPriority returns true if the finding is critical or high severity
func (f *Finding) IsHighPriority() bool {
	return f.Severity == SeverityCritical || f.Severity == SeverityHigh
}

// Dedupe keeps the first finding seen for every ID, preserving order
func Dedupe(findings []Finding) []Finding {
	seen := make(map[string]bool, len(findings))
	unique := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		unique = append(unique, f)
	}
	return unique
}
