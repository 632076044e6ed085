package review

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/juparave/baseline/internal/domain"
)

// Field defaults applied when the model omits a value
const (
	DefaultTitle             = "Unknown"
	DefaultVulnerabilityType = "other"
	DefaultSeverity          = domain.SeverityMedium
	DefaultConfidence        = 0.5
	DefaultLocation          = "unknown"
)

// ParseResponse decodes model output into a generic JSON value.
// Empty output is treated as an empty object.
func ParseResponse(text string) (any, error) {
	text = stripCodeFence(strings.TrimSpace(text))
	if text == "" {
		return map[string]any{}, nil
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return v, nil
}

// stripCodeFence unwraps a markdown code block around the JSON
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// drop the opening fence and any language tag
	if nl := strings.IndexByte(text, '\n'); nl != -1 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	if idx := strings.LastIndex(text, "```"); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractor pulls raw finding candidates out of a response value.
// ok is false when the strategy does not apply.
type extractor func(v any) (candidates []any, ok bool)

// extractors are tried in order; the first that applies wins
var extractors = []extractor{
	fromList,
	fromKey("findings"),
	fromKey("vulnerabilities"),
	fromSingleFinding,
}

func fromList(v any) ([]any, bool) {
	list, ok := v.([]any)
	return list, ok
}

// fromKey applies whenever the key is present; a non-list value yields nothing
func fromKey(key string) extractor {
	return func(v any) ([]any, bool) {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		raw, ok := obj[key]
		if !ok {
			return nil, false
		}
		list, _ := raw.([]any)
		return list, true
	}
}

func fromSingleFinding(v any) ([]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	if _, ok := obj["title"]; !ok {
		return nil, false
	}
	return []any{obj}, true
}

// ExtractCandidates returns the finding-shaped objects in a response value
func ExtractCandidates(v any) []map[string]any {
	var raw []any
	for _, extract := range extractors {
		if candidates, ok := extract(v); ok {
			raw = candidates
			break
		}
	}

	out := make([]map[string]any, 0, len(raw))
	for _, c := range raw {
		if obj, ok := c.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// NewFinding builds a Finding from an unstructured object, applying defaults
// per field. file and model always come from the caller, never the object.
func NewFinding(raw map[string]any, file, model string) domain.Finding {
	title := stringField(raw, "title", DefaultTitle)

	return domain.Finding{
		Title:             title,
		Description:       stringField(raw, "description", ""),
		VulnerabilityType: stringField(raw, "vulnerability_type", DefaultVulnerabilityType),
		Severity:          domain.ParseSeverity(stringField(raw, "severity", string(DefaultSeverity))),
		Confidence:        confidenceField(raw, "confidence", DefaultConfidence),
		Location:          stringField(raw, "location", DefaultLocation),
		File:              file,
		ID:                domain.NewFindingID(file, title),
		ReportedByModel:   model,
		Status:            domain.StatusProposed,
	}
}

// Normalize turns a parsed response into findings for file
func Normalize(v any, file, model string) []domain.Finding {
	candidates := ExtractCandidates(v)
	findings := make([]domain.Finding, 0, len(candidates))
	for _, c := range candidates {
		findings = append(findings, NewFinding(c, file, model))
	}
	return findings
}

func stringField(raw map[string]any, key, def string) string {
	switch v := raw[key].(type) {
	case nil:
		return def
	case string:
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func confidenceField(raw map[string]any, key string, def float64) float64 {
	var c float64
	switch v := raw[key].(type) {
	case float64:
		c = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return def
		}
		c = parsed
	default:
		return def
	}

	if math.IsNaN(c) {
		return def
	}
	return math.Min(1, math.Max(0, c))
}
