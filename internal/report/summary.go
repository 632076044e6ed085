package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/juparave/baseline/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var severityColors = map[domain.Severity]*color.Color{
	domain.SeverityCritical: color.New(color.FgRed, color.Bold),
	domain.SeverityHigh:     color.New(color.FgRed),
	domain.SeverityMedium:   color.New(color.FgYellow),
	domain.SeverityLow:      color.New(color.FgGreen),
}

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)

	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
	completeStyle = headerStyle.BorderForeground(lipgloss.Color("2"))
)

// WriteSummary prints the per-project counts and severity breakdown,
// colouring severity labels for the terminal
func WriteSummary(w io.Writer, r *domain.AnalysisResult) {
	writeSummary(w, r, true)
}

// WritePlainSummary prints the same summary without terminal escape codes
func WritePlainSummary(w io.Writer, r *domain.AnalysisResult) {
	writeSummary(w, r, false)
}

func writeSummary(w io.Writer, r *domain.AnalysisResult, colored bool) {
	fmt.Fprintf(w, "\nSummary for %s:\n", r.Project)
	fmt.Fprintf(w, "  Files analyzed: %d\n", r.FilesAnalyzed)
	if r.FilesFailed > 0 {
		fmt.Fprintf(w, "  Files failed: %d\n", r.FilesFailed)
	}
	fmt.Fprintf(w, "  Files skipped: %d\n", r.FilesSkipped)
	fmt.Fprintf(w, "  Total findings: %d\n", r.TotalFindings)
	fmt.Fprintf(w, "  Token usage: %s\n", printer.Sprintf("%d", r.TokenUsage.TotalTokens))

	if !r.HasFindings() {
		return
	}

	counts := r.SeverityCounts()
	fmt.Fprintln(w, "  By severity:")
	for _, sev := range domain.Severities {
		n, ok := counts[sev]
		if !ok {
			continue
		}
		label := titler.String(string(sev)) + ":"
		if colored {
			label = severityColors[sev].Sprint(label)
		}
		fmt.Fprintf(w, "    %s %d\n", label, n)
	}
}

// Header renders the banner shown before a run
func Header(model, reasoningEffort string) string {
	return headerStyle.Render(strings.Join([]string{
		"BASELINE RUNNER",
		"Model: " + model,
		"Reasoning: " + reasoningEffort,
	}, "\n"))
}

// Completion renders the banner shown after the result is saved
func Completion(r *domain.AnalysisResult, path string) string {
	return completeStyle.Render(strings.Join([]string{
		"ANALYSIS COMPLETE",
		"",
		"Project: " + r.Project,
		fmt.Sprintf("Files analyzed: %d", r.FilesAnalyzed),
		fmt.Sprintf("Total findings: %d", r.TotalFindings),
		"Results saved to: " + path,
	}, "\n"))
}
