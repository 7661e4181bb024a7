// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/screening-agent/internal/plan"
	"github.com/jonathan/screening-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs a human-readable summary of the JD-CV analysis.
func (p *Printer) PrintAnalysis(a *plan.Analysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Seniority: %s\n", a.Seniority))

	if len(a.Job.Stacks) > 0 {
		sb.WriteString(fmt.Sprintf("JD stacks: %s\n", strings.Join(a.Job.Stacks, ", ")))
	}
	if len(a.Candidate.Stacks) > 0 {
		sb.WriteString(fmt.Sprintf("CV stacks: %s\n", strings.Join(a.Candidate.Stacks, ", ")))
	}
	if len(a.DomainHints) > 0 {
		sb.WriteString(fmt.Sprintf("Domains:   %s\n", strings.Join(a.DomainHints, ", ")))
	}

	if len(a.Gaps) > 0 {
		sb.WriteString("\nGaps (JD terms missing from CV):\n")
		for _, g := range a.Gaps {
			sb.WriteString(fmt.Sprintf("  • %s\n", g))
		}
	}

	p.printBox("JD-CV ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlan outputs the generated question plan in order.
func (p *Printer) PrintPlan(questions []string) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d questions:\n\n", len(questions)))
	for i, q := range questions {
		if len(q) > 50 {
			q = q[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, q))
	}

	p.printBox("SCREENING PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the extraction summary and fit score.
func (p *Printer) PrintReport(ext *types.Extraction, fitScore int, recommendation string) {
	if ext == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fit score: %d  (%s)\n\n", fitScore, recommendation))
	sb.WriteString(fmt.Sprintf("Salary:       %s\n", ext.SalaryExpectation))
	sb.WriteString(fmt.Sprintf("Notice:       %s\n", ext.NoticePeriod))
	sb.WriteString(fmt.Sprintf("Leaving:      %s\n", ext.ReasonForLeaving))
	sb.WriteString(fmt.Sprintf("Motivation:   %s\n", ext.Motivation))
	sb.WriteString(fmt.Sprintf("Expectations: %s\n", ext.CareerExpectations))

	if len(ext.Sparc) > 0 {
		sb.WriteString("\nEvidence:\n")
		count := min(len(ext.Sparc), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := ext.Sparc[i]
			anchor := item.AnchorSnippet
			if len(anchor) > 40 {
				anchor = anchor[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %.2f  %s\n", item.Score, anchor))
		}
		if len(ext.Sparc) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ext.Sparc)-maxItemsToShow))
		}
	}

	if len(ext.RiskFlags) > 0 {
		sb.WriteString("\nRisk flags:\n")
		for _, f := range ext.RiskFlags {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", f))
		}
	}
	if ext.AIAssistance.Suspected {
		sb.WriteString(fmt.Sprintf("\nAI assistance suspected (confidence %.1f)\n", ext.AIAssistance.Confidence))
	}

	p.printBox("SCREENING REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
