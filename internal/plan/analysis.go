// Package plan derives a tailored screening question plan from a job
// description and a candidate resume. With refinement disabled the plan is a
// pure function of its text inputs.
package plan

import (
	"github.com/jonathan/screening-agent/internal/signals"
)

// maxGaps bounds the gap list carried on an Analysis.
const maxGaps = 6

// Analysis combines the job and candidate signals with seniority, the JD-CV
// gap list, and industry hints. It is derived and ephemeral; recomputed per
// call.
type Analysis struct {
	Seniority   signals.Seniority `json:"seniority"`
	Job         signals.Signal    `json:"jd"`
	Candidate   signals.Signal    `json:"cv"`
	Gaps        []string          `json:"gaps"`
	DomainHints []string          `json:"domainHints"`
}

// Analyze extracts signals from both texts and computes the gap list:
// vocabulary the job demands that the resume never mentions, in first-seen
// job-signal order, capped at six entries. A term present in both signals is
// never a gap.
func Analyze(title, jobText, resumeText string) Analysis {
	jobSig := signals.Extract(jobText)
	candSig := signals.Extract(resumeText)

	candidateTerms := make(map[string]bool)
	for _, term := range candSig.Terms() {
		candidateTerms[term] = true
	}

	gaps := make([]string, 0, maxGaps)
	for _, term := range jobSig.Terms() {
		if !candidateTerms[term] {
			gaps = append(gaps, term)
			if len(gaps) == maxGaps {
				break
			}
		}
	}

	return Analysis{
		Seniority:   signals.DetectSeniority(title + " " + jobText),
		Job:         jobSig,
		Candidate:   candSig,
		Gaps:        gaps,
		DomainHints: signals.PickDomains(jobText + " " + title),
	}
}
