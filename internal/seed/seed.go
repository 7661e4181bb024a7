// Package seed inserts the demo dataset: one job, one candidate, and the
// question bank, all indexed for retrieval.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/screening-agent/internal/db"
	"github.com/jonathan/screening-agent/internal/rag"
)

// DemoJD is the demo job description.
const DemoJD = `
Role: Senior Backend Engineer (with DevOps expertise)
Responsibilities:
- Architect and implement backend services in Node.js/TypeScript and Go.
- CI/CD, Docker, Kubernetes; design scalable data models (PostgreSQL, Redis).
- Monitoring (Prometheus, Grafana, ELK). Cloud (AWS/GCP). Terraform/Helm.
Qualifications:
- 5+ years backend, distributed systems, scalable architectures.
- DevOps background: CI/CD, K8s, IaC. Mentoring experience.
Nice to have: Event-driven (Kafka/RabbitMQ), security best practices.
`

// DemoCV is the demo candidate resume.
const DemoCV = `
Name: Sarah Ahmed
Summary: Backend engineer with 6 years in distributed, high-performance systems. Node.js/TS, cloud-native, CI/CD, scaling.
FinTechX (2021-present): Scaled payment APIs to 20k+/min; K8s (GCP); GitHub Actions + Helm; led 3 engineers; Redis cache cut p95 from 800ms->200ms.
ShopEase (2018-2021): Node/Express; Postgres optimizations + read replicas; Terraform; Prometheus/Grafana lowered MTTR 40%.
Skills: Node.js, TS, Go (beginner), PostgreSQL, Redis, Kubernetes, Docker, Terraform, Helm, Prometheus, Grafana, ELK.
`

// questionBank is indexed under the question owner category as
// "topic: question" entries.
var questionBank = []struct {
	Topic    string
	Question string
}{
	{"baseline", "What is your salary expectation?"},
	{"baseline", "What is your notice period?"},
	{"baseline", "Reason for leaving your current role?"},
	{"backend", "Describe a time you reduced p95 latency. What changed?"},
	{"devops", "Walk through a CI/CD pipeline you built (stages, rollback)."},
	{"scaling", "How did you scale a service during peak traffic? Bottlenecks?"},
	{"leadership", "Tell me about mentoring and driving delivery under pressure."},
	{"security", "How do you approach secrets, SBOM, and dependency risks?"},
}

// Result reports the IDs of the seeded records.
type Result struct {
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Questions   int       `json:"questions"`
}

// Run inserts the demo job, candidate, and question bank and indexes all of
// them for retrieval.
func Run(ctx context.Context, database *db.DB) (*Result, error) {
	jobID, err := database.CreateJob(ctx, "Senior Backend Engineer", strings.TrimSpace(DemoJD), "")
	if err != nil {
		return nil, fmt.Errorf("failed to seed job: %w", err)
	}
	if err := database.IndexContent(ctx, rag.OwnerJob, jobID, strings.TrimSpace(DemoJD)); err != nil {
		return nil, err
	}

	candidateID, err := database.CreateCandidate(ctx, "Sarah Ahmed", strings.TrimSpace(DemoCV))
	if err != nil {
		return nil, fmt.Errorf("failed to seed candidate: %w", err)
	}
	if err := database.IndexContent(ctx, rag.OwnerCandidate, candidateID, strings.TrimSpace(DemoCV)); err != nil {
		return nil, err
	}

	for _, q := range questionBank {
		entry := fmt.Sprintf("%s: %s", q.Topic, q.Question)
		if err := database.IndexContent(ctx, rag.OwnerQuestion, uuid.New(), entry); err != nil {
			return nil, err
		}
	}

	return &Result{JobID: jobID, CandidateID: candidateID, Questions: len(questionBank)}, nil
}
