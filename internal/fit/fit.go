// Package fit computes the weighted 0-100 fit score from SPARC evidence
// items. Scoring is a pure function of the item set and a weights triple and
// can be recomputed at any time.
package fit

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/screening-agent/internal/types"
)

// Theme names used in SparcItem tags and in the recommendation output.
const (
	ThemeBackend    = "backend"
	ThemeLeadership = "leadership"
	ThemeScaling    = "scaling"
)

// emptyBucketDefault scores a theme with no evidence as neutral-positive so
// one missing theme cannot zero the overall score.
const emptyBucketDefault = 0.6

// weightEpsilon floors the weight sum to keep normalization defined when all
// three weights are zero.
const weightEpsilon = 1e-9

// Theme keyword matchers, applied to anchor+action+result text when an item
// carries no structured tags. Buckets are non-exclusive.
var (
	backendRe    = regexp.MustCompile(`latency|cache|postgres|redis|api|throughput|perf|query|index`)
	leadershipRe = regexp.MustCompile(`lead|mentor|ownership|coordinate|drive|guided|coached`)
	scalingRe    = regexp.MustCompile(`scale|kubernetes|k8s|replica|autoscal|traffic|peak|hpa`)
)

// Weights holds the three theme weights. They need not sum to 1; they are
// normalized at use time.
type Weights struct {
	Backend    float64 `json:"backend" validate:"gte=0"`
	Leadership float64 `json:"leadership" validate:"gte=0"`
	Scaling    float64 `json:"scaling" validate:"gte=0"`
}

// DefaultWeights returns the standard 0.4/0.3/0.3 split.
func DefaultWeights() Weights {
	return Weights{Backend: 0.4, Leadership: 0.3, Scaling: 0.3}
}

// ComputeWeightedFit buckets the items into the three themes, averages each
// bucket's normalized scores (empty bucket defaults to 0.6), and returns
// round(100 x weighted sum) clamped to [0, 100].
func ComputeWeightedFit(items []types.SparcItem, w Weights) int {
	sum := w.Backend + w.Leadership + w.Scaling
	if sum < weightEpsilon {
		sum = weightEpsilon
	}
	wb := w.Backend / sum
	wl := w.Leadership / sum
	ws := w.Scaling / sum

	var backend, leadership, scaling []float64
	for _, item := range items {
		score := normalizeScore(item.Score)
		if inTheme(item, ThemeBackend, backendRe) {
			backend = append(backend, score)
		}
		if inTheme(item, ThemeLeadership, leadershipRe) {
			leadership = append(leadership, score)
		}
		if inTheme(item, ThemeScaling, scalingRe) {
			scaling = append(scaling, score)
		}
	}

	weighted := wb*bucketAverage(backend) + wl*bucketAverage(leadership) + ws*bucketAverage(scaling)

	score := int(math.Round(100 * weighted))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// inTheme reports theme membership. Structured tags are authoritative when
// present; otherwise the theme keywords are matched against the item's
// anchor, action, and result text.
func inTheme(item types.SparcItem, theme string, re *regexp.Regexp) bool {
	if len(item.Tags) > 0 {
		for _, tag := range item.Tags {
			if strings.EqualFold(tag, theme) {
				return true
			}
		}
		return false
	}
	text := strings.ToLower(item.AnchorSnippet + " " + item.Action + " " + item.Result)
	return re.MatchString(text)
}

// normalizeScore maps a raw SPARC score to [0, 1]. Values above 1 are read
// as a 0-100 percentage; negative values clamp to 0.
func normalizeScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		s = s / 100
	}
	if s > 1 {
		return 1
	}
	return s
}

func bucketAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return emptyBucketDefault
	}
	var total float64
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}
