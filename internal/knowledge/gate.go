package knowledge

import (
	"fmt"
	"strings"
)

// InsufficientEvidenceAnswer is the fixed fallback answer when the gate fails.
const InsufficientEvidenceAnswer = "Insufficient evidence in the knowledge base to answer this question confidently."

// contextCandidates is how many top candidates feed the grounding context and
// are returned for diagnosis.
const contextCandidates = 3

// GateResult is the answer gate's decision for one retrieval.
type GateResult struct {
	// Grounded reports whether the top fused score cleared the threshold.
	Grounded bool
	// Reasoning is a human-readable report of the observed top score versus
	// the threshold.
	Reasoning string
	// Context is the labeled grounding block handed to the chat provider.
	// Empty when the gate fails.
	Context string
	// Top holds up to three top candidates. They are returned even when the
	// gate fails, for diagnosis.
	Top []ScoredCandidate
}

// EvaluateGate decides whether there is enough evidence to generate an
// answer. With no candidates at all the observed score defaults to 0 rather
// than erroring: an empty corpus simply cannot ground an answer. The gate
// fails when the top score is strictly below the threshold.
func EvaluateGate(candidates []ScoredCandidate, threshold float64) GateResult {
	top := candidates
	if len(top) > contextCandidates {
		top = top[:contextCandidates]
	}

	topScore := 0.0
	if len(candidates) > 0 {
		topScore = candidates[0].Score
	}

	if len(candidates) == 0 || topScore < threshold {
		return GateResult{
			Grounded:  false,
			Reasoning: fmt.Sprintf("Top chunk similarity (%.2f) is below threshold (%.2f)", topScore, threshold),
			Top:       top,
		}
	}

	labeled := make([]string, len(top))
	for i, candidate := range top {
		labeled[i] = fmt.Sprintf("[Chunk %d]: %s", i+1, candidate.Text)
	}

	return GateResult{
		Grounded:  true,
		Reasoning: fmt.Sprintf("Top chunk similarity (%.2f) meets threshold (%.2f)", topScore, threshold),
		Context:   strings.Join(labeled, "\n\n"),
		Top:       top,
	}
}
