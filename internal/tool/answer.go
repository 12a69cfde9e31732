package tool

import (
	"encoding/json"
	"fmt"
)

// LimitAnswer returns answer unchanged when it fits in maxChars characters.
// Longer answers are replaced by a notice asking the model to narrow the request,
// so a partial (and possibly misleading) result is never returned.
// A non-positive maxChars disables the limit.
func LimitAnswer(answer string, maxChars int) string {
	if maxChars <= 0 {
		return answer
	}
	n := len([]rune(answer))
	if n <= maxChars {
		return answer
	}
	return fmt.Sprintf("The answer is too long (%d characters, limit %d). Please try a more specific request, e.g. a narrower path, line range or pattern.", n, maxChars)
}

// MarshalAnswer encodes v as compact JSON and applies LimitAnswer.
func MarshalAnswer(v any, maxChars int) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return LimitAnswer(string(data), maxChars), nil
}

// MaxChars picks the per-call limit when one was requested, else the configured default.
func MaxChars(requested, configured int) int {
	if requested > 0 {
		return requested
	}
	return configured
}
