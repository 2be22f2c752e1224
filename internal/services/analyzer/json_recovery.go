package analyzer

import (
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	jsonSpanRe   = regexp.MustCompile(`(?s)\{.*\}`)
)

// extractJSON recovers a JSON object from model output that may wrap
// it in markdown fences or surrounding prose. Recovery order: fenced
// json block, any fenced block, first {...} span, raw text. The result
// is trimmed to the outermost braces.
func extractJSON(text string) string {
	candidate := strings.TrimSpace(text)

	if match := fencedJSONRe.FindStringSubmatch(candidate); match != nil {
		candidate = match[1]
	} else if match := fencedAnyRe.FindStringSubmatch(candidate); match != nil {
		candidate = match[1]
	} else if match := jsonSpanRe.FindString(candidate); match != "" {
		candidate = match
	}

	candidate = strings.TrimSpace(candidate)

	// Drop any prose left outside the outermost braces.
	if idx := strings.Index(candidate, "{"); idx > 0 {
		candidate = candidate[idx:]
	}
	if idx := strings.LastIndex(candidate, "}"); idx >= 0 && idx < len(candidate)-1 {
		candidate = candidate[:idx+1]
	}

	return candidate
}

// repairJSON fixes structural damage (trailing commas, single quotes,
// unquoted keys) that models occasionally emit. Returns the input
// unchanged when repair fails, so the decode error surfaces instead.
func repairJSON(text string) string {
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return text
	}
	return repaired
}
