package bom

import "strings"

const (
	jsonFence    = "```json"
	genericFence = "```"
)

// A matcher locates one candidate JSON substring inside raw assistant text.
// Matchers report ok=false when their start marker is absent so the next,
// lower-confidence strategy gets a chance. A matched candidate that turns out
// to be malformed JSON is surfaced by the decoder, not retried here.
type matcher struct {
	name string
	fn   func(text string) (candidate string, ok bool)
}

// Strategies ordered from highest confidence (explicit json fence) to lowest
// (bare bracket scan). Adding a new format means appending a matcher, not
// growing a conditional.
var matchers = []matcher{
	{name: "json_fence", fn: matchJSONFence},
	{name: "generic_fence", fn: matchGenericFence},
	{name: "bracket_span", fn: matchBracketSpan},
}

// ExtractCandidateJSON isolates the most plausible JSON array substring from
// raw model output. Models wrap JSON in code fences or prose inconsistently,
// so extraction walks an ordered strategy chain and the first match wins.
func ExtractCandidateJSON(text string) (string, error) {
	for _, m := range matchers {
		if candidate, ok := m.fn(text); ok {
			return candidate, nil
		}
	}
	return "", &ExtractionError{msg: "bom: no JSON content found in response"}
}

// matchJSONFence extracts the body of a ```json fenced block.
func matchJSONFence(text string) (string, bool) {
	start := strings.Index(text, jsonFence)
	if start < 0 {
		return "", false
	}
	start += len(jsonFence)
	end := strings.Index(text[start:], genericFence)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(text[start : start+end]), true
}

// matchGenericFence extracts the body of the first fenced block of any kind,
// stripping a leftover "json" language tag line if the model put the tag on
// its own line.
func matchGenericFence(text string) (string, bool) {
	start := strings.Index(text, genericFence)
	if start < 0 {
		return "", false
	}
	start += len(genericFence)
	end := strings.Index(text[start:], genericFence)
	if end < 0 {
		return "", false
	}
	body := strings.TrimSpace(text[start : start+end])
	body = strings.TrimPrefix(body, "json\n")
	return body, true
}

// matchBracketSpan takes the span from the first '[' to the last ']' in the
// whole text. The rightmost bracket deliberately captures the outermost array
// even when nested arrays or stray brackets appear in surrounding prose.
func matchBracketSpan(text string) (string, bool) {
	open := strings.Index(text, "[")
	close := strings.LastIndex(text, "]")
	if open < 0 || close < 0 {
		return "", false
	}
	if close < open {
		// Brackets present but inverted; hand the empty candidate to the
		// decoder, which reports it as invalid JSON.
		return "", true
	}
	return strings.TrimSpace(text[open : close+1]), true
}
