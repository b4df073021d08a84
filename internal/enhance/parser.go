package enhance

import (
	"regexp"
	"strconv"
	"strings"

	"resume-tailor-backend/internal/shared/metrics"
	"resume-tailor-backend/internal/shared/telemetry"
)

// Marker extraction is case-insensitive, multiline, and non-greedy; the
// first span wins. Each field is extracted independently so one malformed
// sub-field degrades that field only, not the whole reply.
var (
	reRewrittenResume  = markerPattern("rewritten_resume")
	reAnalysis         = markerPattern("analysis")
	reMatchScore       = markerPattern("match_score")
	reScoreExplanation = markerPattern("match_score_explanation")
	reSummaryOfChanges = markerPattern("summary_of_changes")
	reEnhancedParts    = markerPattern("enhanced_parts")
	reRemovedParts     = markerPattern("removed_parts")

	reFirstInt = regexp.MustCompile(`-?\d+`)
)

func markerPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + tag + `>(.*?)</` + tag + `>`)
}

func extractMarker(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Parse recovers a typed EnhancementResult from a raw model reply. The reply
// is untrusted free text; a missing analysis section is the only fatal
// condition. A missing rewritten resume yields an empty string and the
// caller decides whether that is acceptable.
func Parse(rawText string) (EnhancementResult, error) {
	result := EnhancementResult{
		EnhancedParts: []ChangeItem{},
		RemovedParts:  []ChangeItem{},
	}

	result.RewrittenResume, _ = extractMarker(reRewrittenResume, rawText)

	analysis, ok := extractMarker(reAnalysis, rawText)
	if !ok {
		return EnhancementResult{}, &MalformedResponseError{Reason: "missing analysis section"}
	}

	if scoreText, ok := extractMarker(reMatchScore, analysis); ok {
		result.MatchScore = parseScore(scoreText)
	} else {
		recordScoreDefault("missing match_score")
	}

	result.MatchScoreExplanation, _ = extractMarker(reScoreExplanation, analysis)

	// Models emit the change lists either inside a summary_of_changes
	// wrapper or directly under analysis; accept both nestings.
	changes := analysis
	if span, ok := extractMarker(reSummaryOfChanges, analysis); ok {
		changes = span
	}
	if span, ok := extractMarker(reEnhancedParts, changes); ok {
		result.EnhancedParts = parseChangeItems(span)
	}
	if span, ok := extractMarker(reRemovedParts, changes); ok {
		result.RemovedParts = parseChangeItems(span)
	}

	return result, nil
}

// parseScore coerces the captured text to an integer in [0, 100]. Unparsable
// text becomes 0 rather than failing the reply; the coercion is counted so
// the lossy default stays observable.
func parseScore(text string) int {
	raw := reFirstInt.FindString(text)
	if raw == "" {
		recordScoreDefault(text)
		return 0
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		recordScoreDefault(text)
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func recordScoreDefault(captured string) {
	metrics.IncScoreDefaulted()
	telemetry.Warn("enhance.score_defaulted", telemetry.Fields{
		"captured": truncate(captured, 80),
	})
}

// parseChangeItems splits the captured span on the literal "---" separator
// and extracts item/description/reason by line prefix, first match per
// chunk. A chunk missing any of the three fields is dropped.
func parseChangeItems(span string) []ChangeItem {
	items := []ChangeItem{}
	for _, chunk := range strings.Split(span, "---") {
		item := changeItemFromChunk(chunk)
		if item.Item != "" && item.Description != "" && item.Reason != "" {
			items = append(items, item)
		}
	}
	return items
}

func changeItemFromChunk(chunk string) ChangeItem {
	var item ChangeItem
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case item.Item == "" && hasFieldPrefix(line, "item:"):
			item.Item = fieldValue(line, "item:")
		case item.Description == "" && hasFieldPrefix(line, "description:"):
			item.Description = fieldValue(line, "description:")
		case item.Reason == "" && hasFieldPrefix(line, "reason:"):
			item.Reason = fieldValue(line, "reason:")
		}
	}
	return item
}

func hasFieldPrefix(line, prefix string) bool {
	return len(line) >= len(prefix) && strings.EqualFold(line[:len(prefix)], prefix)
}

func fieldValue(line, prefix string) string {
	return strings.TrimSpace(line[len(prefix):])
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
