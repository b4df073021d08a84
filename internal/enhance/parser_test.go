package enhance

import (
	"strings"
	"testing"
)

const wellFormedReply = `<rewritten_resume>
\documentclass{article}
\begin{document}
Tailored resume body.
\end{document}
</rewritten_resume>
<analysis>
<match_score>73</match_score>
<match_score_explanation>Strong skill overlap, limited direct experience.</match_score_explanation>
<summary_of_changes>
<enhanced_parts>
item: Skills section
description: Reordered to lead with Go and Kubernetes
reason: Both appear in the job requirements
---
item: Summary
description: Rewrote to mention backend focus
reason: Role is backend-heavy
</enhanced_parts>
<removed_parts>
item: Objective statement
description: Removed the generic objective paragraph
reason: Adds no signal for this role
</removed_parts>
</summary_of_changes>
</analysis>`

func TestParseWellFormedReply(t *testing.T) {
	result, err := Parse(wellFormedReply)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(result.RewrittenResume, `\documentclass{article}`) {
		t.Fatalf("expected rewritten resume to keep LaTeX, got %q", result.RewrittenResume)
	}
	if result.MatchScore != 73 {
		t.Fatalf("expected match score 73, got %d", result.MatchScore)
	}
	if result.MatchScoreExplanation == "" {
		t.Fatal("expected non-empty explanation")
	}
	if len(result.EnhancedParts) != 2 {
		t.Fatalf("expected 2 enhanced parts, got %d", len(result.EnhancedParts))
	}
	if result.EnhancedParts[0].Item != "Skills section" {
		t.Fatalf("expected first item 'Skills section', got %q", result.EnhancedParts[0].Item)
	}
	if len(result.RemovedParts) != 1 {
		t.Fatalf("expected 1 removed part, got %d", len(result.RemovedParts))
	}
}

func TestParseMissingAnalysisIsFatal(t *testing.T) {
	raw := "<rewritten_resume>body</rewritten_resume>\nno analysis markers here"
	_, err := Parse(raw)
	if err == nil {
		t.Fatal("expected error for missing analysis section")
	}
	if !IsMalformedResponse(err) {
		t.Fatalf("expected MalformedResponseError, got %T (%v)", err, err)
	}
}

func TestParseMissingRewrittenResumeIsTolerated(t *testing.T) {
	raw := "<analysis><match_score>50</match_score></analysis>"
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.RewrittenResume != "" {
		t.Fatalf("expected empty rewritten resume, got %q", result.RewrittenResume)
	}
	if result.MatchScore != 50 {
		t.Fatalf("expected score 50, got %d", result.MatchScore)
	}
}

func TestParseNonNumericScoreDefaultsToZero(t *testing.T) {
	raw := "<analysis><match_score>very high</match_score></analysis>"
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.MatchScore != 0 {
		t.Fatalf("expected score 0 for non-numeric text, got %d", result.MatchScore)
	}
}

func TestParseScoreTolerance(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"plain integer", "73", 73},
		{"with suffix", "82 out of 100", 82},
		{"with label", "Score: 64", 64},
		{"negative clamped", "-5", 0},
		{"over-range clamped", "250", 100},
		{"empty", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := "<analysis><match_score>" + tc.text + "</match_score></analysis>"
			result, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if result.MatchScore != tc.want {
				t.Fatalf("expected score %d, got %d", tc.want, result.MatchScore)
			}
		})
	}
}

func TestParseMarkersAreCaseInsensitive(t *testing.T) {
	raw := "<Rewritten_Resume>body</Rewritten_Resume><ANALYSIS><Match_Score>40</Match_Score></ANALYSIS>"
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.RewrittenResume != "body" {
		t.Fatalf("expected 'body', got %q", result.RewrittenResume)
	}
	if result.MatchScore != 40 {
		t.Fatalf("expected 40, got %d", result.MatchScore)
	}
}

func TestParseChangeListsWithoutSummaryWrapper(t *testing.T) {
	raw := `<analysis>
<match_score>55</match_score>
<enhanced_parts>
item: A
description: B
reason: C
</enhanced_parts>
</analysis>`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.EnhancedParts) != 1 {
		t.Fatalf("expected 1 enhanced part, got %d", len(result.EnhancedParts))
	}
	if result.EnhancedParts[0] != (ChangeItem{Item: "A", Description: "B", Reason: "C"}) {
		t.Fatalf("unexpected change item %+v", result.EnhancedParts[0])
	}
}

func TestParseDropsIncompleteChangeItems(t *testing.T) {
	raw := "<analysis><enhanced_parts>item: A\ndescription: B\nreason: C\n---\nitem: D\ndescription:\nreason: F</enhanced_parts></analysis>"
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.EnhancedParts) != 1 {
		t.Fatalf("expected exactly 1 retained item, got %d", len(result.EnhancedParts))
	}
	want := ChangeItem{Item: "A", Description: "B", Reason: "C"}
	if result.EnhancedParts[0] != want {
		t.Fatalf("expected %+v, got %+v", want, result.EnhancedParts[0])
	}
}

func TestParseEmptyChangeSpans(t *testing.T) {
	raw := "<analysis><enhanced_parts>\n</enhanced_parts><removed_parts></removed_parts></analysis>"
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.EnhancedParts) != 0 || len(result.RemovedParts) != 0 {
		t.Fatalf("expected empty change lists, got %d/%d", len(result.EnhancedParts), len(result.RemovedParts))
	}
	if result.EnhancedParts == nil || result.RemovedParts == nil {
		t.Fatal("expected non-nil empty slices")
	}
}

func TestParseFirstSpanWins(t *testing.T) {
	raw := "<analysis><match_score>10</match_score></analysis><analysis><match_score>90</match_score></analysis>"
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.MatchScore != 10 {
		t.Fatalf("expected first span's score 10, got %d", result.MatchScore)
	}
}

func TestParseFieldPrefixFirstLineWins(t *testing.T) {
	raw := `<analysis><enhanced_parts>
item: First title
item: Second title
description: D
reason: R
</enhanced_parts></analysis>`
	result, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.EnhancedParts) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.EnhancedParts))
	}
	if result.EnhancedParts[0].Item != "First title" {
		t.Fatalf("expected first prefix line to win, got %q", result.EnhancedParts[0].Item)
	}
}
