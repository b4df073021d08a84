package enhance

import (
	"strings"
	"testing"
)

func TestBuildPromptEmbedsInputs(t *testing.T) {
	resume := `\documentclass{article} unique-resume-content`
	jd := "unique-jd-content: backend engineer"

	prompt := BuildPrompt(resume, jd)
	if !strings.Contains(prompt, resume) {
		t.Fatal("prompt missing resume source")
	}
	if !strings.Contains(prompt, jd) {
		t.Fatal("prompt missing job description")
	}
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	a := BuildPrompt("resume", "jd")
	b := BuildPrompt("resume", "jd")
	if a != b {
		t.Fatal("expected identical prompts for identical inputs")
	}
}

func TestBuildPromptDeclaresMarkerGrammar(t *testing.T) {
	prompt := BuildPrompt("resume", "jd")
	// The parser depends on these exact tags appearing literally in the
	// instructions.
	markers := []string{
		"<rewritten_resume>", "</rewritten_resume>",
		"<analysis>", "</analysis>",
		"<match_score>", "</match_score>",
		"<match_score_explanation>", "</match_score_explanation>",
		"<summary_of_changes>", "</summary_of_changes>",
		"<enhanced_parts>", "</enhanced_parts>",
		"<removed_parts>", "</removed_parts>",
		"---",
		"item:", "description:", "reason:",
	}
	for _, marker := range markers {
		if !strings.Contains(prompt, marker) {
			t.Fatalf("prompt missing marker %q", marker)
		}
	}
	if !strings.Contains(prompt, "Do NOT return JSON") {
		t.Fatal("prompt must forbid JSON output")
	}
}

func TestBuildPromptStatesScoreWeighting(t *testing.T) {
	prompt := BuildPrompt("resume", "jd")
	for _, weight := range []string{"40%", "25%", "10%"} {
		if !strings.Contains(prompt, weight) {
			t.Fatalf("prompt missing score weight %q", weight)
		}
	}
}
