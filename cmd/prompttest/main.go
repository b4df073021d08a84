package main

// Prompt iteration helper:
//   go run ./cmd/prompttest -resume resume.tex -jd jd.txt          # print the built prompt
//   go run ./cmd/prompttest -parse reply.txt                       # parse a saved raw reply
//   go run ./cmd/prompttest -resume resume.tex -jd jd.txt -live    # call Gemini and parse

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"resume-tailor-backend/internal/enhance"
	"resume-tailor-backend/internal/llm/gemini"
	"resume-tailor-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	resumePath := flag.String("resume", "", "Path to LaTeX resume file")
	jdPath := flag.String("jd", "", "Path to job description file")
	parsePath := flag.String("parse", "", "Path to a raw model reply to parse")
	live := flag.Bool("live", false, "Send the prompt to Gemini and parse the reply")
	model := flag.String("model", cfg.GeminiModel, "Gemini model")
	flag.Parse()

	if strings.TrimSpace(*parsePath) != "" {
		raw, err := os.ReadFile(*parsePath)
		if err != nil {
			exitErr(fmt.Sprintf("read reply: %v", err))
		}
		printResult(string(raw))
		return
	}

	if strings.TrimSpace(*resumePath) == "" || strings.TrimSpace(*jdPath) == "" {
		exitErr("resume and jd paths are required")
	}
	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		exitErr(fmt.Sprintf("read resume: %v", err))
	}
	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}

	prompt := enhance.BuildPrompt(string(resumeBytes), string(jdBytes))
	if !*live {
		fmt.Println(prompt)
		return
	}

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:          cfg.GeminiAPIKey,
		Model:           *model,
		Temperature:     cfg.GenTemperature,
		TopP:            cfg.GenTopP,
		MaxOutputTokens: cfg.GenMaxOutputTokens,
		Timeout:         cfg.GeminiTimeout,
	})
	if err != nil {
		exitErr(err.Error())
	}

	raw, err := client.Generate(ctx, prompt)
	if err != nil {
		exitErr(fmt.Sprintf("llm generate: %v", err))
	}
	printResult(raw)
}

func printResult(raw string) {
	result, err := enhance.Parse(raw)
	if err != nil {
		exitErr(fmt.Sprintf("parse reply: %v", err))
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		exitErr(fmt.Sprintf("marshal result: %v", err))
	}
	fmt.Println(string(out))
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
