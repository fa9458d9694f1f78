package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tgn-press/pipeline/internal/llm"
	"github.com/tgn-press/pipeline/internal/metadata"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <request.json>",
	Short: "Resolve publication metadata from a word-box request file",
	Long: `Resolve reads a JSON file with pages of OCR word boxes and an optional
fallback filename, runs the heuristics (and arbitration when configured),
and prints the resolved publication name and date.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read request file: %w", err)
	}

	var req metadata.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request file: %w", err)
	}

	var arbiter metadata.Arbiter
	client := llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	if client.Enabled() {
		arbiter = client
	}

	resolver := metadata.NewResolver(arbiter, logger)
	result := resolver.Resolve(cmd.Context(), req)

	if outputJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	printField("Publication name", result.PublicationName)
	printField("Publication date", result.PublicationDate)
	if !client.Enabled() {
		color.Yellow("Arbitration disabled (no OPENROUTER_API_KEY)")
	}
	return nil
}

func printField(label string, value *string) {
	if value != nil {
		fmt.Printf("%s: %s\n", label, color.GreenString(*value))
		return
	}
	fmt.Printf("%s: %s\n", label, color.RedString("unknown"))
}
