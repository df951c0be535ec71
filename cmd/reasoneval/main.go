// Command reasoneval evaluates the reasoning and logic quality of a
// financial article using an LLM judge and prints the evaluation report.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/insight-ai/reasoneval/internal/config"
	"github.com/insight-ai/reasoneval/internal/evaluator"
	"github.com/insight-ai/reasoneval/internal/textutil"
)

var (
	flagTitle       string
	flagModel       string
	flagTemperature float64
	flagJSON        bool
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "reasoneval <article-file>",
	Short: "Evaluate the reasoning and logic quality of a financial article",
	Long: `reasoneval runs a financial article through four LLM-backed analyses
(reasoning depth, argument structure, internal consistency, and logical
fallacy detection) and prints a scored evaluation report.

The OpenAI API key is read from OPENAI_API_KEY or a .env file.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&flagTitle, "title", "", "article title (defaults to the first line of the file)")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "judge model override")
	rootCmd.Flags().Float64Var(&flagTemperature, "temperature", -1, "sampling temperature override")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "emit the raw evaluation record as JSON")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagModel != "" {
		cfg.ModelName = flagModel
	}
	if flagTemperature >= 0 {
		cfg.Temperature = flagTemperature
	}

	articleBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read article: %w", err)
	}
	articleText := string(articleBytes)

	title := flagTitle
	if title == "" {
		title = textutil.SplitSections(articleText).Title
	}

	eval, err := evaluator.New(cfg, evaluator.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := eval.Evaluate(ctx, articleText, title)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	heading := color.New(color.FgCyan, color.Bold)
	_, _ = heading.Fprintf(os.Stdout, "reasoneval (%s)\n\n", cfg.ModelName)
	fmt.Print(result.Summary())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
