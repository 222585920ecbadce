package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pep299/keyword-analyzer/internal/analysis"
	"github.com/pep299/keyword-analyzer/internal/handlers"
	"github.com/pep299/keyword-analyzer/internal/keyword"
	"github.com/pep299/keyword-analyzer/internal/report"
	"github.com/pep299/keyword-analyzer/internal/storage"
)

func runAnalyze(cmd *cobra.Command, development bool) error {
	cfg, logger, err := setup(development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	server, err := handlers.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer server.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 Starting keyword analysis...")

	run, err := server.ProcessAndPublish(cmd.Context())
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	fmt.Fprintln(out, "✅ Analysis complete!")
	fmt.Fprintf(out, "📄 Page content source: %s (%d related keywords found)\n", run.Page.Source, len(run.ExtractedKeywords))
	printSummary(out, run.Summary)
	for _, location := range run.Artifacts {
		fmt.Fprintf(out, "💾 Saved %s\n", location)
	}
	return nil
}

func printSummary(out io.Writer, summary *analysis.Summary) {
	fmt.Fprintf(out, "📊 Total monthly searches: %d\n", summary.TotalMonthlySearches)
	fmt.Fprintf(out, "💰 Average CPC: %s\n", analysis.FormatCurrency(summary.AverageCPC))
	fmt.Fprintf(out, "🎯 High priority keywords: %d\n", len(summary.HighPriority))
	fmt.Fprintf(out, "📈 Medium priority keywords: %d\n", len(summary.MediumPriority))
	fmt.Fprintf(out, "🏆 Low competition opportunities: %d\n", len(summary.LowCompetition))
	fmt.Fprintf(out, "🧾 Section 179 keywords: %d\n", len(summary.TaxSeasonal))
	fmt.Fprintf(out, "🩺 Treatment-specific keywords: %d\n", len(summary.TreatmentSpecific))
}

// runCSV re-reads the JSON data written by analyze and exports two CSV files
func runCSV(cmd *cobra.Command, development bool) error {
	cfg, logger, err := setup(development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	store := storage.NewLocalStore(cfg.OutputDir)

	data, err := store.Read(ctx, report.DataFile)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s not found in %s, run analyze first", report.DataFile, cfg.OutputDir)
		}
		return err
	}

	summary, err := report.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}

	table, err := keyword.LoadTable(cfg.KeywordFile)
	if err != nil {
		return fmt.Errorf("loading keyword table: %w", err)
	}

	unique := analysis.Unique(summary)
	out := cmd.OutOrStdout()

	if err := publishCSV(ctx, store, report.BucketCSVFile, unique, out); err != nil {
		return err
	}
	if err := publishCSV(ctx, store, report.AllKeywordsCSVFile, analysis.ResultsByVolume(table), out); err != nil {
		return err
	}

	fmt.Fprintf(out, "📋 %d unique bucketed keywords, %d keywords in table\n", len(unique), table.Len())
	return nil
}

// runComprehensive exports the extended table and prints its breakdown
func runComprehensive(cmd *cobra.Command, development bool) error {
	cfg, logger, err := setup(development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	table := keyword.ExtendedTable()
	store := storage.NewLocalStore(cfg.OutputDir)
	out := cmd.OutOrStdout()

	if err := publishCSV(cmd.Context(), store, report.ComprehensiveCSVFile, analysis.ResultsByVolume(table), out); err != nil {
		return err
	}

	b := analysis.Summarize(table)
	fmt.Fprintf(out, "📋 Total keywords: %d\n", b.Keywords)
	fmt.Fprintf(out, "📊 Total monthly searches: %d\n", b.TotalMonthlySearches)
	fmt.Fprintf(out, "💰 Average CPC: %s\n", analysis.FormatCurrency(b.AverageCPC))
	fmt.Fprintln(out, "🏁 Competition breakdown:")
	fmt.Fprintf(out, "   Low: %d\n", b.LowCompetition)
	fmt.Fprintf(out, "   Medium: %d\n", b.MediumCompetition)
	fmt.Fprintf(out, "   High: %d\n", b.HighCompetition)
	return nil
}

func publishCSV(ctx context.Context, store storage.Store, name string, results []analysis.Result, out io.Writer) error {
	data, err := report.CSV(results)
	if err != nil {
		return err
	}

	location, err := store.Publish(ctx, storage.Artifact{Name: name, ContentType: "text/csv", Data: data})
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	fmt.Fprintf(out, "💾 Saved %d keywords to %s\n", len(results), location)
	return nil
}
