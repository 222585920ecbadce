package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pep299/keyword-analyzer/internal/analysis"
	"github.com/pep299/keyword-analyzer/internal/keyword"
)

// Artifact file names
const (
	ReportFile           = "keyword_analysis_report.md"
	DataFile             = "keyword_analysis_data.json"
	BucketCSVFile        = "keywords.csv"
	AllKeywordsCSVFile   = "all_keywords.csv"
	ComprehensiveCSVFile = "all_keywords_comprehensive.csv"
)

// CSVHeader lists the export columns
var CSVHeader = []string{"Keyword", "Volume", "CPC", "Competition", "Monthly Budget Estimate"}

// Rows flattens results into CSV records, header excluded
func Rows(results []analysis.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Keyword,
			strconv.Itoa(r.Volume),
			r.CPC,
			keyword.Competition(r.Competition).Title(),
			r.MonthlyBudgetEstimate,
		})
	}
	return rows
}

// WriteCSV writes the header and one row per result
func WriteCSV(w io.Writer, results []analysis.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(Rows(results)); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}

// CSV renders results as CSV bytes
func CSV(results []analysis.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders a summary with two-space indentation
func JSON(summary *analysis.Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}
	return data, nil
}

// ReadJSON decodes a summary previously written by JSON
func ReadJSON(r io.Reader) (*analysis.Summary, error) {
	var summary analysis.Summary
	if err := json.NewDecoder(r).Decode(&summary); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	return &summary, nil
}
