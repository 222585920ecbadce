package analysis

import (
	"slices"

	"github.com/pep299/keyword-analyzer/internal/keyword"
)

// Breakdown summarizes a whole table for the comprehensive export
type Breakdown struct {
	Keywords             int     `json:"keywords"`
	TotalMonthlySearches int     `json:"total_monthly_searches"`
	AverageCPC           float64 `json:"average_cpc"`
	LowCompetition       int     `json:"low_competition"`
	MediumCompetition    int     `json:"medium_competition"`
	HighCompetition      int     `json:"high_competition"`
}

// Summarize counts competition tiers and totals across every record
func Summarize(table keyword.Table) Breakdown {
	var b Breakdown
	var totalCPC float64

	for _, rec := range table.Records() {
		b.Keywords++
		b.TotalMonthlySearches += rec.Volume
		totalCPC += rec.CPC

		switch rec.Competition {
		case keyword.CompetitionLow:
			b.LowCompetition++
		case keyword.CompetitionMedium:
			b.MediumCompetition++
		case keyword.CompetitionHigh:
			b.HighCompetition++
		}
	}

	if b.Keywords > 0 {
		b.AverageCPC = totalCPC / float64(b.Keywords)
	}
	return b
}

// ResultsByVolume converts every record of the table and orders them by descending volume
func ResultsByVolume(table keyword.Table) []Result {
	records := table.Records()
	results := make([]Result, len(records))
	for i, rec := range records {
		results[i] = NewResult(rec)
	}
	SortByVolume(results)
	return results
}

// SortByVolume orders results by descending volume in place, keeping the input order on ties
func SortByVolume(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		return b.Volume - a.Volume
	})
}

// Unique flattens the buckets of a summary into one list without repeated keywords.
// The first occurrence wins, walking buckets in AllBuckets order.
func Unique(s *Summary) []Result {
	seen := make(map[string]bool)
	var out []Result

	for _, b := range AllBuckets {
		for _, r := range s.Bucket(b) {
			if seen[r.Keyword] {
				continue
			}
			seen[r.Keyword] = true
			out = append(out, r)
		}
	}

	SortByVolume(out)
	return out
}
