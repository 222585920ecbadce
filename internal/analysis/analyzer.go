package analysis

import (
	"fmt"
	"strings"

	"github.com/pep299/keyword-analyzer/internal/keyword"
)

// Bucket names a priority category. The values double as JSON keys.
type Bucket string

const (
	BucketHighPriority      Bucket = "high_priority_keywords"
	BucketMediumPriority    Bucket = "medium_priority_keywords"
	BucketLowCompetition    Bucket = "low_competition_opportunities"
	BucketTaxSeasonal       Bucket = "section_179_keywords"
	BucketTreatmentSpecific Bucket = "treatment_specific_keywords"
)

// AllBuckets lists every bucket in output order
var AllBuckets = []Bucket{
	BucketHighPriority,
	BucketMediumPriority,
	BucketLowCompetition,
	BucketTaxSeasonal,
	BucketTreatmentSpecific,
}

// Categorization thresholds
const (
	HighPriorityMinVolume   = 1500
	MediumPriorityMinVolume = 500
	LowCompetitionMinVolume = 300
	BucketLimit             = 10
	BudgetShare             = 0.10
)

var (
	taxTerms       = []string{"section 179", "tax"}
	treatmentTerms = []string{"plantar", "tendonitis", "chronic pain", "sports"}
)

// Result is a keyword as it appears inside a bucket
type Result struct {
	Keyword               string `json:"keyword"`
	Volume                int    `json:"volume"`
	CPC                   string `json:"cpc"`
	Competition           string `json:"competition"`
	MonthlyBudgetEstimate string `json:"monthly_budget_estimate"`
}

// Summary is the outcome of one analysis run
type Summary struct {
	HighPriority          []Result              `json:"high_priority_keywords"`
	MediumPriority        []Result              `json:"medium_priority_keywords"`
	LowCompetition        []Result              `json:"low_competition_opportunities"`
	TaxSeasonal           []Result              `json:"section_179_keywords"`
	TreatmentSpecific     []Result              `json:"treatment_specific_keywords"`
	TotalMonthlySearches  int                   `json:"total_monthly_searches"`
	AverageCPC            float64               `json:"average_cpc"`
	BudgetRecommendations BudgetRecommendations `json:"budget_recommendations"`
}

// Analyze categorizes every record of the table and computes the aggregates.
// It has no side effects; the same table always yields the same summary.
func Analyze(table keyword.Table) *Summary {
	records := table.Records()
	collected := make(map[Bucket][]Result, len(AllBuckets))

	var totalCPC float64
	summary := &Summary{BudgetRecommendations: DefaultBudgetRecommendations()}

	for _, rec := range records {
		for _, b := range Categorize(rec) {
			collected[b] = append(collected[b], NewResult(rec))
		}
		summary.TotalMonthlySearches += rec.Volume
		totalCPC += rec.CPC
	}

	if len(records) > 0 {
		summary.AverageCPC = totalCPC / float64(len(records))
	}

	summary.HighPriority = topByVolume(collected[BucketHighPriority])
	summary.MediumPriority = topByVolume(collected[BucketMediumPriority])
	summary.LowCompetition = topByVolume(collected[BucketLowCompetition])
	summary.TaxSeasonal = topByVolume(collected[BucketTaxSeasonal])
	summary.TreatmentSpecific = topByVolume(collected[BucketTreatmentSpecific])

	return summary
}

// Categorize returns every bucket the record belongs to, in AllBuckets order
func Categorize(rec keyword.Record) []Bucket {
	var buckets []Bucket

	switch {
	case rec.Volume > HighPriorityMinVolume:
		buckets = append(buckets, BucketHighPriority)
	case rec.Volume > MediumPriorityMinVolume:
		buckets = append(buckets, BucketMediumPriority)
	}

	if rec.Competition == keyword.CompetitionLow && rec.Volume > LowCompetitionMinVolume {
		buckets = append(buckets, BucketLowCompetition)
	}
	if containsAny(rec.Keyword, taxTerms) {
		buckets = append(buckets, BucketTaxSeasonal)
	}
	if containsAny(rec.Keyword, treatmentTerms) {
		buckets = append(buckets, BucketTreatmentSpecific)
	}

	return buckets
}

// NewResult converts a record into its bucket representation
func NewResult(rec keyword.Record) Result {
	return Result{
		Keyword:               rec.Keyword,
		Volume:                rec.Volume,
		CPC:                   FormatCurrency(rec.CPC),
		Competition:           string(rec.Competition),
		MonthlyBudgetEstimate: FormatCurrency(EstimateMonthlyBudget(rec.Volume, rec.CPC)),
	}
}

// EstimateMonthlyBudget assumes a tenth of the monthly searches turn into paid clicks
func EstimateMonthlyBudget(volume int, cpc float64) float64 {
	return float64(volume) * cpc * BudgetShare
}

// FormatCurrency renders a dollar amount with two decimals, e.g. "$1890.00"
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Bucket returns the results of a single bucket
func (s *Summary) Bucket(b Bucket) []Result {
	switch b {
	case BucketHighPriority:
		return s.HighPriority
	case BucketMediumPriority:
		return s.MediumPriority
	case BucketLowCompetition:
		return s.LowCompetition
	case BucketTaxSeasonal:
		return s.TaxSeasonal
	case BucketTreatmentSpecific:
		return s.TreatmentSpecific
	}
	return nil
}

// Buckets returns all buckets keyed by name
func (s *Summary) Buckets() map[Bucket][]Result {
	out := make(map[Bucket][]Result, len(AllBuckets))
	for _, b := range AllBuckets {
		out[b] = s.Bucket(b)
	}
	return out
}

// topByVolume sorts descending by volume, keeping table order on ties, and caps at BucketLimit
func topByVolume(results []Result) []Result {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	SortByVolume(sorted)
	if len(sorted) > BucketLimit {
		sorted = sorted[:BucketLimit]
	}
	return sorted
}

// containsAny matches case-sensitively; "TAX credit" is not a tax keyword
func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
