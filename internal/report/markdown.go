package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pep299/keyword-analyzer/internal/analysis"
)

// ReportListLimit is how many keywords each report section shows
const ReportListLimit = 5

var printer = message.NewPrinter(language.English)

// Markdown renders the campaign report for a summary
func Markdown(summary *analysis.Summary, brand string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n# %s Google Ads Keyword Analysis Report\n", brand)
	b.WriteString("## Powered by Firecrawl API\n\n")

	b.WriteString("### Executive Summary\n")
	b.WriteString(printer.Sprintf("- **Total Monthly Search Volume:** %d searches\n", summary.TotalMonthlySearches))
	fmt.Fprintf(&b, "- **Average CPC:** %s\n", analysis.FormatCurrency(summary.AverageCPC))
	b.WriteString("- **Primary Opportunity:** Section 179 tax-focused campaigns (year-end urgency)\n\n")

	sections := []struct {
		title  string
		bucket analysis.Bucket
	}{
		{"🎯 HIGH PRIORITY KEYWORDS (High Volume, High Intent)", analysis.BucketHighPriority},
		{"💰 SECTION 179 TAX KEYWORDS (Seasonal Opportunity)", analysis.BucketTaxSeasonal},
		{"🏥 TREATMENT-SPECIFIC KEYWORDS (Targeted Audiences)", analysis.BucketTreatmentSpecific},
		{"💎 LOW COMPETITION OPPORTUNITIES (Cost-Effective)", analysis.BucketLowCompetition},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "### %s\n%s\n\n", s.title, KeywordList(summary.Bucket(s.bucket)))
	}

	b.WriteString(campaignStructure)
	b.WriteString("### 💵 BUDGET RECOMMENDATIONS\n\n")
	b.WriteString(BudgetList(summary.BudgetRecommendations))
	b.WriteString("\n")
	b.WriteString(playbook)

	return b.String()
}

// KeywordList formats the top entries of a bucket
func KeywordList(results []analysis.Result) string {
	if len(results) == 0 {
		return "No keywords in this category"
	}

	if len(results) > ReportListLimit {
		results = results[:ReportListLimit]
	}

	items := make([]string, 0, len(results))
	for _, r := range results {
		items = append(items, printer.Sprintf(
			"- **%s**\n  - Volume: %d searches/month\n  - CPC: %s\n  - Competition: %s\n  - Est. Monthly Budget: %s",
			r.Keyword, r.Volume, r.CPC, r.Competition, r.MonthlyBudgetEstimate,
		))
	}
	return strings.Join(items, "\n")
}

// BudgetList formats the spend strategies
func BudgetList(budgets analysis.BudgetRecommendations) string {
	items := make([]string, 0, 3)
	for _, tier := range budgets.Tiers() {
		items = append(items, fmt.Sprintf(
			"**%s Strategy:**\n- Monthly Budget: %s\n- Focus: %s\n- Expected Results: %s\n",
			strings.ToUpper(tier.Name[:1])+tier.Name[1:], tier.Monthly, tier.Focus, tier.ExpectedClicks,
		))
	}
	return strings.Join(items, "\n")
}

const campaignStructure = `### 📊 RECOMMENDED CAMPAIGN STRUCTURE

#### Campaign 1: Section 179 Tax Benefits
- **Budget:** 40% of total spend
- **Timing:** Increase spend Oct-Dec
- **Landing Page:** Section 179 focused variant
- **Key Message:** "Write off 100% before year-end"

#### Campaign 2: Equipment Purchase Intent
- **Budget:** 30% of total spend
- **Keywords:** Brand and equipment-focused terms
- **Landing Page:** Main product page
- **Key Message:** "FDA-approved, proven ROI"

#### Campaign 3: Treatment-Specific
- **Budget:** 20% of total spend
- **Keywords:** Condition-specific terms
- **Landing Page:** Treatment-specific variants
- **Key Message:** "95% success rate, non-invasive"

#### Campaign 4: Competitor/Comparison
- **Budget:** 10% of total spend
- **Keywords:** "Best", "compare", "vs" terms
- **Landing Page:** Comparison page
- **Key Message:** "Industry-leading technology"

`

const playbook = `### 📈 EXPECTED PERFORMANCE METRICS
- **Click-Through Rate (CTR):** 3-5% for branded, 1-2% for generic
- **Conversion Rate:** 2-4% for high-intent keywords
- **Cost Per Lead:** $150-$300 (based on industry averages)
- **ROI:** 3-5x with proper nurturing

### 🚀 QUICK WINS
1. **Immediate Action:** Launch Section 179 campaign (time-sensitive)
2. **Ad Extensions:** Add sitelinks, callouts, price extensions
3. **Negative Keywords:** Exclude "used", "rental", "cheap"
4. **Geo-Targeting:** Focus on high-income medical practice areas
5. **Ad Schedule:** Increase bids during business hours (8am-6pm)

### 📝 AD COPY RECOMMENDATIONS

**Headline Examples:**
- "Section 179: Write Off 100% | Shockwave Therapy Equipment"
- "FDA-Approved Shockwave Therapy | 95% Success Rate"
- "Save $55K+ in Taxes | Medical Equipment Deduction"

**Description Examples:**
- "Limited time: Claim full tax deduction on shockwave therapy equipment. FDA-approved, proven ROI. Get instant quote."
- "Join 3,000+ practices using our shockwave therapy. Non-invasive treatment, immediate results. Schedule demo today."
`
