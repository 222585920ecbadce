package scrape

import (
	"slices"
	"strings"

	"github.com/pep299/keyword-analyzer/internal/keyword"
)

// KeyPhrases are the topics looked for in page text
var KeyPhrases = []string{
	"shockwave therapy", "extracorporeal shockwave", "ESWT",
	"section 179", "tax deduction", "FDA approved",
	"pain management", "sports medicine", "orthopedic",
	"tendinopathy", "plantar fasciitis", "chronic pain",
	"non invasive", "regenerative medicine", "ROI",
	"medical equipment", "therapy equipment", "treatment device",
}

// ExtractKeywords returns the table keywords related to key phrases present in content.
// Matching ignores case; the result is sorted and free of duplicates.
func ExtractKeywords(content string, table keyword.Table) []string {
	text := strings.ToLower(content)
	records := table.Records()
	found := make(map[string]bool)

	for _, phrase := range KeyPhrases {
		p := strings.ToLower(phrase)
		if !strings.Contains(text, p) {
			continue
		}
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.Keyword), p) {
				found[rec.Keyword] = true
			}
		}
	}

	out := make([]string, 0, len(found))
	for k := range found {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
