package analysis

// BudgetTier describes one spend strategy
type BudgetTier struct {
	Monthly        string `json:"monthly"`
	Focus          string `json:"focus"`
	ExpectedClicks string `json:"expected_clicks"`
}

// BudgetRecommendations holds the three fixed spend strategies
type BudgetRecommendations struct {
	Conservative BudgetTier `json:"conservative"`
	Moderate     BudgetTier `json:"moderate"`
	Aggressive   BudgetTier `json:"aggressive"`
}

// NamedBudgetTier pairs a tier with its strategy name
type NamedBudgetTier struct {
	Name string
	BudgetTier
}

func DefaultBudgetRecommendations() BudgetRecommendations {
	return BudgetRecommendations{
		Conservative: BudgetTier{
			Monthly:        "$2,500 - $5,000",
			Focus:          "Section 179 and low competition keywords",
			ExpectedClicks: "400-800 clicks/month",
		},
		Moderate: BudgetTier{
			Monthly:        "$5,000 - $10,000",
			Focus:          "Mix of brand, Section 179, and treatment keywords",
			ExpectedClicks: "800-1,600 clicks/month",
		},
		Aggressive: BudgetTier{
			Monthly:        "$10,000 - $20,000",
			Focus:          "Full keyword portfolio including competitive terms",
			ExpectedClicks: "1,600-3,200 clicks/month",
		},
	}
}

// Tiers returns the strategies from cheapest to most expensive
func (b BudgetRecommendations) Tiers() []NamedBudgetTier {
	return []NamedBudgetTier{
		{Name: "conservative", BudgetTier: b.Conservative},
		{Name: "moderate", BudgetTier: b.Moderate},
		{Name: "aggressive", BudgetTier: b.Aggressive},
	}
}
