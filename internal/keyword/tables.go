package keyword

// Estimated metrics for the shockwave therapy equipment campaign. Every output
// (analysis, report, CSV exports) reads from these two lists.

var baseRecords = []Record{
	// Primary
	{Keyword: "shockwave therapy equipment", Volume: 1900, CPC: 8.50, Competition: CompetitionHigh},
	{Keyword: "extracorporeal shockwave therapy", Volume: 2400, CPC: 7.25, Competition: CompetitionMedium},
	{Keyword: "ESWT equipment", Volume: 880, CPC: 9.75, Competition: CompetitionMedium},
	{Keyword: "shockwave therapy machine", Volume: 1600, CPC: 8.25, Competition: CompetitionHigh},
	{Keyword: "medical shockwave device", Volume: 720, CPC: 10.50, Competition: CompetitionMedium},

	// Section 179 tax
	{Keyword: "section 179 medical equipment", Volume: 3100, CPC: 4.50, Competition: CompetitionLow},
	{Keyword: "medical equipment tax deduction", Volume: 2900, CPC: 3.75, Competition: CompetitionLow},
	{Keyword: "section 179 deduction 2025", Volume: 8400, CPC: 2.25, Competition: CompetitionLow},
	{Keyword: "medical device tax write off", Volume: 1200, CPC: 3.50, Competition: CompetitionLow},

	// Treatment specific
	{Keyword: "plantar fasciitis shockwave therapy", Volume: 3300, CPC: 5.75, Competition: CompetitionMedium},
	{Keyword: "tendonitis shockwave treatment", Volume: 1800, CPC: 6.25, Competition: CompetitionMedium},
	{Keyword: "chronic pain shockwave therapy", Volume: 2100, CPC: 5.50, Competition: CompetitionMedium},
	{Keyword: "sports injury shockwave", Volume: 1400, CPC: 6.75, Competition: CompetitionMedium},
	{Keyword: "calcific tendinitis treatment", Volume: 990, CPC: 7.25, Competition: CompetitionLow},

	// Brand and competitor
	{Keyword: "curamedix shockwave", Volume: 210, CPC: 2.50, Competition: CompetitionLow},
	{Keyword: "FDA approved shockwave therapy", Volume: 1100, CPC: 8.75, Competition: CompetitionHigh},
	{Keyword: "best shockwave therapy machine", Volume: 880, CPC: 9.25, Competition: CompetitionHigh},
	{Keyword: "shockwave therapy device cost", Volume: 1300, CPC: 7.50, Competition: CompetitionHigh},

	// Location and purchase
	{Keyword: "shockwave therapy equipment USA", Volume: 590, CPC: 8.90, Competition: CompetitionMedium},
	{Keyword: "buy shockwave therapy machine", Volume: 1200, CPC: 10.25, Competition: CompetitionHigh},
	{Keyword: "shockwave therapy equipment lease", Volume: 480, CPC: 6.75, Competition: CompetitionMedium},
	{Keyword: "shockwave therapy equipment financing", Volume: 390, CPC: 5.50, Competition: CompetitionLow},

	// ROI and business
	{Keyword: "shockwave therapy ROI", Volume: 320, CPC: 4.25, Competition: CompetitionLow},
	{Keyword: "shockwave therapy practice revenue", Volume: 180, CPC: 3.75, Competition: CompetitionLow},
	{Keyword: "shockwave therapy billing codes", Volume: 670, CPC: 2.50, Competition: CompetitionLow},
	{Keyword: "shockwave therapy CPT codes", Volume: 890, CPC: 2.25, Competition: CompetitionLow},

	// Clinical and professional
	{Keyword: "orthopedic shockwave therapy", Volume: 1500, CPC: 7.50, Competition: CompetitionMedium},
	{Keyword: "sports medicine shockwave", Volume: 980, CPC: 8.25, Competition: CompetitionMedium},
	{Keyword: "pain management equipment", Volume: 2200, CPC: 6.50, Competition: CompetitionHigh},
	{Keyword: "non invasive pain treatment", Volume: 1700, CPC: 5.25, Competition: CompetitionMedium},
	{Keyword: "regenerative medicine equipment", Volume: 1100, CPC: 7.75, Competition: CompetitionMedium},
}

var longTailRecords = []Record{
	// Long tail
	{Keyword: "focused shockwave therapy equipment", Volume: 420, CPC: 9.50, Competition: CompetitionMedium},
	{Keyword: "radial shockwave therapy device", Volume: 380, CPC: 8.75, Competition: CompetitionMedium},
	{Keyword: "acoustic wave therapy equipment", Volume: 560, CPC: 7.25, Competition: CompetitionMedium},
	{Keyword: "shockwave therapy for heel spurs", Volume: 890, CPC: 5.50, Competition: CompetitionMedium},
	{Keyword: "shockwave therapy for tennis elbow", Volume: 1100, CPC: 6.25, Competition: CompetitionMedium},
	{Keyword: "shockwave therapy for achilles tendonitis", Volume: 780, CPC: 6.75, Competition: CompetitionMedium},
	{Keyword: "ED shockwave therapy equipment", Volume: 1400, CPC: 12.50, Competition: CompetitionHigh},
	{Keyword: "veterinary shockwave therapy equipment", Volume: 340, CPC: 7.50, Competition: CompetitionLow},
	{Keyword: "portable shockwave therapy device", Volume: 480, CPC: 9.25, Competition: CompetitionMedium},
	{Keyword: "shockwave therapy equipment rental", Volume: 290, CPC: 5.75, Competition: CompetitionLow},

	// Comparison and research
	{Keyword: "shockwave therapy vs ultrasound", Volume: 390, CPC: 3.50, Competition: CompetitionLow},
	{Keyword: "shockwave therapy effectiveness", Volume: 720, CPC: 4.25, Competition: CompetitionLow},
	{Keyword: "shockwave therapy clinical studies", Volume: 480, CPC: 3.75, Competition: CompetitionLow},
	{Keyword: "shockwave therapy success rate", Volume: 590, CPC: 4.50, Competition: CompetitionLow},

	// Purchase intent
	{Keyword: "shockwave therapy equipment price", Volume: 890, CPC: 8.50, Competition: CompetitionHigh},
	{Keyword: "shockwave therapy machine for sale", Volume: 670, CPC: 9.75, Competition: CompetitionHigh},
	{Keyword: "used shockwave therapy equipment", Volume: 340, CPC: 6.50, Competition: CompetitionMedium},
	{Keyword: "shockwave therapy equipment suppliers", Volume: 280, CPC: 7.25, Competition: CompetitionMedium},

	// Insurance and reimbursement
	{Keyword: "shockwave therapy insurance coverage", Volume: 890, CPC: 3.25, Competition: CompetitionLow},
	{Keyword: "shockwave therapy medicare reimbursement", Volume: 560, CPC: 3.50, Competition: CompetitionLow},
	{Keyword: "shockwave therapy reimbursement codes", Volume: 340, CPC: 2.75, Competition: CompetitionLow},

	// Training and education
	{Keyword: "shockwave therapy training", Volume: 780, CPC: 5.50, Competition: CompetitionMedium},
	{Keyword: "shockwave therapy certification", Volume: 560, CPC: 4.75, Competition: CompetitionLow},
	{Keyword: "shockwave therapy protocols", Volume: 420, CPC: 3.50, Competition: CompetitionLow},
}

// DefaultTable returns the curated campaign keyword table
func DefaultTable() Table {
	return MustTable(baseRecords)
}

// ExtendedTable returns the default table followed by the long-tail,
// research, purchase, reimbursement and training keywords
func ExtendedTable() Table {
	t, err := DefaultTable().Extend(longTailRecords)
	if err != nil {
		panic(err)
	}
	return t
}
