package faq

// DefaultFAQs is the static fallback dataset for the accordion when the row
// store cannot be reached.
func DefaultFAQs() []FAQ {
	return []FAQ{
		{Question: "Do you work on all truck makes?", Answer: "Yes - Freightliner, Kenworth, Peterbilt, Volvo, Mack, International, and more.", DisplayOrder: 0},
		{Question: "How fast can you get to a breakdown?", Answer: "Our mobile unit typically reaches you within 90 minutes anywhere inside our 100-mile service radius.", DisplayOrder: 1},
		{Question: "Do you offer fleet accounts?", Answer: "We do. Fleet accounts get priority scheduling, net-30 billing, and discounted PM rates.", DisplayOrder: 2},
		{Question: "Are your estimates binding?", Answer: "The price we quote is the price you pay unless we find additional damage, which we always confirm with you first.", DisplayOrder: 3},
	}
}
