package testimonial

// DefaultTestimonials is the static fallback dataset for the carousel when
// the row store cannot be reached.
func DefaultTestimonials() []Testimonial {
	return []Testimonial{
		{
			Name:   "Mike R.",
			Role:   "Owner-operator",
			Text:   "Blew a turbo outside Gary at 2am. They had me back on the road before sunrise. Unreal.",
			Rating: 5,
		},
		{
			Name:   "Sandra K.",
			Role:   "Fleet manager, K-Line Logistics",
			Text:   "We moved our whole 14-truck fleet to their PM program. Downtime dropped by half.",
			Rating: 5,
		},
		{
			Name:   "Dave T.",
			Role:   "Owner-operator",
			Text:   "Straight shooters. Quoted the brake job, charged the quote. That's rare.",
			Rating: 4,
		},
	}
}
