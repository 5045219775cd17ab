package service

// DefaultServices is the static fallback dataset the public grid renders
// when the row store cannot be reached. It ships with the application and is
// never derived from the database.
func DefaultServices() []Service {
	str := func(s string) *string { return &s }

	return []Service{
		{
			ServiceID:   "engine-diagnostics",
			TitleKey:    "services.engine_diagnostics_title",
			DescKey:     "services.engine_diagnostics_desc",
			Title:       str("Engine Diagnostics"),
			Description: str("Full computer diagnostics for all major diesel engines."),
			Price:       str("$120"),
			PriceType:   PriceTypeStarting,
			Image:       "/images/services/engine-diagnostics.jpg",
		},
		{
			ServiceID:   "brake-repair",
			TitleKey:    "services.brake_repair_title",
			DescKey:     "services.brake_repair_desc",
			Title:       str("Brake System Repair"),
			Description: str("Air brake inspection, adjustment, and full rebuilds."),
			Price:       str("$250"),
			PriceType:   PriceTypeStarting,
			Image:       "/images/services/brake-repair.jpg",
		},
		{
			ServiceID:   "roadside-assistance",
			TitleKey:    "services.roadside_title",
			DescKey:     "services.roadside_desc",
			Title:       str("24/7 Roadside Assistance"),
			Description: str("Mobile repair unit dispatched anywhere within 100 miles."),
			PriceType:   PriceTypeCall,
			Image:       "/images/services/roadside.jpg",
		},
		{
			ServiceID:   "preventive-maintenance",
			TitleKey:    "services.pm_title",
			DescKey:     "services.pm_desc",
			Title:       str("Preventive Maintenance"),
			Description: str("DOT inspections, oil service, and fleet PM programs."),
			Price:       str("$180"),
			PriceType:   PriceTypeFixed,
			Image:       "/images/services/maintenance.jpg",
		},
	}
}
