package content

// defaultTable is the static default text the site ships with. Database rows
// override these; any key missing from the database falls back here, so the
// site renders fully even before the first seed or with a partially seeded
// table.
var defaultTable = map[string]string{
	"home.hero_title":         "Heavy-Duty Truck Repair You Can Count On",
	"home.hero_subtitle":      "Certified diesel mechanics, honest pricing, and fast turnaround - day or night.",
	"home.hero_cta":           "Get a Free Quote",
	"home.services_title":     "Our Services",
	"home.services_intro":     "From roadside emergencies to full engine overhauls, we keep your fleet rolling.",
	"home.testimonials_title": "What Drivers Say",
	"home.faq_title":          "Frequently Asked Questions",
	"home.cta_banner":         "Truck down? Call us now - we answer 24/7.",
	"home.phone":              "(555) 014-7788",

	"services.page_title":     "Services & Pricing",
	"services.page_intro":     "Transparent pricing on every job. No surprises on the invoice.",
	"services.sale_badge":     "Limited-time offer",
	"services.call_for_price": "Call for price",
	"services.starting_at":    "Starting at",

	"quote.form_title":     "Request a Quote",
	"quote.form_intro":     "Tell us about your truck and we'll get back to you within the hour.",
	"quote.name_label":     "Your name",
	"quote.phone_label":    "Phone number",
	"quote.email_label":    "Email (optional)",
	"quote.truck_label":    "Truck make / model / year",
	"quote.message_label":  "What's going on with the truck?",
	"quote.submit":         "Send Request",
	"quote.success":        "Thanks! We received your request and will call you shortly.",
	"quote.error_delivery": "We couldn't send your request right now. Please call us directly.",
	"quote.error_config":   "The request form is temporarily unavailable. Please call us directly.",

	"contact.form_title": "Contact Us",
	"contact.address":    "4420 Industrial Parkway, Gary, IN 46406",
	"contact.hours":      "Mon-Sat 7:00-21:00, emergency service 24/7",
	"contact.submit":     "Send Message",
	"contact.success":    "Message sent. We'll get back to you soon.",

	"footer.tagline":    "Family-owned truck repair since 2004.",
	"footer.rights":     "All rights reserved.",
	"footer.local_time": "Shop local time",

	"about.title": "About the Shop",
	"about.body":  "Two service bays, certified diesel techs, and a parts network that gets your rig back on the road fast.",
}

// Defaults returns a copy of the static default content table.
func Defaults() map[string]string {
	out := make(map[string]string, len(defaultTable))
	for k, v := range defaultTable {
		out[k] = v
	}
	return out
}

// DefaultValue returns the default text for a flattened key.
func DefaultValue(key string) (string, bool) {
	v, ok := defaultTable[key]
	return v, ok
}
