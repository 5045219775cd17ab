package signalbus

// Well-known channel names. Admin write handlers emit on these; public view
// regions subscribe to them. The name doubles as the key in the shared signal
// store, so renaming a channel is a wire-format change.
const (
	ChannelServices     = "servicesLastUpdated"
	ChannelTestimonials = "testimonialsUpdated"
	ChannelFAQ          = "faqUpdated"
	ChannelContent      = "contentUpdated"
	ChannelSettings     = "settingsUpdated"
	ChannelTimezone     = "timezoneUpdated"
)
