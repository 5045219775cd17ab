package setting

import "time"

// Well-known setting keys.
const (
	KeyTimezone   = "timezone"
	KeySnowEffect = "snow_effect"
)

// Setting is one site-wide toggle stored as a string.
type Setting struct {
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"setting_key" json:"setting_key"`
	Value     string    `db:"setting_value" json:"setting_value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UpsertRequest is the admin write body. An update to a missing key inserts
// it.
type UpsertRequest struct {
	Key   string `json:"setting_key"`
	Value string `json:"setting_value"`
}
