package content

import "time"

// Content is one piece of admin-editable site text, unique on (page, key).
// Rows are seeded from the default table and edited thereafter; they are not
// deleted in normal operation.
type Content struct {
	ID        int64     `db:"id" json:"id"`
	Page      string    `db:"page" json:"page"`
	Key       string    `db:"content_key" json:"content_key"`
	Value     string    `db:"content_value" json:"content_value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UpsertRequest is the admin write body. Upserts on (page, content_key).
type UpsertRequest struct {
	Page  string `json:"page"`
	Key   string `json:"content_key"`
	Value string `json:"content_value"`
}

// FlatKey is the flattened map key used by the content map and the default
// table.
func FlatKey(page, key string) string {
	return page + "." + key
}
