package faq

import (
	"time"

	"truckshop-platform/utils"
)

// FAQ is one question/answer pair in the public accordion, ordered by
// display_order then id.
type FAQ struct {
	ID           int64     `db:"id" json:"id"`
	Question     string    `db:"question" json:"question"`
	Answer       string    `db:"answer" json:"answer"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UpsertRequest is the admin write body. DisplayOrder tolerates string input
// and defaults to 0 when absent.
type UpsertRequest struct {
	ID           int64             `json:"id"`
	Question     string            `json:"question"`
	Answer       string            `json:"answer"`
	DisplayOrder utils.FlexibleInt `json:"display_order"`
}
