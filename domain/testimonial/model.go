package testimonial

import (
	"time"

	"truckshop-platform/utils"
)

// Testimonial is one customer review shown in the public carousel.
type Testimonial struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	Text      string    `db:"text" json:"text"`
	Rating    int       `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UpsertRequest is the admin write body. Rating tolerates string input and
// defaults to 5 when absent.
type UpsertRequest struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Role   string            `json:"role"`
	Text   string            `json:"text"`
	Rating utils.FlexibleInt `json:"rating"`
}

// DefaultRating is used when a write omits the rating.
const DefaultRating = 5
