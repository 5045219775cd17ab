package lead

import "time"

// Lead kinds.
const (
	KindQuote   = "quote"
	KindContact = "contact"
)

// Lead is a captured customer enquiry. Rows are kept even when delivery
// fails so no enquiry is lost to a Telegram outage.
type Lead struct {
	ID        string    `db:"id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	TruckInfo string    `db:"truck_info" json:"truck_info"`
	Message   string    `db:"message" json:"message"`
	Delivered bool      `db:"delivered" json:"delivered"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// QuoteRequest is the payload of POST /api/lead/quote.
type QuoteRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	TruckInfo string `json:"truck_info"`
	Message   string `json:"message"`
}

// ContactRequest is the payload of POST /api/lead/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
