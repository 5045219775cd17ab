package service

import (
	"time"

	"truckshop-platform/utils"
)

// Price types
const (
	PriceTypeStarting = "starting"
	PriceTypeCall     = "call"
	PriceTypeFixed    = "fixed"
)

// Service is a repair service shown on the public grid. Title and
// description may come either from the content table (via title_key/desc_key)
// or inline.
type Service struct {
	ID              int64      `db:"id" json:"id"`
	ServiceID       string     `db:"service_id" json:"service_id"`
	TitleKey        string     `db:"title_key" json:"title_key"`
	DescKey         string     `db:"desc_key" json:"desc_key"`
	Title           *string    `db:"title" json:"title"`
	Description     *string    `db:"description" json:"description"`
	Price           *string    `db:"price" json:"price"`
	PriceType       string     `db:"price_type" json:"price_type"`
	Image           string     `db:"image" json:"image"`
	DiscountPercent *int       `db:"discount_percent" json:"discount_percent"`
	SaleStartDate   *time.Time `db:"sale_start_date" json:"sale_start_date"`
	SaleEndDate     *time.Time `db:"sale_end_date" json:"sale_end_date"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// View is a Service with the derived sale fields attached. The same
// computation backs the admin preview and the public grid, so both always
// show the same price.
type View struct {
	Service
	IsSaleActive bool   `json:"is_sale_active"`
	DisplayPrice string `json:"display_price"`
}

// UpsertRequest is the admin write body for create and update. Numeric
// fields tolerate string input; date fields accept any parseable format and
// fall back to NULL silently.
type UpsertRequest struct {
	ID              int64             `json:"id"`
	ServiceID       string            `json:"service_id"`
	TitleKey        string            `json:"title_key"`
	DescKey         string            `json:"desc_key"`
	Title           *string           `json:"title"`
	Description     *string           `json:"description"`
	Price           *string           `json:"price"`
	PriceType       string            `json:"price_type"`
	Image           string            `json:"image"`
	DiscountPercent utils.FlexibleInt `json:"discount_percent"`
	SaleStartDate   string            `json:"sale_start_date"`
	SaleEndDate     string            `json:"sale_end_date"`
}

func validPriceType(t string) bool {
	return t == PriceTypeStarting || t == PriceTypeCall || t == PriceTypeFixed
}
