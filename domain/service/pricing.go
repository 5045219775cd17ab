package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// IsSaleActive reports whether the sale window covers now. A sale needs a
// discount percent and both window edges; a half-open window never activates.
func (s Service) IsSaleActive(now time.Time) bool {
	if s.DiscountPercent == nil || s.SaleStartDate == nil || s.SaleEndDate == nil {
		return false
	}
	return !now.Before(*s.SaleStartDate) && !now.After(*s.SaleEndDate)
}

// AsView attaches the derived sale fields.
func (s Service) AsView(now time.Time) View {
	v := View{Service: s}

	if s.Price != nil {
		v.DisplayPrice = *s.Price
	}
	if s.IsSaleActive(now) {
		v.IsSaleActive = true
		if s.Price != nil {
			v.DisplayPrice = DiscountedPrice(*s.Price, *s.DiscountPercent)
		}
	}
	return v
}

// DiscountedPrice applies a percentage discount to a price string, rounding
// to 2 decimals and keeping the original currency symbol prefix. A price
// that does not parse as a number is returned unchanged.
func DiscountedPrice(price string, percent int) string {
	symbol, number := splitCurrency(price)

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return price
	}

	discounted := value * (1 - float64(percent)/100)
	discounted = math.Round(discounted*100) / 100

	return symbol + fmt.Sprintf("%.2f", discounted)
}

// splitCurrency separates a leading currency marker from the numeric part.
// Thousands separators are stripped from the number.
func splitCurrency(price string) (symbol, number string) {
	trimmed := strings.TrimSpace(price)

	i := 0
	for i < len(trimmed) {
		r := rune(trimmed[i])
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			break
		}
		i++
	}

	symbol = strings.TrimSpace(trimmed[:i])
	number = strings.ReplaceAll(strings.TrimSpace(trimmed[i:]), ",", "")
	return symbol, number
}
