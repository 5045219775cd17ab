package service

import (
	"testing"
	"time"
)

func svcWithSale(price string, percent int, start, end time.Time) Service {
	return Service{
		ServiceID:       "brake-repair",
		Price:           &price,
		PriceType:       PriceTypeStarting,
		DiscountPercent: &percent,
		SaleStartDate:   &start,
		SaleEndDate:     &end,
	}
}

func TestSaleWindowActive(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := svcWithSale("$100", 20, now.Add(-time.Hour), now.Add(time.Hour))

	if !svc.IsSaleActive(now) {
		t.Fatal("Sale inside the window should be active")
	}

	view := svc.AsView(now)
	if !view.IsSaleActive {
		t.Error("View should carry is_sale_active")
	}
	if view.DisplayPrice != "$80.00" {
		t.Errorf("Expected $80.00, got %s", view.DisplayPrice)
	}
}

func TestSaleWindowExpired(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := svcWithSale("$100", 20, now.Add(-2*time.Hour), now.Add(-time.Hour))

	if svc.IsSaleActive(now) {
		t.Fatal("Sale past the window should be inactive")
	}

	view := svc.AsView(now)
	if view.IsSaleActive {
		t.Error("View should not carry is_sale_active")
	}
	if view.DisplayPrice != "$100" {
		t.Errorf("Expected original $100, got %s", view.DisplayPrice)
	}
}

func TestSaleWindowBoundaries(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	svc := svcWithSale("$100", 10, start, end)

	// The window is inclusive on both edges.
	if !svc.IsSaleActive(start) {
		t.Error("Sale should be active exactly at start")
	}
	if !svc.IsSaleActive(end) {
		t.Error("Sale should be active exactly at end")
	}
	if svc.IsSaleActive(end.Add(time.Second)) {
		t.Error("Sale should be inactive past end")
	}
}

func TestSaleRequiresDiscountAndWindow(t *testing.T) {
	now := time.Now()
	price := "$100"
	percent := 20

	svc := Service{Price: &price, DiscountPercent: &percent}
	if svc.IsSaleActive(now) {
		t.Error("Discount without a window should not activate a sale")
	}

	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	svc = Service{Price: &price, SaleStartDate: &start, SaleEndDate: &end}
	if svc.IsSaleActive(now) {
		t.Error("Window without a discount should not activate a sale")
	}
}

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		price   string
		percent int
		want    string
	}{
		{"$100", 20, "$80.00"},
		{"$99.99", 10, "$89.99"},
		{"$1,250", 50, "$625.00"},
		{"100", 25, "75.00"},
		{"€200", 15, "€170.00"},
		{"Call for price", 20, "Call for price"}, // unparseable stays as-is
	}

	for _, tc := range cases {
		got := DiscountedPrice(tc.price, tc.percent)
		if got != tc.want {
			t.Errorf("DiscountedPrice(%q, %d) = %q, want %q", tc.price, tc.percent, got, tc.want)
		}
	}
}
