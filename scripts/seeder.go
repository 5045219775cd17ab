package main

import (
	"log"
	"strings"

	"github.com/spf13/viper"

	"truckshop-platform/config"
	"truckshop-platform/domain/content"
	"truckshop-platform/domain/faq"
	"truckshop-platform/domain/service"
	"truckshop-platform/domain/setting"
	"truckshop-platform/domain/testimonial"
	"truckshop-platform/utils"
)

// Seeds a fresh database with the admin account, the default service
// catalog, testimonials, FAQ entries, page copy and settings. Safe to
// re-run: existing rows are left alone.
func main() {
	config.InitConfig()
	config.InitDB()
	defer config.CloseDB()

	if err := config.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seedAdmin()
	seedServices()
	seedTestimonials()
	seedFAQs()
	seedContent()
	seedSettings()

	log.Println("Seeding complete")
}

func seedAdmin() {
	email := viper.GetString("ADMIN_EMAIL")
	password := viper.GetString("ADMIN_PASSWORD")
	if email == "" || password == "" {
		email = "admin@truckshop.local"
		password = "changeme"
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, seeding default admin account")
	}

	var exists bool
	if err := config.DB.Get(&exists, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email); err != nil {
		log.Fatalf("Failed to check admin account: %v", err)
	}
	if exists {
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	_, err = config.DB.Exec(
		"INSERT INTO users (email, password, role_id, token_version) VALUES (?, ?, 0, 0)",
		email, hashed,
	)
	if err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	log.Printf("Seeded admin account %s", email)
}

func seedServices() {
	if tableHasRows("services") {
		return
	}
	for _, svc := range service.DefaultServices() {
		_, err := config.DB.Exec(`
			INSERT INTO services (service_id, title_key, desc_key, title, description, price,
				price_type, image, discount_percent, sale_start_date, sale_end_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			svc.ServiceID, svc.TitleKey, svc.DescKey, svc.Title, svc.Description, svc.Price,
			svc.PriceType, svc.Image, svc.DiscountPercent, svc.SaleStartDate, svc.SaleEndDate,
		)
		if err != nil {
			log.Fatalf("Failed to seed service %s: %v", svc.ServiceID, err)
		}
	}
	log.Println("Seeded default services")
}

func seedTestimonials() {
	if tableHasRows("testimonials") {
		return
	}
	for _, t := range testimonial.DefaultTestimonials() {
		_, err := config.DB.Exec(
			"INSERT INTO testimonials (name, role, text, rating) VALUES (?, ?, ?, ?)",
			t.Name, t.Role, t.Text, t.Rating,
		)
		if err != nil {
			log.Fatalf("Failed to seed testimonial for %s: %v", t.Name, err)
		}
	}
	log.Println("Seeded default testimonials")
}

func seedFAQs() {
	if tableHasRows("faqs") {
		return
	}
	for _, f := range faq.DefaultFAQs() {
		_, err := config.DB.Exec(
			"INSERT INTO faqs (question, answer, display_order) VALUES (?, ?, ?)",
			f.Question, f.Answer, f.DisplayOrder,
		)
		if err != nil {
			log.Fatalf("Failed to seed FAQ %q: %v", f.Question, err)
		}
	}
	log.Println("Seeded default FAQ entries")
}

func seedContent() {
	if tableHasRows("contents") {
		return
	}
	for flatKey, value := range content.Defaults() {
		page, key, ok := strings.Cut(flatKey, ".")
		if !ok {
			log.Fatalf("Malformed content key %q", flatKey)
		}
		_, err := config.DB.Exec(
			"INSERT INTO contents (page, content_key, content_value) VALUES (?, ?, ?)",
			page, key, value,
		)
		if err != nil {
			log.Fatalf("Failed to seed content %s: %v", flatKey, err)
		}
	}
	log.Println("Seeded default page content")
}

func seedSettings() {
	defaults := map[string]string{
		setting.KeyTimezone:   "America/Chicago",
		setting.KeySnowEffect: "false",
	}
	for key, value := range defaults {
		_, err := config.DB.Exec(
			"INSERT IGNORE INTO settings (setting_key, setting_value) VALUES (?, ?)",
			key, value,
		)
		if err != nil {
			log.Fatalf("Failed to seed setting %s: %v", key, err)
		}
	}
	log.Println("Seeded default settings")
}

func tableHasRows(table string) bool {
	var count int
	if err := config.DB.Get(&count, "SELECT COUNT(*) FROM "+table); err != nil {
		log.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count > 0
}
