package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"freightdesk/internal/auth"
	"freightdesk/internal/config"
	"freightdesk/internal/db"
	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

// Seeds the bootstrap admin account and a small service catalog. Safe to
// run repeatedly: existing rows are left alone.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	created, err := seedAdmin(ctx, repository.NewUserRepository(gormDB))
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if created {
		log.Println("Admin account created")
	} else {
		log.Println("Admin account already present, skipping")
	}

	seeded, err := seedProducts(ctx, repository.NewProductRepository(gormDB))
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Printf("Seed completed successfully! New products created: %d", seeded)
}

// seedAdmin creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no user with that email exists yet.
func seedAdmin(ctx context.Context, repo repository.UserRepository) (bool, error) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return false, nil
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         auth.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

func seedProducts(ctx context.Context, repo repository.ProductRepository) (int, error) {
	catalog := []model.Product{
		{SKU: "SEA-FCL-20", Name: "Sea freight, 20ft container", Price: decimal.NewFromInt(1450), Currency: "USD", Active: true},
		{SKU: "SEA-FCL-40", Name: "Sea freight, 40ft container", Price: decimal.NewFromInt(2300), Currency: "USD", Active: true},
		{SKU: "SEA-LCL", Name: "Sea freight, LCL per cbm", Price: decimal.NewFromInt(85), Currency: "USD", Active: true},
		{SKU: "AIR-STD", Name: "Air freight, standard per kg", Price: decimal.NewFromFloat(4.20), Currency: "USD", Active: true},
		{SKU: "RAIL-FCL-40", Name: "Rail freight, 40ft container", Price: decimal.NewFromInt(1900), Currency: "USD", Active: true},
		{SKU: "CUST-CLR", Name: "Customs clearance", Price: decimal.NewFromInt(150), Currency: "USD", Active: true},
		{SKU: "INS-CARGO", Name: "Cargo insurance, per declared value percent", Price: decimal.NewFromFloat(0.45), Currency: "USD", Active: true},
	}

	seeded := 0
	for i := range catalog {
		existing, err := repo.FindBySKU(ctx, catalog[i].SKU)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, err
		}
		if existing != nil {
			continue
		}
		if err := repo.Create(ctx, &catalog[i]); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
