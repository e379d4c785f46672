package main

import (
	"context"
	"log"

	"github.com/imran12mia/hopweb/internal/config"
	"github.com/imran12mia/hopweb/internal/db"
	"github.com/imran12mia/hopweb/internal/domain"
	"github.com/imran12mia/hopweb/internal/repository"
	"github.com/imran12mia/hopweb/internal/service"
)

// Default mobile-payment settings seeded on first run.
var defaultSettings = map[string]string{
	"bkash_number":    "01700000000",
	"nagad_number":    "01800000000",
	"app_notice":      "Welcome to Hopweb Investment App!",
	"deposit_status":  "on",
	"withdraw_status": "on",
}

func main() {
	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD not set")
	}

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	ctx := context.Background()

	settings := repository.NewSettingRepository(pool)
	if err := settings.SeedDefaults(ctx, defaultSettings); err != nil {
		log.Fatalf("seed settings failed: %v", err)
	}
	log.Println("default settings seeded")

	users := repository.NewUserRepository(pool)
	existing, err := users.GetByPhone(ctx, cfg.AdminPhone)
	if err != nil {
		log.Fatalf("lookup admin failed: %v", err)
	}
	if existing != nil {
		log.Printf("admin already exists id=%d\n", existing.ID)
		return
	}

	hash, err := service.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("hash password failed: %v", err)
	}

	admin := &domain.User{
		Phone:        cfg.AdminPhone,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin failed: %v", err)
	}

	log.Printf("admin created id=%d phone=%s\n", admin.ID, admin.Phone)
}
