package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bazaar/internal/config"
	"bazaar/internal/db"
	"bazaar/internal/model"
	"bazaar/internal/repository"
	"bazaar/internal/service"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "secret1"
)

type seedProduct struct {
	name        string
	description string
	price       float64
}

var demoProducts = []seedProduct{
	{"Mechanical keyboard", "Tenkeyless, brown switches, lightly used", 64.99},
	{"Desk lamp", "Adjustable arm, warm LED", 18.50},
	{"Road bike", "54cm frame, new tires", 420.00},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up demo user: %v", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), service.BcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		user = &model.User{
			Username:     demoUsername,
			Email:        demoEmail,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (%s)", demoUsername, demoEmail)
	} else {
		log.Printf("Demo user %s already present", demoEmail)
	}

	existing, err := productRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list products: %v", err)
	}
	present := make(map[string]bool, len(existing))
	for _, p := range existing {
		present[p.Name] = true
	}

	seeded := 0
	for _, sp := range demoProducts {
		if present[sp.name] {
			continue
		}
		product := &model.Product{
			OwnerID:     user.ID,
			Name:        sp.name,
			Description: sp.description,
			Price:       sp.price,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			log.Fatalf("Failed to seed product %q: %v", sp.name, err)
		}
		seeded++
	}

	log.Printf("Seed completed: %d new products, %d already present", seeded, len(demoProducts)-seeded)
}
