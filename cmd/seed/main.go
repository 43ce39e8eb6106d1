package main

import (
	"flag"
	"fmt"
	"log"

	"servicemarket/internal/config"
	"servicemarket/internal/database"
	"servicemarket/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Guest accounts the frontend demo expects. Seeding is idempotent: a rerun
// never duplicates or resets an existing account.
var guestAccounts = []struct {
	Username string
	Email    string
	Password string
	Role     domain.UserRole
}{
	{Username: "andrey", Email: "andrey@guest.com", Password: "asdasd", Role: domain.RoleCustomer},
	{Username: "kevin", Email: "kevin@guest.com", Password: "asdasd24", Role: domain.RoleBusiness},
}

func main() {
	demo := flag.Bool("demo", false, "also create demo offers, orders and reviews")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := seedGuests(db); err != nil {
		log.Fatal("guest seeding failed:", err)
	}

	if *demo {
		if err := seedDemo(db); err != nil {
			log.Fatal("demo seeding failed:", err)
		}
	}

	log.Println("Seeding done")
}

// seedGuests creates the guest users and their profiles inside a single
// transaction, so a crash never leaves a user without a profile.
func seedGuests(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, g := range guestAccounts {
			var count int64
			if err := tx.Model(&domain.User{}).Where("username = ?", g.Username).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				log.Printf("guest %q already exists, skipping", g.Username)
				continue
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(g.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := domain.User{
				Username:     g.Username,
				Email:        g.Email,
				PasswordHash: string(hash),
				Role:         g.Role,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if err := tx.Create(&domain.Profile{UserID: user.ID}).Error; err != nil {
				return err
			}
			log.Printf("guest %q created", g.Username)
		}
		return nil
	})
}

func seedDemo(db *gorm.DB) error {
	log.Println("Creating demo data...")

	var business domain.User
	if err := db.Where("username = ?", "kevin").First(&business).Error; err != nil {
		return err
	}
	var customer domain.User
	if err := db.Where("username = ?", "andrey").First(&customer).Error; err != nil {
		return err
	}

	var offerCount int64
	if err := db.Model(&domain.Offer{}).Where("user_id = ?", business.ID).Count(&offerCount).Error; err != nil {
		return err
	}
	if offerCount > 0 {
		log.Println("demo offers already exist, skipping")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		offer := domain.Offer{
			UserID:      business.ID,
			Title:       "Logo Design",
			Description: "Professional logo design with unlimited concepts",
			Details: []domain.OfferDetail{
				{
					Title:              "Basic Logo",
					Revisions:          2,
					DeliveryTimeInDays: 5,
					Price:              100,
					Features:           []string{"1 concept", "PNG export"},
					OfferType:          domain.TierBasic,
				},
				{
					Title:              "Standard Logo",
					Revisions:          5,
					DeliveryTimeInDays: 7,
					Price:              200,
					Features:           []string{"3 concepts", "PNG + SVG export"},
					OfferType:          domain.TierStandard,
				},
				{
					Title:              "Premium Logo",
					Revisions:          10,
					DeliveryTimeInDays: 10,
					Price:              500,
					Features:           []string{"5 concepts", "full brand kit"},
					OfferType:          domain.TierPremium,
				},
			},
		}
		if err := tx.Create(&offer).Error; err != nil {
			return err
		}

		basic := offer.Details[0]
		order := domain.Order{
			CustomerUserID:     customer.ID,
			BusinessUserID:     business.ID,
			Title:              basic.Title,
			Revisions:          basic.Revisions,
			DeliveryTimeInDays: basic.DeliveryTimeInDays,
			Price:              basic.Price,
			Features:           basic.Features,
			OfferType:          basic.OfferType,
			Status:             domain.OrderInProgress,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		review := domain.Review{
			OfferID:     offer.ID,
			ReviewerID:  customer.ID,
			Rating:      5,
			Description: "Great work, fast delivery",
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		fmt.Printf("demo offer %d, order %d, review %d created\n", offer.ID, order.ID, review.ID)
		return nil
	})
}
