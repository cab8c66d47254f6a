package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"coworkspace/internal/database"
	"coworkspace/internal/domain"
	"coworkspace/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "coworkspace.db"
	}

	logger := logrus.New()
	db, err := database.Connect(dsn, logger)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM status_changes")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM spaces")
	db.Exec("DELETE FROM locations")
	db.Exec("DELETE FROM profiles")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	locations := repository.NewLocationRepository(db)
	spaces := repository.NewSpaceRepository(db)
	bookings := repository.NewBookingRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.Profile{
		Email:        "admin@coworkspace.in",
		PasswordHash: string(adminHash),
		FullName:     "Platform Admin",
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("create admin failed:", err)
	}

	memberHash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
	member := &domain.Profile{
		Email:        "alice@example.com",
		PasswordHash: string(memberHash),
		FullName:     "Alice Kumar",
		Phone:        "+919812345678",
		Role:         domain.RoleUser,
	}
	if err := users.Create(ctx, member); err != nil {
		log.Fatal("create member failed:", err)
	}

	// ================== LOCATIONS ==================
	log.Println("Creating locations...")

	hubs := []*domain.Location{
		{
			Name:        "Indiranagar Hub",
			City:        "Bengaluru",
			Address:     "100 Feet Road, Indiranagar",
			Description: "Flagship hub near the metro with rooftop cafe",
			IsActive:    true,
		},
		{
			Name:        "Bandra West Loft",
			City:        "Mumbai",
			Address:     "Hill Road, Bandra West",
			Description: "Loft-style workspace close to the sea link",
			IsActive:    true,
		},
		{
			Name:        "Cyber City Tower",
			City:        "Gurugram",
			Address:     "DLF Cyber City, Phase 2",
			Description: "Corporate tower floor with conference facilities",
			IsActive:    true,
		},
	}
	for _, l := range hubs {
		if err := locations.Create(ctx, l); err != nil {
			log.Fatal("create location failed:", err)
		}
	}

	// ================== SPACES ==================
	log.Println("Creating spaces...")

	catalog := []*domain.Space{
		{
			LocationID:    hubs[0].ID,
			Name:          "Flex Desk A",
			Type:          domain.SpaceHotDesk,
			Description:   "Open-plan desk with monitor arm",
			PricePerMonth: 8000,
			Capacity:      1,
			Amenities:     []string{"wifi", "coffee", "locker"},
			IsActive:      true,
		},
		{
			LocationID:    hubs[0].ID,
			Name:          "Board Room",
			Type:          domain.SpaceMeetingRoom,
			Description:   "Seats 10, 4K screen and whiteboard wall",
			PricePerMonth: 25000,
			Capacity:      10,
			Amenities:     []string{"wifi", "screen", "whiteboard"},
			IsActive:      true,
		},
		{
			LocationID:    hubs[1].ID,
			Name:          "Studio Office 3",
			Type:          domain.SpacePrivateOffice,
			Description:   "Lockable office for teams of four",
			PricePerMonth: 45000,
			Capacity:      4,
			Amenities:     []string{"wifi", "ac", "parking"},
			IsActive:      true,
		},
		{
			LocationID:    hubs[2].ID,
			Name:          "Tower Desk 12",
			Type:          domain.SpaceHotDesk,
			Description:   "Window desk on the 14th floor",
			PricePerMonth: 15000,
			Capacity:      1,
			Amenities:     []string{"wifi", "coffee"},
			IsActive:      true,
		},
	}
	for _, s := range catalog {
		if err := spaces.Create(ctx, s); err != nil {
			log.Fatal("create space failed:", err)
		}
	}

	// ================== BOOKINGS ==================
	log.Println("Creating demo booking...")

	start := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour).Add(9 * time.Hour)
	demo := &domain.Booking{
		UserID:         member.ID,
		SpaceID:        catalog[3].ID,
		StartTime:      start,
		EndTime:        start.AddDate(0, 3, 0),
		DurationMonths: 3,
		TotalAmount:    45000,
		Status:         domain.BookingPending,
		PaymentState:   domain.PaymentStatePending,
		Notes:          "Team onboarding in September",
	}
	if err := bookings.Create(ctx, demo); err != nil {
		log.Fatal("create booking failed:", err)
	}

	log.Println("Seed complete.")
	log.Println("  admin:  admin@coworkspace.in / admin123")
	log.Println("  member: alice@example.com / member123")
}
