// Command seed loads development fixtures: one academy, one coach, and a
// small roster of players. Safe to run repeatedly; existing rows are reused.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/swinglens/swinglens-api/internal/config"
	"github.com/swinglens/swinglens-api/internal/domain"
	"github.com/swinglens/swinglens-api/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	academyRepo := postgres.NewAcademyRepo(db)
	coachRepo := postgres.NewCoachRepo(db)
	playerRepo := postgres.NewPlayerRepo(db)

	academy, err := academyRepo.GetByName(ctx, "TSG Bangalore")
	if errors.Is(err, domain.ErrNotFound) {
		city := "Bangalore"
		academy = &domain.Academy{Name: "TSG Bangalore", City: &city}
		if err := academyRepo.Create(ctx, academy); err != nil {
			log.Fatalf("seed academy: %v", err)
		}
		log.Printf("created academy %s", academy.Name)
	} else if err != nil {
		log.Fatalf("seed academy: %v", err)
	}

	coach, err := coachRepo.GetByEmail(ctx, "coach@tsg.com")
	if errors.Is(err, domain.ErrNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte("test1234"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		phone := "+919000000001"
		coach = &domain.Coach{
			AcademyID:    &academy.ID,
			Name:         "Ramesh Kumar",
			Email:        "coach@tsg.com",
			PasswordHash: string(hash),
			Phone:        &phone,
		}
		if err := coachRepo.Create(ctx, coach); err != nil {
			log.Fatalf("seed coach: %v", err)
		}
		log.Printf("created coach %s", coach.Email)
	} else if err != nil {
		log.Fatalf("seed coach: %v", err)
	}

	players := []domain.Player{
		{Name: "Rahul Sharma", Phone: "+919100000001", SkillLevel: "beginner"},
		{Name: "Priya Patel", Phone: "+919100000002", SkillLevel: "intermediate"},
		{Name: "Arjun Reddy", Phone: "+919100000003", SkillLevel: "advanced"},
	}
	for _, p := range players {
		if _, err := playerRepo.GetByPhone(ctx, p.Phone); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			log.Fatalf("seed player %s: %v", p.Phone, err)
		}
		p.AcademyID = &academy.ID
		p.CoachID = &coach.ID
		if err := playerRepo.Create(ctx, &p); err != nil {
			log.Fatalf("seed player %s: %v", p.Phone, err)
		}
		log.Printf("created player %s (%s)", p.Name, p.Phone)
	}

	log.Println("seed complete")
}
