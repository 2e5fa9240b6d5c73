// Command main runs the database seeder for Rolodex.
package main

import (
	"flag"
	"log"

	"rolodex/internal/config"
	"rolodex/internal/database"
	"rolodex/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 20, "Number of users to create")
	contactsPerUser := flag.Int("contacts", 30, "Approximate number of contacts per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding")
	fixtures := flag.String("fixtures", "", "Path to a YAML fixture file seeded before the generated data")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, ~%d contacts each, clean=%v\n", *numUsers, *contactsPerUser, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeederWithOptions(db, seed.SeedOptions{SkipBcrypt: *skipBcrypt})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *fixtures != "" {
		if err := s.LoadFixtures(*fixtures); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	}

	if _, err := s.Seed(*numUsers, *contactsPerUser); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
