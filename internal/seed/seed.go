package seed

import (
	"fmt"
	"log"
	"math/rand"

	"rolodex/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	ContactsPerUser int
	ShouldClean     bool
}

// Seeder populates the database with demo accounts and address books.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, SeedOptions{})}
}

// NewSeederWithOptions creates a Seeder with explicit factory options.
func NewSeederWithOptions(db *gorm.DB, opts SeedOptions) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes every seeded record. Contacts go first so the user
// deletes never trip foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.Contact{}).Error; err != nil {
		return fmt.Errorf("failed to clear contacts: %w", err)
	}
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}

// Seed creates numUsers accounts, each with a spread of contacts around
// contactsPerUser. Returns the created users.
func (s *Seeder) Seed(numUsers, contactsPerUser int) ([]*models.User, error) {
	log.Printf("Seeding %d users with ~%d contacts each...", numUsers, contactsPerUser)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		users = append(users, user)
	}

	total := 0
	for _, user := range users {
		// Spread: some sparse books, some dense ones.
		n := contactsPerUser
		if n > 1 {
			n = contactsPerUser/2 + rand.Intn(contactsPerUser)
		}
		contacts := make([]*models.Contact, 0, n)
		for j := 0; j < n; j++ {
			contacts = append(contacts, s.factory.BuildContact(user))
		}
		if err := s.factory.CreateContactsBatch(contacts); err != nil {
			return nil, fmt.Errorf("failed to create contacts for user %d: %w", user.ID, err)
		}
		total += n
	}

	log.Printf("Seeded %d users and %d contacts", len(users), total)
	return users, nil
}
