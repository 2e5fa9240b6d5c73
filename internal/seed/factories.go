// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"rolodex/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tunes factory behavior.
type SeedOptions struct {
	// SkipBcrypt stores plaintext passwords for fast local seeding.
	SkipBcrypt bool
	// DryRun logs entities instead of persisting them.
	DryRun bool
	// MaxDays bounds how far in the past created_at timestamps spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

var nonLetter = regexp.MustCompile(`[^A-Za-z ]`)

// fakeName returns a generated name stripped to letters and spaces so it
// passes the form validators when seeded data is edited through the API.
func fakeName(gen func() string) string {
	name := nonLetter.ReplaceAllString(gen(), "")
	if name == "" {
		name = "Sample"
	}
	return name
}

// fakePhone returns a digits-only phone number between 10 and 13 digits.
func fakePhone() string {
	digits := 10 + rand.Intn(4)
	var b strings.Builder
	b.WriteByte(byte('1' + rand.Intn(9)))
	for i := 1; i < digits; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: fakeName(gofakeit.FirstName),
		LastName:  fakeName(gofakeit.LastName),
		Contact:   fakePhone(),
		Bio:       gofakeit.Sentence(10),
		IsActive:  true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildContact constructs a contact for the given owner without persisting it.
// Useful for batching.
func (f *Factory) BuildContact(owner *models.User, overrides ...func(*models.Contact)) *models.Contact {
	contact := &models.Contact{
		UserID:                 owner.ID,
		FirstName:              fakeName(gofakeit.FirstName),
		LastName:               fakeName(gofakeit.LastName),
		Phone:                  fakePhone(),
		Email:                  gofakeit.Email(),
		Gender:                 models.Genders[rand.Intn(len(models.Genders))],
		ContactType:            models.ContactTypes[rand.Intn(len(models.ContactTypes))],
		PreferredCommunication: models.CommunicationMethods[rand.Intn(len(models.CommunicationMethods))],
		JobTitle:               fakeName(gofakeit.JobTitle),
		Company:                fakeName(gofakeit.Company),
		Website:                gofakeit.URL(),
		Address:                gofakeit.Street(),
		City:                   fakeName(gofakeit.City),
		State:                  fakeName(gofakeit.State),
		Country:                fakeName(gofakeit.Country),
		PostalCode:             fmt.Sprintf("%05d", gofakeit.Number(10000, 99999)),
		Notes:                  gofakeit.Sentence(8),
		IsFavorite:             rand.Intn(5) == 0,
		CreatedByID:            &owner.ID,
		UpdatedByID:            &owner.ID,
	}

	if rand.Intn(3) == 0 {
		dob := gofakeit.DateRange(
			time.Now().AddDate(-80, 0, 0),
			time.Now().AddDate(-18, 0, 0),
		)
		contact.DateOfBirth = &dob
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := rand.Intn(maxDays)
	hoursBack := rand.Intn(24)
	contact.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(contact)
	}
	return contact
}

// CreateContact constructs and persists a sample contact for the given owner.
func (f *Factory) CreateContact(owner *models.User, overrides ...func(*models.Contact)) (*models.Contact, error) {
	contact := f.BuildContact(owner, overrides...)

	if f.opts.DryRun {
		f.nextID++
		contact.ID = f.nextID
		log.Printf("[dry-run] CreateContact: %s %s for user %d", contact.FirstName, contact.LastName, owner.ID)
		return contact, nil
	}

	if err := f.db.Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// CreateContactsBatch persists multiple contacts in a single DB call.
func (f *Factory) CreateContactsBatch(contacts []*models.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateContactsBatch: %d contacts", len(contacts))
		return nil
	}
	return f.db.Create(&contacts).Error
}
