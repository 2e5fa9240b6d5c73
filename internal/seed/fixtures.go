package seed

import (
	"fmt"
	"os"

	"rolodex/internal/models"

	"gopkg.in/yaml.v3"
)

// fixtureContact is one contact entry in a fixture file. Unset fields fall
// back to generated values.
type fixtureContact struct {
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Contact     string `yaml:"contact"`
	Email       string `yaml:"email"`
	Gender      string `yaml:"gender"`
	ContactType string `yaml:"contact_type"`
	City        string `yaml:"city"`
	State       string `yaml:"state"`
	Country     string `yaml:"country"`
	IsFavorite  bool   `yaml:"is_favorite"`
}

// fixtureUser is one account entry in a fixture file.
type fixtureUser struct {
	Username  string           `yaml:"username"`
	Email     string           `yaml:"email"`
	FirstName string           `yaml:"first_name"`
	LastName  string           `yaml:"last_name"`
	Contact   string           `yaml:"contact"`
	Contacts  []fixtureContact `yaml:"contacts"`
}

type fixtureFile struct {
	Users []fixtureUser `yaml:"users"`
}

// LoadFixtures seeds deterministic accounts and contacts from a YAML file.
// Generated values fill any field the fixture leaves empty, so fixtures only
// need to pin what a demo or test actually depends on.
func (s *Seeder) LoadFixtures(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture file: %w", err)
	}

	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse fixture file: %w", err)
	}

	for i, fu := range file.Users {
		user, err := s.factory.CreateUser(func(u *models.User) {
			applyNonEmpty(&u.Username, fu.Username)
			applyNonEmpty(&u.Email, fu.Email)
			applyNonEmpty(&u.FirstName, fu.FirstName)
			applyNonEmpty(&u.LastName, fu.LastName)
			applyNonEmpty(&u.Contact, fu.Contact)
		})
		if err != nil {
			return fmt.Errorf("failed to create fixture user %d: %w", i, err)
		}

		for j, fc := range fu.Contacts {
			_, err := s.factory.CreateContact(user, func(ct *models.Contact) {
				applyNonEmpty(&ct.FirstName, fc.FirstName)
				applyNonEmpty(&ct.LastName, fc.LastName)
				applyNonEmpty(&ct.Phone, fc.Contact)
				applyNonEmpty(&ct.Email, fc.Email)
				applyNonEmpty(&ct.Gender, fc.Gender)
				applyNonEmpty(&ct.City, fc.City)
				applyNonEmpty(&ct.State, fc.State)
				applyNonEmpty(&ct.Country, fc.Country)
				if fc.ContactType != "" {
					ct.ContactType = models.ContactType(fc.ContactType)
				}
				if fc.IsFavorite {
					ct.IsFavorite = true
				}
			})
			if err != nil {
				return fmt.Errorf("failed to create fixture contact %d for user %s: %w", j, user.Username, err)
			}
		}
	}

	return nil
}

func applyNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
