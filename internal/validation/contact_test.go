package validation

import (
	"testing"
	"time"

	"rolodex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() *models.Contact {
	return &models.Contact{
		FirstName:   "John",
		LastName:    "Doe",
		Phone:       "1234567890",
		Email:       "john@example.com",
		ContactType: models.ContactTypePersonal,
		Gender:      "Male",
		Address:     "123 Main St",
		City:        "New York",
		State:       "New York",
		Country:     "USA",
		PostalCode:  "12345",
	}
}

func TestCheckContact_Valid(t *testing.T) {
	t.Parallel()

	errs := CheckContact(validContact(), "", time.Now())
	assert.False(t, errs.Any(), "expected no failures, got: %v", errs)
}

func TestCheckContact_SingleViolations(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name   string
		mutate func(*models.Contact)
		field  string
	}{
		{"first name with digits", func(ct *models.Contact) { ct.FirstName = "John123" }, "first_name"},
		{"last name with symbol", func(ct *models.Contact) { ct.LastName = "O'Brien" }, "last_name"},
		{"phone too short", func(ct *models.Contact) { ct.Phone = "12345" }, "contact"},
		{"phone too long", func(ct *models.Contact) { ct.Phone = "12345678901234" }, "contact"},
		{"phone with dashes", func(ct *models.Contact) { ct.Phone = "123-456-7890" }, "contact"},
		{"alternate phone letters", func(ct *models.Contact) { ct.AlternatePhone = "abcdefghij" }, "alternate_contact"},
		{"email missing tld", func(ct *models.Contact) { ct.Email = "john@example" }, "email"},
		{"alternate email missing at", func(ct *models.Contact) { ct.AlternateEmail = "john.example.com" }, "alternate_email"},
		{"gender outside enum", func(ct *models.Contact) { ct.Gender = "Unknown" }, "gender"},
		{"contact type outside enum", func(ct *models.Contact) { ct.ContactType = "acquaintance" }, "contact_type"},
		{"communication outside enum", func(ct *models.Contact) { ct.PreferredCommunication = "carrier pigeon" }, "preferred_communication"},
		{"nickname with digits", func(ct *models.Contact) { ct.Nickname = "JD2" }, "nickname"},
		{"job title with digits", func(ct *models.Contact) { ct.JobTitle = "Engineer II2" }, "job_title"},
		{"company with punctuation", func(ct *models.Contact) { ct.Company = "Acme, Inc." }, "company"},
		{"city with digits", func(ct *models.Contact) { ct.City = "City17" }, "city"},
		{"state with digits", func(ct *models.Contact) { ct.State = "NY1" }, "state"},
		{"country with digits", func(ct *models.Contact) { ct.Country = "USA1" }, "country"},
		{"postal code with letters", func(ct *models.Contact) { ct.PostalCode = "AB123" }, "postal_code"},
		{"linkedin with symbol", func(ct *models.Contact) { ct.LinkedInUsername = "john-doe" }, "linkedin_username"},
		{"twitter with at sign", func(ct *models.Contact) { ct.TwitterUsername = "@john" }, "twitter_username"},
		{"facebook with dot", func(ct *models.Contact) { ct.FacebookUsername = "john.doe" }, "facebook_username"},
		{"instagram with dot", func(ct *models.Contact) { ct.InstagramUsername = "john.doe" }, "instagram_username"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ct := validContact()
			tc.mutate(ct)
			errs := CheckContact(ct, "", now)
			require.True(t, errs.Any(), "expected a failure for %s", tc.field)
			assert.Contains(t, errs, tc.field)
			assert.Len(t, errs, 1, "exactly one field should fail, got: %v", errs)
		})
	}
}

func TestCheckContact_ShortPhoneReason(t *testing.T) {
	t.Parallel()

	ct := validContact()
	ct.Phone = "12345"
	errs := CheckContact(ct, "", time.Now())
	require.Contains(t, errs, "contact")
	assert.Contains(t, errs["contact"][0], "10 to 13")
}

func TestCheckContact_DateOfBirth(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("tomorrow is rejected", func(t *testing.T) {
		t.Parallel()
		ct := validContact()
		tomorrow := now.AddDate(0, 0, 1)
		ct.DateOfBirth = &tomorrow
		errs := CheckContact(ct, "", now)
		assert.Contains(t, errs, "date_of_birth")
	})

	t.Run("past date is accepted", func(t *testing.T) {
		t.Parallel()
		ct := validContact()
		past := now.AddDate(-30, 0, 0)
		ct.DateOfBirth = &past
		errs := CheckContact(ct, "", now)
		assert.False(t, errs.Any(), "unexpected failures: %v", errs)
	})
}

func TestCheckContact_PhotoExtension(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		filename string
		ok       bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"PHOTO.JPG", true},
		{"notes.txt", false},
		{"photo.gif", false},
		{"photo.webp", false},
		{"photo", false},
	}
	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			t.Parallel()
			errs := CheckContact(validContact(), tc.filename, now)
			if tc.ok {
				assert.NotContains(t, errs, "contact_photo")
			} else {
				require.Contains(t, errs, "contact_photo")
				assert.Contains(t, errs["contact_photo"][0], ".jpeg")
			}
		})
	}
}

func TestCheckContact_AccumulatesAllFailures(t *testing.T) {
	t.Parallel()

	now := time.Now()
	ct := validContact()
	ct.FirstName = "John123"
	ct.Phone = "12345"
	ct.Email = "not-an-email"
	tomorrow := now.AddDate(0, 0, 1)
	ct.DateOfBirth = &tomorrow

	errs := CheckContact(ct, "resume.pdf", now)
	require.True(t, errs.Any())
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "contact")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "date_of_birth")
	assert.Contains(t, errs, "contact_photo")
	assert.Len(t, errs, 5, "every violated field reports, nothing else: %v", errs)
}

func TestCheckContact_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	errs := CheckContact(&models.Contact{}, "", time.Now())
	for _, field := range []string{
		"first_name", "last_name", "contact", "gender",
		"address", "city", "state", "country", "postal_code",
	} {
		assert.Contains(t, errs, field)
	}
	// Optional fields left empty never report.
	assert.NotContains(t, errs, "email")
	assert.NotContains(t, errs, "nickname")
	assert.NotContains(t, errs, "date_of_birth")
}

func TestCheckContact_EmailBoundary(t *testing.T) {
	t.Parallel()

	// The email pattern is intentionally loose; consecutive dots in the
	// local part are accepted. Preserve that boundary.
	ct := validContact()
	ct.Email = "john..doe@example.com"
	errs := CheckContact(ct, "", time.Now())
	assert.NotContains(t, errs, "email")
}
