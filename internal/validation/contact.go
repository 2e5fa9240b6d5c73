package validation

import (
	"time"

	"rolodex/internal/models"
)

// CheckContact runs every field validator applicable to a contact record and
// returns the complete set of failures. Contacts carry no cross-record
// uniqueness rule: two owners, or even the same owner, may store identical
// phone numbers.
//
// photoFilename is the original name of an uploaded photo, or "" when no
// photo was submitted. now anchors the date-of-birth check.
func CheckContact(ct *models.Contact, photoFilename string, now time.Time) FieldErrors {
	errs := FieldErrors{}

	nameRule.check(errs, "first_name", "First name", ct.FirstName, true)
	nameRule.check(errs, "last_name", "Last name", ct.LastName, true)
	phoneRule.check(errs, "contact", "Contact", ct.Phone, true)
	phoneRule.check(errs, "alternate_contact", "Alternate contact", ct.AlternatePhone, false)
	emailRule.check(errs, "email", "Email", ct.Email, false)
	emailRule.check(errs, "alternate_email", "Alternate email", ct.AlternateEmail, false)

	checkDateOfBirth(errs, "date_of_birth", ct.DateOfBirth, now)

	if ct.Gender == "" {
		errs.Add("gender", "Gender is required.")
	} else if !models.ValidGender(ct.Gender) {
		errs.Add("gender", "Gender must be one of Male, Female, or Other.")
	}

	if ct.ContactType != "" && !models.ValidContactType(ct.ContactType) {
		errs.Add("contact_type", "Contact type is not a recognized value.")
	}
	if ct.PreferredCommunication != "" && !models.ValidCommunicationMethod(ct.PreferredCommunication) {
		errs.Add("preferred_communication", "Preferred communication is not a recognized value.")
	}

	nameRule.check(errs, "nickname", "Nickname", ct.Nickname, false)
	nameRule.check(errs, "job_title", "Job title", ct.JobTitle, false)
	nameRule.check(errs, "company", "Company name", ct.Company, false)

	if ct.Address == "" {
		errs.Add("address", "Address is required.")
	}
	nameRule.check(errs, "city", "City", ct.City, true)
	nameRule.check(errs, "state", "State", ct.State, true)
	nameRule.check(errs, "country", "Country", ct.Country, true)
	postalRule.check(errs, "postal_code", "Postal code", ct.PostalCode, true)

	socialRule.check(errs, "linkedin_username", "LinkedIn username", ct.LinkedInUsername, false)
	socialRule.check(errs, "twitter_username", "Twitter username", ct.TwitterUsername, false)
	socialRule.check(errs, "facebook_username", "Facebook username", ct.FacebookUsername, false)
	socialRule.check(errs, "instagram_username", "Instagram username", ct.InstagramUsername, false)

	checkPhotoExtension(errs, "contact_photo", photoFilename)

	return errs
}
