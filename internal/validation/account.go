package validation

import (
	"rolodex/internal/models"
)

// CheckAccount runs every field validator applicable to a user account and
// returns the complete set of failures. Cross-record uniqueness (username,
// email, phone) needs a store lookup and is layered on by the caller; see
// UserService.
//
// imageFilename is the original name of an uploaded profile image, or ""
// when no image was submitted.
func CheckAccount(u *models.User, imageFilename string) FieldErrors {
	errs := FieldErrors{}

	if u.Username == "" {
		errs.Add("username", "Username is required.")
	}
	emailRule.check(errs, "email", "Email", u.Email, true)
	nameRule.check(errs, "first_name", "First name", u.FirstName, true)
	nameRule.check(errs, "last_name", "Last name", u.LastName, true)
	phoneRule.check(errs, "contact", "Contact", u.Contact, false)
	checkPhotoExtension(errs, "image", imageFilename)

	return errs
}
