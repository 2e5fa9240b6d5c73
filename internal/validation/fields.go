package validation

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// The per-field rules are deliberately simple full-string patterns carried
// over from the product's original behavior: the phone rule rejects
// formatted international numbers and the email rule accepts a few shapes a
// stricter parser would not. Keep the accept/reject boundary stable.
var (
	nameRegex   = regexp.MustCompile(`^[A-Za-z ]+$`)
	phoneRegex  = regexp.MustCompile(`^\d{10,13}$`)
	emailRegex  = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	postalRegex = regexp.MustCompile(`^\d+$`)
	socialRegex = regexp.MustCompile(`^[\w ]+$`)
)

// photoExtensions is the allow-list for uploaded image filenames. The check
// runs before any decode attempt.
var photoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// rule pairs a full-string pattern with the reason reported on mismatch.
// The reason is appended to the field's label, e.g.
// "First name must contain only alphabets and spaces."
type rule struct {
	re     *regexp.Regexp
	reason string
}

var (
	nameRule   = rule{nameRegex, "must contain only alphabets and spaces."}
	phoneRule  = rule{phoneRegex, "must be digits only and 10 to 13 characters long."}
	emailRule  = rule{emailRegex, "must be a valid email address."}
	postalRule = rule{postalRegex, "must contain digits only."}
	socialRule = rule{socialRegex, "can contain letters, numbers, and spaces only."}
)

// check validates one field value against the rule, appending to errs.
// Empty optional values pass; empty required values report a missing-field
// reason instead of a pattern mismatch.
func (r rule) check(errs FieldErrors, field, label, value string, required bool) {
	if value == "" {
		if required {
			errs.Add(field, label+" is required.")
		}
		return
	}
	if !r.re.MatchString(value) {
		errs.Add(field, label+" "+r.reason)
	}
}

// checkDateOfBirth rejects dates strictly after now.
func checkDateOfBirth(errs FieldErrors, field string, dob *time.Time, now time.Time) {
	if dob == nil {
		return
	}
	if dob.After(now) {
		errs.Add(field, "Date of birth cannot be in the future.")
	}
}

// checkPhotoExtension enforces the image extension allow-list on the
// original upload filename. An empty filename means no upload.
func checkPhotoExtension(errs FieldErrors, field, filename string) {
	if filename == "" {
		return
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := photoExtensions[ext]; !ok {
		errs.Add(field, "Only .png, .jpg, and .jpeg files are allowed.")
	}
}

// AllowedPhotoExtension reports whether the filename carries an allowed
// image extension. Exposed for callers that gate uploads before building a
// full record.
func AllowedPhotoExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := photoExtensions[ext]
	return ok
}
