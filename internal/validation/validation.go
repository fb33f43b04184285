// Package validation checks registration form input against the static field
// rules. It is pure: no I/O, no state, input in, result out.
package validation

import (
	"regexp"
	"strings"

	"github.com/eniac-club/regdesk/internal/model"
)

// PhoneRegex is the canonical phone format: literal +212, then three
// space-separated groups of exactly three digits, nothing trailing.
var PhoneRegex = regexp.MustCompile(`^\+212 \d{3} \d{3} \d{3}$`)

// Error messages shown next to the failing field.
const (
	MsgFullNameRequired = "Full name is required"
	MsgPhoneRequired    = "Phone number is required"
	MsgPhoneFormat      = "Please enter a valid phone number in the format: +212 xxx xxx xxx"
	MsgGenderRequired   = "Please select your gender"
	MsgMajorRequired    = "Please select your major"
	MsgYearRequired     = "Please select your year"
)

// Result is the outcome of validating a whole form. Errors maps the field
// name to a human-readable message for every field that failed.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// ValidateFullName rejects empty or all-whitespace names.
func ValidateFullName(name string) (bool, string) {
	if strings.TrimSpace(name) == "" {
		return false, MsgFullNameRequired
	}
	return true, ""
}

// ValidatePhone rejects a missing phone number and a non-empty one that does
// not match the canonical format. The two failures carry different messages.
func ValidatePhone(phone string) (bool, string) {
	if strings.TrimSpace(phone) == "" {
		return false, MsgPhoneRequired
	}
	if !PhoneRegex.MatchString(phone) {
		return false, MsgPhoneFormat
	}
	return true, ""
}

// ValidateGender rejects an unset gender.
func ValidateGender(gender string) (bool, string) {
	if gender == "" {
		return false, MsgGenderRequired
	}
	return true, ""
}

// ValidateMajor rejects an unset major.
func ValidateMajor(major string) (bool, string) {
	if major == "" {
		return false, MsgMajorRequired
	}
	return true, ""
}

// ValidateYear rejects an unset year. The year is NOT cross-checked against
// the selected major here: the form is the only place the pairing is
// enforced, so a spoofed mismatched pair passes validation.
func ValidateYear(year string) (bool, string) {
	if year == "" {
		return false, MsgYearRequired
	}
	return true, ""
}

// Validate runs every field check against data and collects the failures.
func Validate(data model.FormData) Result {
	errors := make(map[string]string)

	if ok, msg := ValidateFullName(data.FullName); !ok {
		errors["fullName"] = msg
	}
	if ok, msg := ValidatePhone(data.PhoneNumber); !ok {
		errors["phoneNumber"] = msg
	}
	if ok, msg := ValidateGender(data.Gender); !ok {
		errors["gender"] = msg
	}
	if ok, msg := ValidateMajor(data.Major); !ok {
		errors["major"] = msg
	}
	if ok, msg := ValidateYear(data.Year); !ok {
		errors["year"] = msg
	}

	return Result{Valid: len(errors) == 0, Errors: errors}
}
