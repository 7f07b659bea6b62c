package wizard

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"parkcareers/internal/domain/draft"
)

var (
	fullNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .\-]{2,99}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^(\+251|0)?[79]\d{8}$`)
)

var genders = map[string]bool{
	"Male":   true,
	"Female": true,
}

// ValidateStep checks the rules for one step and returns the field error
// map. Only steps 1 and 4 carry blocking rules; the rest always pass. The
// returned map fully replaces any previous one.
func ValidateStep(step int, d *draft.ApplicationDraft) map[string]string {
	switch step {
	case StepPersonal:
		return validatePersonal(d.PersonalDetails)
	case StepSkillsResume:
		return validateResume(d.Resume)
	default:
		return map[string]string{}
	}
}

func validatePersonal(p draft.PersonalDetails) map[string]string {
	errs := map[string]string{}

	fullName := strings.TrimSpace(p.FullName)
	if fullName == "" {
		errs["fullName"] = "Full name is required."
	} else if !fullNamePattern.MatchString(fullName) {
		errs["fullName"] = "Name must be 3-100 characters (letters only)."
	}

	email := strings.TrimSpace(p.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required."
	case utf8.RuneCountInString(email) > 100:
		errs["email"] = "Email is too long."
	case !emailPattern.MatchString(email):
		errs["email"] = "Enter a valid email address."
	}

	phone := strings.ReplaceAll(strings.TrimSpace(p.Phone), " ", "")
	if phone == "" {
		errs["phone"] = "Phone number is required."
	} else if !phonePattern.MatchString(phone) {
		errs["phone"] = "Enter a valid Ethiopian phone number."
	}

	if strings.TrimSpace(p.Gender) == "" {
		errs["gender"] = "Gender is required."
	} else if !genders[p.Gender] {
		errs["gender"] = "Gender is required."
	}

	address := strings.TrimSpace(p.Address)
	if address == "" {
		errs["address"] = "Address is required."
	} else if count := utf8.RuneCountInString(address); count < 5 || count > 200 {
		errs["address"] = "Address must be 5-200 characters."
	}

	return errs
}

func validateResume(resume *draft.ResumeFile) map[string]string {
	errs := map[string]string{}
	if resume == nil {
		errs["resume"] = "Resume is required."
		return errs
	}
	if resume.Size > draft.MaxResumeBytes {
		errs["resume"] = "File size exceeds 10MB limit."
	}
	return errs
}
