package builder

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

// ValidationErrors maps a form field key to a user-facing message.
// Entry keys have the form "<section>-<id>-<field>".
type ValidationErrors map[string]string

// ValidationError is returned by Generate when the form is not valid.
type ValidationError struct {
	Errors ValidationErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

const (
	sectionEducation  = "education"
	sectionExperience = "experience"
	sectionProject    = "project"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate collects every user-correctable problem in form. It never fails
// and returns an empty map for a valid form.
func Validate(form model.FormState) ValidationErrors {
	errs := ValidationErrors{}
	p := trimPersonal(form.Personal)

	errs.addTagErrors(validate.Struct(p), func(field string) string { return field })
	if p.Email == "" && p.Phone == "" {
		errs.set("email", "email or phone is required")
		errs.set("phone", "email or phone is required")
	}
	if strings.TrimSpace(form.Skills) == "" {
		errs.set("skills", "skills are required")
	}

	validEducation := false
	for _, e := range form.Education {
		school, degree := strings.TrimSpace(e.School), strings.TrimSpace(e.Degree)
		switch {
		case school != "" && degree != "":
			validEducation = true
		case school != "":
			errs.set(entryKey(sectionEducation, e.ID, "degree"), "degree is required")
		case degree != "":
			errs.set(entryKey(sectionEducation, e.ID, "school"), "school is required")
		}
		errs.checkPeriod(sectionEducation, e.ID, e.Period)
	}
	if !validEducation && len(form.Education) > 0 {
		first := form.Education[0]
		if strings.TrimSpace(first.School) == "" {
			errs.set(entryKey(sectionEducation, first.ID, "school"), "school is required")
		}
		if strings.TrimSpace(first.Degree) == "" {
			errs.set(entryKey(sectionEducation, first.ID, "degree"), "degree is required")
		}
	}

	for _, e := range form.Experience {
		errs.checkPeriod(sectionExperience, e.ID, e.Period)
	}
	for _, e := range form.Projects {
		errs.checkPeriod(sectionProject, e.ID, e.Period)
	}
	return errs
}

// Generate validates form and builds the document.
func Generate(form model.FormState, opts ...Option) (*model.ResumeDocument, error) {
	if errs := Validate(form); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return Build(form, opts...), nil
}

// checkPeriod requires both month and year on each side once either is set,
// and 4-digit years. The end side is skipped for current entries.
func (v ValidationErrors) checkPeriod(section, id string, p model.Period) {
	p.StartMonth, p.StartYear = strings.TrimSpace(p.StartMonth), strings.TrimSpace(p.StartYear)
	p.EndMonth, p.EndYear = strings.TrimSpace(p.EndMonth), strings.TrimSpace(p.EndYear)
	if p.Current {
		p.EndMonth, p.EndYear = "", ""
	}

	v.checkSide(section, id, "start", p.StartMonth, p.StartYear)
	v.checkSide(section, id, "end", p.EndMonth, p.EndYear)
	v.addTagErrors(validate.Struct(p), func(field string) string { return entryKey(section, id, field) })
}

func (v ValidationErrors) checkSide(section, id, prefix, month, year string) {
	switch {
	case month != "" && year == "":
		v.set(entryKey(section, id, prefix+"Year"), "year is required when a month is set")
	case year != "" && month == "":
		v.set(entryKey(section, id, prefix+"Month"), "month is required when a year is set")
	}
}

func (v ValidationErrors) addTagErrors(err error, key func(field string) string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		v.set(key(fe.Field()), tagMessage(fe))
	}
}

// set keeps the first message recorded for a key.
func (v ValidationErrors) set(key, msg string) {
	if _, ok := v[key]; !ok {
		v[key] = msg
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "email is not valid"
	case "number", "len":
		return "year must have 4 digits"
	default:
		return fe.Field() + " is not valid"
	}
}

func entryKey(section, id, field string) string {
	return section + "-" + id + "-" + field
}
