// Package validation applies the per-field intake rules to a raw submission.
// A submission is validated as a whole: every failing field is reported, and
// only a fully clean payload produces a normalized record.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
)

// FieldError describes a single rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries the full set of field errors for a rejected submission
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

var (
	phonePattern = regexp.MustCompile(`^0[789][01]\d{8}$`)
	ninPattern   = regexp.MustCompile(`^\d{11}$`)
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

const (
	dateLayout      = "2006-01-02"
	minAge          = 18
	minAcademicYear = 1960
)

const (
	phoneMsg = "must be a valid Nigerian phone number"
	ninMsg   = "must be exactly 11 digits"
	emailMsg = "must be a valid email address"
)

type textRule struct {
	field      string
	label      string
	required   bool
	upper      bool
	lower      bool
	pattern    *regexp.Regexp
	patternMsg string
	oneOf      []string
	assign     func(*model.Officer, string)
}

type dateRule struct {
	field    string
	label    string
	required bool
	assign   func(*model.Officer, time.Time)
}

var textRules = []textRule{
	{field: "surname", label: "Surname", required: true, upper: true, assign: func(o *model.Officer, v string) { o.Surname = v }},
	{field: "firstName", label: "First name", required: true, upper: true, assign: func(o *model.Officer, v string) { o.FirstName = v }},
	{field: "middleName", label: "Middle name", upper: true, assign: func(o *model.Officer, v string) { o.MiddleName = v }},
	{field: "gender", label: "Gender", required: true, oneOf: model.Genders, assign: func(o *model.Officer, v string) { o.Gender = v }},
	{field: "bloodGroup", label: "Blood group", oneOf: model.BloodGroups, assign: func(o *model.Officer, v string) { o.BloodGroup = v }},
	{field: "stateOfOrigin", label: "State of origin", required: true, assign: func(o *model.Officer, v string) { o.StateOfOrigin = v }},
	{field: "lga", label: "LGA", required: true, assign: func(o *model.Officer, v string) { o.LGA = v }},
	{field: "nationality", label: "Nationality", assign: func(o *model.Officer, v string) { o.Nationality = v }},
	{field: "homeAddress", label: "Home address", required: true, assign: func(o *model.Officer, v string) { o.HomeAddress = v }},
	{field: "serviceNumber", label: "Service number", required: true, upper: true, assign: func(o *model.Officer, v string) { o.ServiceNumber = v }},
	{field: "rank", label: "Rank", required: true, oneOf: model.Ranks, assign: func(o *model.Officer, v string) { o.Rank = v }},
	{field: "command", label: "Command", required: true, assign: func(o *model.Officer, v string) { o.Command = v }},
	{field: "unit", label: "Unit", required: true, assign: func(o *model.Officer, v string) { o.Unit = v }},
	{field: "specialization", label: "Specialization", assign: func(o *model.Officer, v string) { o.Specialization = v }},
	{field: "currentPosting", label: "Current posting", required: true, assign: func(o *model.Officer, v string) { o.CurrentPosting = v }},
	{field: "phoneNumber", label: "Phone number", required: true, pattern: phonePattern, patternMsg: phoneMsg, assign: func(o *model.Officer, v string) { o.PhoneNumber = v }},
	{field: "alternatePhone", label: "Alternate phone", pattern: phonePattern, patternMsg: phoneMsg, assign: func(o *model.Officer, v string) { o.AlternatePhone = v }},
	{field: "emailAddress", label: "Email", required: true, lower: true, pattern: emailPattern, patternMsg: emailMsg, assign: func(o *model.Officer, v string) { o.EmailAddress = v }},
	{field: "contactAddress", label: "Contact address", required: true, assign: func(o *model.Officer, v string) { o.ContactAddress = v }},
	{field: "highestQualification", label: "Highest qualification", required: true, assign: func(o *model.Officer, v string) { o.HighestQualification = v }},
	{field: "discipline", label: "Discipline", assign: func(o *model.Officer, v string) { o.Discipline = v }},
	{field: "institution", label: "Institution", assign: func(o *model.Officer, v string) { o.Institution = v }},
	{field: "professionalCertifications", label: "Professional certifications", assign: func(o *model.Officer, v string) { o.ProfessionalCertifications = v }},
	{field: "nokName", label: "Next of kin name", required: true, assign: func(o *model.Officer, v string) { o.NokName = v }},
	{field: "nokRelationship", label: "Next of kin relationship", required: true, assign: func(o *model.Officer, v string) { o.NokRelationship = v }},
	{field: "nokPhone", label: "Next of kin phone", required: true, pattern: phonePattern, patternMsg: phoneMsg, assign: func(o *model.Officer, v string) { o.NokPhone = v }},
	{field: "nokAddress", label: "Next of kin address", required: true, assign: func(o *model.Officer, v string) { o.NokAddress = v }},
	{field: "maritalStatus", label: "Marital status", required: true, oneOf: model.MaritalStatuses, assign: func(o *model.Officer, v string) { o.MaritalStatus = v }},
	{field: "nin", label: "NIN", pattern: ninPattern, patternMsg: ninMsg, assign: func(o *model.Officer, v string) { o.NIN = v }},
	{field: "specialSkills", label: "Special skills", assign: func(o *model.Officer, v string) { o.SpecialSkills = v }},
	{field: "remarks", label: "Remarks", assign: func(o *model.Officer, v string) { o.Remarks = v }},
	{field: "officerSignature", label: "Officer signature", required: true, assign: func(o *model.Officer, v string) { o.OfficerSignature = v }},
}

var dateRules = []dateRule{
	{field: "dateOfBirth", label: "Date of birth", required: true, assign: func(o *model.Officer, t time.Time) { o.DateOfBirth = t }},
	{field: "dateOfEnlistment", label: "Date of enlistment", required: true, assign: func(o *model.Officer, t time.Time) { o.DateOfEnlistment = t }},
	{field: "dateOfLastPromotion", label: "Date of last promotion", assign: func(o *model.Officer, t time.Time) { o.DateOfLastPromotion = &t }},
	{field: "dateOfCurrentPosting", label: "Date of current posting", assign: func(o *model.Officer, t time.Time) { o.DateOfCurrentPosting = &t }},
	{field: "submissionDate", label: "Submission date", required: true, assign: func(o *model.Officer, t time.Time) { o.SubmissionDate = t }},
}

// ValidateSubmission checks a raw public submission against the full rule set
// and returns either a normalized record or every field error found.
func ValidateSubmission(raw map[string]any) (*model.Officer, *Error) {
	o := &model.Officer{}
	errs := applyRules(o, raw, false)
	errs = append(errs, crossFieldErrors(o)...)
	if len(errs) > 0 {
		return nil, &Error{Fields: errs}
	}
	if o.Nationality == "" {
		o.Nationality = "Nigerian"
	}
	return o, nil
}

// ValidatePatch merges a partial update onto an existing record. Absent
// fields keep their stored values; present fields pass the same rules as a
// submission, and the cross-field date rules are re-checked on the result.
func ValidatePatch(existing model.Officer, raw map[string]any) (*model.Officer, *Error) {
	o := existing
	errs := applyRules(&o, raw, true)
	errs = append(errs, crossFieldErrors(&o)...)
	if len(errs) > 0 {
		return nil, &Error{Fields: errs}
	}
	return &o, nil
}

func applyRules(o *model.Officer, raw map[string]any, partial bool) []FieldError {
	var errs []FieldError

	for _, r := range textRules {
		v, present := raw[r.field]
		if !present || v == nil {
			if r.required && !partial {
				errs = append(errs, FieldError{r.field, r.label + " is required"})
			}
			continue
		}
		s, ok := v.(string)
		if !ok {
			errs = append(errs, FieldError{r.field, r.label + " must be a string"})
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			if r.required {
				errs = append(errs, FieldError{r.field, r.label + " is required"})
			} else {
				r.assign(o, "")
			}
			continue
		}
		if r.upper {
			s = strings.ToUpper(s)
		}
		if r.lower {
			s = strings.ToLower(s)
		}
		if len(r.oneOf) > 0 && !containsString(r.oneOf, s) {
			errs = append(errs, FieldError{r.field, r.label + " must be one of: " + strings.Join(r.oneOf, ", ")})
			continue
		}
		if r.pattern != nil && !r.pattern.MatchString(s) {
			errs = append(errs, FieldError{r.field, r.label + " " + r.patternMsg})
			continue
		}
		r.assign(o, s)
	}

	for _, r := range dateRules {
		v, present := raw[r.field]
		if !present || v == nil {
			if r.required && !partial {
				errs = append(errs, FieldError{r.field, r.label + " is required"})
			}
			continue
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			errs = append(errs, FieldError{r.field, r.label + " must be a valid date"})
			continue
		}
		t, err := parseDate(strings.TrimSpace(s))
		if err != nil {
			errs = append(errs, FieldError{r.field, r.label + " must be a valid date (YYYY-MM-DD)"})
			continue
		}
		r.assign(o, t)
	}

	if v, present := raw["yearOfGraduation"]; present && v != nil {
		year, ok := intValue(v)
		maxYear := time.Now().Year()
		if !ok || year < minAcademicYear || year > maxYear {
			errs = append(errs, FieldError{"yearOfGraduation", fmt.Sprintf("Year of graduation must be between %d and %d", minAcademicYear, maxYear)})
		} else {
			o.YearOfGraduation = &year
		}
	}
	if v, present := raw["numberOfDependents"]; present && v != nil {
		n, ok := intValue(v)
		if !ok || n < 0 {
			errs = append(errs, FieldError{"numberOfDependents", "Number of dependents must be zero or greater"})
		} else {
			o.NumberOfDependents = n
		}
	}

	return errs
}

func crossFieldErrors(o *model.Officer) []FieldError {
	var errs []FieldError
	now := time.Now()

	if !o.DateOfBirth.IsZero() && o.AgeAt(now) < minAge {
		errs = append(errs, FieldError{"dateOfBirth", fmt.Sprintf("Officer must be at least %d years old", minAge)})
	}
	if !o.DateOfEnlistment.IsZero() {
		if o.DateOfEnlistment.After(now) {
			errs = append(errs, FieldError{"dateOfEnlistment", "Date of enlistment cannot be in the future"})
		} else if !o.DateOfBirth.IsZero() && o.DateOfEnlistment.Before(o.DateOfBirth) {
			errs = append(errs, FieldError{"dateOfEnlistment", "Date of enlistment cannot be before date of birth"})
		}
	}
	return errs
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64: // JSON numbers decode as float64
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
