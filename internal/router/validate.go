package router

import (
	"regexp"
	"sort"
	"strings"
)

// ValidationErrors is a field-scoped, client-detected failure: the user
// edits the flagged fields and resubmits. It never reaches the network
// layer; actions short-circuit before any request when validation fails.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString("invalid form:")
	for _, f := range fields {
		sb.WriteString(" ")
		sb.WriteString(f)
	}
	return sb.String()
}

// Field returns the message for a field, empty if the field is fine.
func (v ValidationErrors) Field(name string) string {
	if v == nil {
		return ""
	}
	return v[name]
}

// phonePattern is a convenience check only; the backend owns real
// validation. Optional +, then digits with common separators; Validate
// additionally requires at least six digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9 ().-]+$`)

// OrderForm is the collected field state of the new-order form.
type OrderForm struct {
	Customer string
	Phone    string
	Address  string
	Priority bool
	Position string
}

// Validate checks the required fields. A nil return means the form may be
// submitted.
func (f OrderForm) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.Customer) == "" {
		errs["customer"] = "Please tell us your name"
	}
	phone := strings.TrimSpace(f.Phone)
	if phone == "" || !phonePattern.MatchString(phone) || digitCount(phone) < 6 {
		errs["phone"] = "Please give us your correct phone number. We might need it to contact you."
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Please provide your delivery address"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
