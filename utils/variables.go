package utils

import (
	"regexp"
	"strings"

	"outreachly/models"
)

// Matches {{name}} and {{ name }}; placeholder names are case-sensitive.
var placeholderRe = regexp.MustCompile(`{{\s*([a-zA-Z0-9_]+)\s*}}`)

func contactFields(contact *models.Contact) map[string]string {
	return map[string]string{
		"firstName": contact.FirstName,
		"lastName":  contact.LastName,
		"email":     contact.Email,
		"company":   contact.Company,
		"phone":     contact.Phone,
		"fullName":  contact.FullName(),
	}
}

// ReplaceVariables substitutes {{placeholder}} occurrences in a template
// with the contact's field values. Known placeholders with no value
// become empty strings; unrecognized placeholders are left untouched.
func ReplaceVariables(template string, contact *models.Contact) string {
	if template == "" {
		return ""
	}
	fields := contactFields(contact)
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if value, ok := fields[name]; ok {
			return value
		}
		return match
	})
}

// ExtractVariables returns the distinct placeholder names used in a
// template, in order of first appearance.
func ExtractVariables(template string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, match := range placeholderRe.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// ValidateVariables reports whether every known placeholder in the
// template has a non-empty value on the contact. Unknown placeholders
// are counted as missing since they would render verbatim.
func ValidateVariables(template string, contact *models.Contact) (bool, []string) {
	fields := contactFields(contact)
	var missing []string
	for _, name := range ExtractVariables(template) {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return len(missing) == 0, missing
}
