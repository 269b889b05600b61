// Package sanitizer normalizes user-entered profile and vehicle fields
// before validation. All functions are idempotent and never return errors;
// input that cannot be normalized comes back empty.
package sanitizer

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	rePhoneNoise = regexp.MustCompile(`[\s\-().]+`)
	reValidPhone = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	rePlate      = regexp.MustCompile(`^[A-Z]{3}-\d{4}$`)
)

// TrimAndNormalize trims the string and collapses internal whitespace runs
// to single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips formatting noise and validates the bare number:
// optional leading plus, 7 to 15 digits. Unrecognizable input comes back
// empty.
func NormalizePhone(phone string) string {
	p := Pipeline{
		strings.TrimSpace,
		func(s string) string { return rePhoneNoise.ReplaceAllString(s, "") },
	}
	phone = p.Apply(phone)

	if phone == "" || !reValidPhone.MatchString(phone) {
		return ""
	}
	return phone
}

// NormalizeLicensePlate uppercases and trims a plate, then checks the
// three-letters-dash-four-digits format. Invalid plates come back empty.
func NormalizeLicensePlate(plate string) string {
	plate = strings.ToUpper(TrimAndNormalize(plate))
	plate = strings.ReplaceAll(plate, " ", "")

	if !rePlate.MatchString(plate) {
		return ""
	}
	return plate
}

// NormalizeURL lowercases the host, forces https and drops trailing
// slashes. Unparseable input comes back empty.
func NormalizeURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = "https"
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String()
}
