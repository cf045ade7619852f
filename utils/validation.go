package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// MTN mobile numbers, local (07XXXXXXXX) or international (+2567XXXXXXXX) form
	momoPhoneRegex = regexp.MustCompile(`^(\+256|0)?[7][0-9]{8}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidateMomoPhone(phone string) bool {
	return momoPhoneRegex.MatchString(strings.TrimSpace(phone))
}

// NormalizeMsisdn converts an accepted phone form to the 256XXXXXXXXX
// MSISDN the MoMo collection API expects.
func NormalizeMsisdn(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+256") {
		return strings.TrimPrefix(phone, "+")
	}
	if strings.HasPrefix(phone, "0") {
		return "256" + strings.TrimPrefix(phone, "0")
	}
	return "256" + phone
}
