package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{"trader@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"no-at-sign.example.com", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.valid, ValidateEmail(tc.email), "email: %s", tc.email)
	}
}

func TestValidateMomoPhone(t *testing.T) {
	testCases := []struct {
		phone string
		valid bool
	}{
		{"0770123456", true},
		{"+256770123456", true},
		{"770123456", true},
		{" 0770123456 ", true},
		{"0770123", false},
		{"07701234567", false},
		{"0660123456", false},
		{"+244770123456", false},
		{"abcdefghij", false},
		{"", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.valid, ValidateMomoPhone(tc.phone), "phone: %s", tc.phone)
	}
}

func TestNormalizeMsisdn(t *testing.T) {
	testCases := []struct {
		phone    string
		expected string
	}{
		{"0770123456", "256770123456"},
		{"+256770123456", "256770123456"},
		{"770123456", "256770123456"},
		{" 0770123456 ", "256770123456"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, NormalizeMsisdn(tc.phone), "phone: %s", tc.phone)
	}
}
