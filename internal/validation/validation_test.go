package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "CorrectHorse9Battery", false},
		{"TooShort", "Short1aB", true},
		{"TooLong", strings.Repeat("Aa1", 50), true},
		{"NoUppercase", "alllowercase123", true},
		{"NoLowercase", "ALLUPPERCASE123", true},
		{"NoDigit", "NoDigitsHereAtAll", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "alice", false},
		{"ValidWithSeparators", "alice_b-c", false},
		{"TooShort", "ab", true},
		{"TooLong", strings.Repeat("a", 31), true},
		{"IllegalCharacters", "alice!", true},
		{"LeadingUnderscore", "_alice", true},
		{"TrailingHyphen", "alice-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("spaces in@example.com"))
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("travel"))
	assert.NoError(t, ValidateSlug("travel-notes-2024"))
	assert.Error(t, ValidateSlug(""))
	assert.Error(t, ValidateSlug("Travel"))
	assert.Error(t, ValidateSlug("double--hyphen"))
	assert.Error(t, ValidateSlug("-leading"))
}
