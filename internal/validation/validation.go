package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MinNameLength     = 2
	MaxNameLength     = 60
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit

	MinReadingLevel = 1
	MaxReadingLevel = 10

	MinPlayerAge = 3
	MaxPlayerAge = 14
)

// supportedLanguages are the languages content exists for
var supportedLanguages = map[string]bool{
	"es": true,
	"en": true,
}

// ValidateEmail checks that an address parses as RFC 5322 and has a domain
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateName checks user and player display names
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	length := utf8.RuneCountInString(name)
	if length < MinNameLength {
		return fmt.Errorf("name must be at least %d characters", MinNameLength)
	}
	if length > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

// ValidatePassword enforces the password policy
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// ValidateReadingLevel checks the numeric reading level ordinal
func ValidateReadingLevel(level int) error {
	if level < MinReadingLevel || level > MaxReadingLevel {
		return fmt.Errorf("reading level must be between %d and %d", MinReadingLevel, MaxReadingLevel)
	}
	return nil
}

// ValidateLanguage checks that content exists for the language code
func ValidateLanguage(language string) error {
	if !supportedLanguages[language] {
		return fmt.Errorf("unsupported language %q", language)
	}
	return nil
}

// ValidateAge checks a player profile's age
func ValidateAge(age int) error {
	if age < MinPlayerAge || age > MaxPlayerAge {
		return fmt.Errorf("age must be between %d and %d", MinPlayerAge, MaxPlayerAge)
	}
	return nil
}
