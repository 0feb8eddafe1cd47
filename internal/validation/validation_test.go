package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "padre@example.com", wantErr: false},
		{name: "valid email with subdomain", email: "user@mail.example.com", wantErr: false},
		{name: "valid email with plus", email: "user+tag@example.com", wantErr: false},
		{name: "missing @", email: "padreexample.com", wantErr: true},
		{name: "missing domain", email: "padre@", wantErr: true},
		{name: "missing local part", email: "@example.com", wantErr: true},
		{name: "empty string", email: "", wantErr: true},
		{name: "spaces in email", email: "padre @example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid name", input: "Lucía García", wantErr: false},
		{name: "single name", input: "Lucía", wantErr: false},
		{name: "empty name", input: "", wantErr: true},
		{name: "name too short", input: "L", wantErr: true},
		{name: "name with hyphen", input: "María-José", wantErr: false},
		{name: "name with apostrophe", input: "O'Brien", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "password123", wantErr: false},
		{name: "minimum length", password: "12345678", wantErr: false},
		{name: "too short", password: "1234567", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateReadingLevel(t *testing.T) {
	tests := []struct {
		level   int
		wantErr bool
	}{
		{1, false},
		{5, false},
		{10, false},
		{0, true},
		{11, true},
		{-3, true},
	}

	for _, tt := range tests {
		err := ValidateReadingLevel(tt.level)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateReadingLevel(%d) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

func TestValidateLanguage(t *testing.T) {
	if err := ValidateLanguage("es"); err != nil {
		t.Errorf("ValidateLanguage(es) = %v, want nil", err)
	}
	if err := ValidateLanguage("klingon"); err == nil {
		t.Error("ValidateLanguage(klingon) = nil, want error")
	}
	if err := ValidateLanguage(""); err == nil {
		t.Error("ValidateLanguage(\"\") = nil, want error")
	}
}
