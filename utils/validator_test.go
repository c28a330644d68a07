package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "student.one+tag@example.ac.in"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{"", "plain", "a@b", "@example.com", "a b@example.com"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"short1", false},
		{"lettersonly", false},
		{"12345678", false},
		{"passw0rd", true},
		{"A1b2c3d4", true},
	}
	for _, tc := range cases {
		ok, msg := ValidatePassword(tc.password)
		if ok != tc.ok {
			t.Errorf("password %q: expected ok=%v, got ok=%v msg=%q", tc.password, tc.ok, ok, msg)
		}
		if !ok && msg == "" {
			t.Errorf("password %q: rejection must carry a message", tc.password)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  name\x00 "); got != "name" {
		t.Errorf("unexpected sanitized value %q", got)
	}
}
