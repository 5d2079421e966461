package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "user@example.com", true},
		{"valid with plus", "user+tag@example.com", true},
		{"leading whitespace", "  user@example.com", true},
		{"empty", "", false},
		{"no at sign", "userexample.com", false},
		{"display name form", "User <user@example.com>", false},
		{"just at", "@", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEmail(tt.input); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already safe", "photo-1.jpg", "photo-1.jpg"},
		{"spaces", "my photo.jpg", "my_photo.jpg"},
		{"path traversal", "../../etc/passwd", ".._.._etc_passwd"},
		{"unicode", "héro.png", "h_ro.png"},
		{"query characters", "a?b=c&d.png", "a_b_c_d.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFilename(tt.input); got != tt.want {
				t.Errorf("SafeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{"normal name", "John Doe", "unknown", "John_Doe"},
		{"empty uses fallback", "", "unknown-veteran", "unknown-veteran"},
		{"whitespace only uses fallback", "   ", "unknown-veteran", "unknown-veteran"},
		{"slashes", "Doe/John", "unknown", "Doe_John"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeName(tt.input, tt.fallback); got != tt.want {
				t.Errorf("SafeName(%q, %q) = %q, want %q", tt.input, tt.fallback, got, tt.want)
			}
		})
	}
}
