package middleware

import "testing"

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category string
		wantErr  bool
	}{
		{"index_coverage", false},
		{"performance", false},
		{"mobile_usability", false},
		{"Index_Coverage", false}, // case-insensitive
		{"backlinks", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := ValidateCategory(tt.category); (err != nil) != tt.wantErr {
			t.Errorf("ValidateCategory(%q) = %v, wantErr %v", tt.category, err, tt.wantErr)
		}
	}
}

func TestValidateSiteURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://www.example.com/", false},
		{"http://example.org", false},
		{"ftp://example.com", true},
		{"https://localhost:8080/", true},
		{"https://192.168.1.1/", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := ValidateSiteURL(tt.url); (err != nil) != tt.wantErr {
			t.Errorf("ValidateSiteURL(%q) = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestValidateTenantID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tenant  string
		wantErr bool
	}{
		{"acme", false},
		{"acme-corp_01", false},
		{"", true},
		{"bad tenant", true},
		{"tenant/../etc", true},
	}
	for _, tt := range tests {
		if err := ValidateTenantID(tt.tenant); (err != nil) != tt.wantErr {
			t.Errorf("ValidateTenantID(%q) = %v, wantErr %v", tt.tenant, err, tt.wantErr)
		}
	}
}

func TestValidateAuditID(t *testing.T) {
	t.Parallel()

	if err := ValidateAuditID("2f1e9a40-1b2c-4d5e-8f90-a1b2c3d4e5f6-audit"); err != nil {
		t.Errorf("valid audit id rejected: %v", err)
	}
	if err := ValidateAuditID("not-an-id"); err == nil {
		t.Errorf("invalid audit id accepted")
	}
}

func TestValidateLimit(t *testing.T) {
	t.Parallel()

	if got := ValidateLimit(0); got != 20 {
		t.Errorf("default limit = %d", got)
	}
	if got := ValidateLimit(500); got != 100 {
		t.Errorf("max limit = %d", got)
	}
	if got := ValidateLimit(5); got != 5 {
		t.Errorf("passthrough limit = %d", got)
	}
}
