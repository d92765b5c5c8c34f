package marketplace

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAdminCredentials_Match(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	plain := AdminCredentials{Emails: []string{"admin@x.com"}, Password: "pw"}
	hashed := AdminCredentials{Emails: []string{"admin@x.com"}, Password: "ignored", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		creds    AdminCredentials
		email    string
		password string
		want     bool
	}{
		{"plain ok", plain, "admin@x.com", "pw", true},
		{"plain wrong password", plain, "admin@x.com", "nope", false},
		{"not listed", plain, "other@x.com", "pw", false},
		{"empty password", plain, "admin@x.com", "", false},
		{"hash ok", hashed, "admin@x.com", "hashed-pw", true},
		{"hash ignores plain password", hashed, "admin@x.com", "ignored", false},
		{"disabled", AdminCredentials{Password: "pw"}, "admin@x.com", "pw", false},
		{"no secret configured", AdminCredentials{Emails: []string{"admin@x.com"}}, "admin@x.com", "pw", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.Match(tt.email, tt.password); got != tt.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tt.email, tt.password, got, tt.want)
			}
		})
	}
}

func TestAdminCredentials_AccountDefaults(t *testing.T) {
	acc := AdminCredentials{}.account("admin@x.com")
	if acc.ID != "admin" || acc.Name != "Administrateur" || !acc.IsActive || acc.AvatarRef == "" {
		t.Fatalf("unexpected admin account: %+v", acc)
	}
}
