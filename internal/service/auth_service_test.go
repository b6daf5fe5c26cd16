package service

import (
	"context"
	"errors"
	"testing"

	"github.com/portfolio/internal/db"
)

func TestAuthServiceOnlyAdminMaySignUpAndIn(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewAuthService(gdb, "Owner@Example.com")
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "someone@example.com", "secret123"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if _, err := svc.SignUp(ctx, "owner@example.com", "123"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if _, err := svc.SignUp(ctx, "not-an-email", "secret123"); !errors.Is(err, ErrInvalidEmailAddress) {
		t.Fatalf("expected ErrInvalidEmailAddress, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "owner@example.com", "secret123"); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound before sign up, got %v", err)
	}

	exists, err := svc.AdminExists(ctx)
	if err != nil || exists {
		t.Fatalf("expected no admin yet, got %v (%v)", exists, err)
	}

	profile, err := svc.SignUp(ctx, "owner@example.com", "secret123")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if profile.Email != "owner@example.com" {
		t.Fatalf("expected normalized email, got %q", profile.Email)
	}

	var roles int64
	if err := gdb.Model(&db.UserRole{}).
		Where("profile_id = ? AND role = ?", profile.ID, db.RoleAdmin).
		Count(&roles).Error; err != nil || roles != 1 {
		t.Fatalf("expected admin role granted, got %d (%v)", roles, err)
	}

	if _, err := svc.SignUp(ctx, "owner@example.com", "secret123"); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "owner@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "OWNER@example.com", "secret123"); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "a@b.co", want: true},
		{input: "first.last@example.com", want: true},
		{input: "Name <a@b.co>", want: false},
		{input: "missing-at.example.com", want: false},
		{input: "", want: false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.input); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
