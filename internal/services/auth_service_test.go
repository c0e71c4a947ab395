package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/repository"
)

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		fullName  string
		wantField string
	}{
		{name: "short username", username: "ab", password: "secret1", fullName: "Ana", wantField: "username"},
		{name: "short password", username: "ana", password: "12345", fullName: "Ana", wantField: "password"},
		{name: "short name", username: "ana", password: "secret1", fullName: "A", wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestServices(t)
			_, err := svc.Auth.Register(context.Background(), tt.username, tt.password, tt.fullName)

			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Register() error = %v; want ValidationError", err)
			}
			if _, ok := ve.Fields[tt.wantField]; !ok {
				t.Errorf("Fields = %v; want %s", ve.Fields, tt.wantField)
			}
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Auth.Register(ctx, " ana ", "secret1", "Ana Pérez")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" || user.Username != "ana" || user.PasswordHash == "secret1" {
		t.Errorf("Register() = %+v", user)
	}

	if _, err := svc.Auth.Register(ctx, "ana", "other12", "Otra Ana"); !errors.Is(err, repository.ErrUsernameTaken) {
		t.Errorf("duplicate Register() error = %v; want ErrUsernameTaken", err)
	}

	got, err := svc.Auth.Authenticate(ctx, "ana", "secret1")
	if err != nil || got.ID != user.ID {
		t.Errorf("Authenticate() = %v, %v", got, err)
	}
	if _, err := svc.Auth.Authenticate(ctx, "ana", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() wrong password error = %v", err)
	}
	if _, err := svc.Auth.Authenticate(ctx, "nobody", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() unknown user error = %v", err)
	}
}

func TestSessionTokens(t *testing.T) {
	svc, stores := newTestServices(t)
	user := &models.User{ID: "u-42", Username: "ana", Name: "Ana"}

	token, expires, err := svc.Auth.IssueToken(user, time.Now())
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expires = %v; want in the future", expires)
	}

	claims, err := svc.Auth.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != "u-42" || claims.Username != "ana" || claims.Name != "Ana" {
		t.Errorf("claims = %+v", claims)
	}

	expired, _, _ := svc.Auth.IssueToken(user, time.Now().Add(-2*time.Hour))
	if _, err := svc.Auth.ParseToken(expired); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("ParseToken(expired) error = %v; want ErrInvalidSession", err)
	}

	foreign := NewAuthService(stores.Users, "another-secret", time.Hour)
	forged, _, _ := foreign.IssueToken(user, time.Now())
	if _, err := svc.Auth.ParseToken(forged); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("ParseToken(forged) error = %v; want ErrInvalidSession", err)
	}

	if _, err := svc.Auth.ParseToken("garbage"); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("ParseToken(garbage) error = %v; want ErrInvalidSession", err)
	}
}

func TestSeedDefaultUsers(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	n, err := svc.Auth.SeedDefaultUsers(ctx)
	if err != nil || n != 2 {
		t.Fatalf("SeedDefaultUsers() = %d, %v; want 2", n, err)
	}
	if _, err := svc.Auth.Authenticate(ctx, "admin", "admin123"); err != nil {
		t.Errorf("admin login error = %v", err)
	}

	n, err = svc.Auth.SeedDefaultUsers(ctx)
	if err != nil || n != 0 {
		t.Errorf("second SeedDefaultUsers() = %d, %v; want 0", n, err)
	}
}
