package usecases

import (
	"testing"

	"github.com/youssefibrahim146/Volt/apperrors"
)

func TestAdminRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	admin, token, err := env.Admins.Register("ops@example.com", "ops", "panel123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Error("register returned an empty token")
	}

	logged, token, err := env.Admins.Login("ops@example.com", "panel123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != admin.ID || token == "" {
		t.Errorf("login returned id %q and token %q", logged.ID, token)
	}

	if _, _, err := env.Admins.Login("ops@example.com", "wrong"); apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Errorf("wrong password: kind = %v, want KindUnauthorized", apperrors.KindOf(err))
	}
	if _, _, err := env.Admins.Register("ops@example.com", "other", "password"); apperrors.KindOf(err) != apperrors.KindConflict {
		t.Errorf("duplicate email: kind = %v, want KindConflict", apperrors.KindOf(err))
	}
}

func TestAdminAndUserIdentitySpacesAreSeparate(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env, "shared@example.com", 0)

	// the same email can exist in both identity spaces
	if _, _, err := env.Admins.Register("shared@example.com", "ops", "panel123"); err != nil {
		t.Fatalf("admin with user's email: %v", err)
	}

	// the user login path never sees admin accounts
	if _, _, err := env.Users.Login("shared@example.com", "panel123"); apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Error("admin credentials worked on the user login")
	}
}
