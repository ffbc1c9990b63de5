package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ValentinaMarinG/react-project-backend/internal/infra/security"
)

func newTestUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, security.NewBcryptHasher(), newTestRegistrationService(repo))
}

func TestUserServiceGetByID(t *testing.T) {
	user := activeUser(t, "secret-password")
	svc := newTestUserService(newStubUserRepo(user))

	got, err := svc.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user id: %s", got.ID)
	}
	if got.PasswordHash != "" {
		t.Fatal("GetByID leaked the password hash")
	}

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserServiceList(t *testing.T) {
	active := activeUser(t, "secret-password")
	inactive := activeUser(t, "secret-password")
	inactive.ID = "user-456"
	inactive.Email = "otro@gmail.com"
	inactive.Active = false

	svc := newTestUserService(newStubUserRepo(active, inactive))

	all, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 users, got %d", len(all))
	}
	for _, u := range all {
		if u.PasswordHash != "" {
			t.Fatal("List leaked a password hash")
		}
	}

	onlyActive := true
	filtered, err := svc.List(context.Background(), &onlyActive)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != active.ID {
		t.Fatalf("active filter returned %d users", len(filtered))
	}
}

func TestUserServiceUpdate(t *testing.T) {
	user := activeUser(t, "secret-password")
	repo := newStubUserRepo(user)
	svc := newTestUserService(repo)

	firstname := "Valentina"
	if err := svc.Update(context.Background(), user.ID, UpdateInput{Firstname: &firstname}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	stored := repo.byID[user.ID]
	if stored.Firstname != "Valentina" {
		t.Fatalf("firstname not applied: %s", stored.Firstname)
	}
	if stored.PasswordHash != user.PasswordHash {
		t.Fatal("password hash changed without a password update")
	}
	if stored.Email != user.Email {
		t.Fatalf("untouched field changed: %s", stored.Email)
	}
}

func TestUserServiceUpdateRehashesPassword(t *testing.T) {
	user := activeUser(t, "secret-password")
	repo := newStubUserRepo(user)
	svc := newTestUserService(repo)

	newPassword := "brand-new-password"
	if err := svc.Update(context.Background(), user.ID, UpdateInput{Password: &newPassword}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	stored := repo.byID[user.ID]
	if stored.PasswordHash == user.PasswordHash {
		t.Fatal("password hash was not replaced")
	}
	if stored.PasswordHash == newPassword {
		t.Fatal("password stored in plaintext")
	}

	hasher := security.NewBcryptHasher()
	ok, err := hasher.Verify(newPassword, stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new hash does not verify the new password (ok=%v err=%v)", ok, err)
	}
}

func TestUserServiceUpdateNotFound(t *testing.T) {
	svc := newTestUserService(newStubUserRepo())

	firstname := "Valentina"
	if err := svc.Update(context.Background(), "missing", UpdateInput{Firstname: &firstname}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserServiceDelete(t *testing.T) {
	user := activeUser(t, "secret-password")
	repo := newStubUserRepo(user)
	svc := newTestUserService(repo)

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != user.ID {
		t.Fatalf("unexpected delete calls: %v", repo.deleted)
	}

	if err := svc.Delete(context.Background(), user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
