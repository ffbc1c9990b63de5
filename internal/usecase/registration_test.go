package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ValentinaMarinG/react-project-backend/internal/core/domain"
	"github.com/ValentinaMarinG/react-project-backend/internal/infra/config"
	"github.com/ValentinaMarinG/react-project-backend/internal/infra/security"
)

func testValidationSettings() config.ValidationSettings {
	return config.ValidationSettings{
		AllowedEmailDomains: []string{"gmail.com", "outlook.com"},
		AllowedDocumentTypes: []string{
			string(domain.DocumentTypeCitizenID),
			string(domain.DocumentTypeForeignID),
			string(domain.DocumentTypeIdentityCard),
			string(domain.DocumentTypePassport),
		},
		DefaultRole:   "user",
		DefaultActive: false,
		DefaultAvatar: "uploads/user/avatar/avatar3.jpg",
	}
}

func newTestRegistrationService(repo *stubUserRepo) *RegistrationService {
	settings := testValidationSettings()
	return NewRegistrationService(
		repo,
		security.NewBcryptHasher(),
		NewFieldValidator(settings),
		settings,
		nil,
		nil,
	)
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Firstname:    "Ana",
		Lastname:     "Marin",
		Country:      "Colombia",
		Department:   "Antioquia",
		Municipality: "Medellín",
		DocumentType: string(domain.DocumentTypeCitizenID),
		Document:     "1029384756",
		Email:        "Ana.Marin@gmail.com",
		Password:     "secret-password",
	}
}

func TestRegisterUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestRegistrationService(repo)

	user, err := svc.RegisterUser(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("RegisterUser returned error: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected a generated user id")
	}
	if user.Email != "ana.marin@gmail.com" {
		t.Fatalf("email not lowercased: %s", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret-password" {
		t.Fatal("password was not hashed")
	}
	if user.Role != "user" {
		t.Fatalf("unexpected default role: %s", user.Role)
	}
	if user.Active {
		t.Fatal("new accounts default to inactive")
	}
	if user.Avatar != "uploads/user/avatar/avatar3.jpg" {
		t.Fatalf("unexpected default avatar: %s", user.Avatar)
	}

	hasher := security.NewBcryptHasher()
	ok, err := hasher.Verify("secret-password", user.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify the original password (ok=%v err=%v)", ok, err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one Create call, got %d", len(repo.created))
	}
}

func TestRegisterUserExplicitActive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestRegistrationService(repo)

	active := true
	input := validRegisterInput()
	input.Active = &active

	user, err := svc.RegisterUser(context.Background(), input)
	if err != nil {
		t.Fatalf("RegisterUser returned error: %v", err)
	}
	if !user.Active {
		t.Fatal("explicit active flag was ignored")
	}
}

func TestRegisterUserValidationFailureSkipsPersistence(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestRegistrationService(repo)

	cases := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{
			name:    "bad document type",
			mutate:  func(in *RegisterInput) { in.DocumentType = "Licencia" },
			wantErr: ErrInvalidDocumentType,
		},
		{
			name:    "colombia missing municipality",
			mutate:  func(in *RegisterInput) { in.Municipality = "" },
			wantErr: ErrColombiaLocationRequired,
		},
		{
			name:    "missing email",
			mutate:  func(in *RegisterInput) { in.Email = "" },
			wantErr: ErrEmailRequired,
		},
		{
			name:    "bad email domain",
			mutate:  func(in *RegisterInput) { in.Email = "ana@yahoo.com" },
			wantErr: ErrInvalidEmailDomain,
		},
		{
			name:    "missing password",
			mutate:  func(in *RegisterInput) { in.Password = "" },
			wantErr: ErrPasswordRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)

			if _, err := svc.RegisterUser(context.Background(), input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("RegisterUser = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if len(repo.created) != 0 {
		t.Fatalf("validation failures must not persist users, got %d Create calls", len(repo.created))
	}
}

func TestRegisterUserRepositoryErrorBubbles(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("duplicate key")
	svc := newTestRegistrationService(repo)

	_, err := svc.RegisterUser(context.Background(), validRegisterInput())
	if err == nil || !errors.Is(err, repo.createErr) {
		t.Fatalf("expected the raw repository error, got %v", err)
	}
}
