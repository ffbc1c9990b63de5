package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ValentinaMarinG/react-project-backend/internal/core/domain"
	"github.com/ValentinaMarinG/react-project-backend/internal/core/port"
	"github.com/ValentinaMarinG/react-project-backend/internal/infra/config"
	"github.com/ValentinaMarinG/react-project-backend/internal/infra/logger"
)

// RegistrationService handles new account creation. Validation runs before
// any persistence mutation: a rejected request never writes.
type RegistrationService struct {
	users     port.UserRepository
	hasher    port.PasswordHasher
	validator *FieldValidator
	defaults  config.ValidationSettings
	events    port.EventPublisher
	logger    *zap.Logger
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(
	users port.UserRepository,
	hasher port.PasswordHasher,
	validator *FieldValidator,
	defaults config.ValidationSettings,
	events port.EventPublisher,
	log *zap.Logger,
) *RegistrationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationService{
		users:     users,
		hasher:    hasher,
		validator: validator,
		defaults:  defaults,
		events:    events,
		logger:    log,
	}
}

// RegisterInput carries the raw registration fields.
type RegisterInput struct {
	Firstname    string
	Lastname     string
	Country      string
	Department   string
	Municipality string
	State        string
	DocumentType string
	Document     string
	Email        string
	Password     string
	Avatar       string
	Active       *bool
}

// RegisterUser validates the input, hashes the password, and persists the
// new user. The returned record still carries the hash; callers strip it
// before responding.
func (s *RegistrationService) RegisterUser(ctx context.Context, input RegisterInput) (domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := s.validator.ValidateRegistration(
		input.DocumentType,
		input.Country,
		input.Department,
		input.Municipality,
		input.State,
		input.Email,
		input.Password,
	); err != nil {
		return domain.User{}, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	role := s.defaults.DefaultRole
	if role == "" {
		role = "user"
	}

	active := s.defaults.DefaultActive
	if input.Active != nil {
		active = *input.Active
	}

	avatar := strings.TrimSpace(input.Avatar)
	if avatar == "" {
		avatar = s.defaults.DefaultAvatar
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Country:      input.Country,
		Department:   input.Department,
		Municipality: input.Municipality,
		State:        input.State,
		DocumentType: input.DocumentType,
		Document:     input.Document,
		Email:        strings.ToLower(input.Email),
		PasswordHash: passwordHash,
		Avatar:       avatar,
		Role:         role,
		Active:       active,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.publishRegistered(ctx, user)

	return user, nil
}

// publishRegistered emits the registration event. Event delivery is best
// effort and never fails the request.
func (s *RegistrationService) publishRegistered(ctx context.Context, user domain.User) {
	if s.events == nil {
		return
	}

	event := domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID,
		Email:        user.Email,
		Country:      user.Country,
		Role:         user.Role,
		Active:       user.Active,
		RegisteredAt: time.Now().UTC(),
	}

	if err := s.events.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Warn("failed to publish user.registered event",
			zap.String("user_id", user.ID),
			zap.String("email", logger.MaskEmail(user.Email)),
			zap.Error(err),
		)
	}
}
