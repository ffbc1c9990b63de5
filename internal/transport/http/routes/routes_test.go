package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/ValentinaMarinG/react-project-backend/internal/core/domain"
	"github.com/ValentinaMarinG/react-project-backend/internal/core/port"
	"github.com/ValentinaMarinG/react-project-backend/internal/infra/config"
	"github.com/ValentinaMarinG/react-project-backend/internal/infra/security"
	"github.com/ValentinaMarinG/react-project-backend/internal/repository"
	httproutes "github.com/ValentinaMarinG/react-project-backend/internal/transport/http/routes"
	"github.com/ValentinaMarinG/react-project-backend/internal/usecase"
)

type memoryUserRepo struct {
	users map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]domain.User)}
}

// duplicateEmailErr mirrors the unique violation the users_email_key
// constraint raises in Postgres.
func duplicateEmailErr() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
}

func (r *memoryUserRepo) Create(_ context.Context, user domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return duplicateEmailErr()
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		copy := user
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copy := user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepo) List(_ context.Context, filter port.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if filter.Active != nil && user.Active != *filter.Active {
			continue
		}
		result = append(result, user)
	}
	return result, nil
}

func (r *memoryUserRepo) Update(_ context.Context, user domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return duplicateEmailErr()
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		App: config.AppSettings{Env: "test", CORSOrigins: []string{"*"}},
		JWT: config.JWTSettings{
			Secret:          "routes-test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: time.Hour,
		},
		Validation: config.ValidationSettings{
			AllowedEmailDomains: []string{"gmail.com", "outlook.com"},
			AllowedDocumentTypes: []string{
				"Cédula de ciudadanía",
				"Cédula extranjera",
				"Tarjeta de identidad",
				"Pasaporte",
			},
			DefaultRole:   "user",
			DefaultActive: true,
			DefaultAvatar: "uploads/user/avatar/avatar3.jpg",
		},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *memoryUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	repo := newMemoryUserRepo()
	hasher := security.NewBcryptHasher()

	issuer, err := security.NewTokenIssuer(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}

	validator := usecase.NewFieldValidator(cfg.Validation)
	registration := usecase.NewRegistrationService(repo, hasher, validator, cfg.Validation, nil, zap.NewNop())
	auth := usecase.NewAuthService(repo, hasher, issuer, nil, zap.NewNop())
	users := usecase.NewUserService(repo, hasher, registration)

	engine := httproutes.Register(httproutes.Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
		Services: httproutes.ServiceSet{
			Auth:         auth,
			Registration: registration,
			Users:        users,
		},
	})

	return engine, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerPayload() map[string]any {
	return map[string]any{
		"firstname":    "Ana",
		"lastname":     "Marin",
		"country":      "Colombia",
		"department":   "Antioquia",
		"municipality": "Medellín",
		"documenttype": "Cédula de ciudadanía",
		"document":     "1029384756",
		"email":        "ana@gmail.com",
		"password":     "secret-password",
	}
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/healthz", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestRegisterLoginRefreshFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", registerPayload(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Fatalf("register response leaked password material: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "ana@gmail.com",
		"password": "secret-password",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var login struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.Access == "" || login.Refresh == "" {
		t.Fatal("login response missing tokens")
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh_access_token", map[string]any{
		"token": login.Refresh,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var refresh struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &refresh); err != nil {
		t.Fatalf("decode refresh response: %v", err)
	}
	if refresh.AccessToken == "" {
		t.Fatal("refresh response missing access token")
	}

	// An access token submitted to the refresh endpoint is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh_access_token", map[string]any{
		"token": login.Access,
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh with access token: expected 401, got %d", w.Code)
	}
}

func TestLoginErrorStatuses(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", registerPayload(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing password", map[string]any{"email": "ana@gmail.com"}, http.StatusBadRequest},
		{"unknown email", map[string]any{"email": "nadie@gmail.com", "password": "x"}, http.StatusNotFound},
		{"wrong password", map[string]any{"email": "ana@gmail.com", "password": "wrong"}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", tc.body, nil)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	r, repo := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", registerPayload(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}

	for id, user := range repo.users {
		user.Active = false
		repo.users[id] = user
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "ana@gmail.com",
		"password": "secret-password",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive account, got %d", w.Code)
	}
}

func TestRegisterValidationFailure(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := registerPayload()
	payload["email"] = "ana@yahoo.com"

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", payload, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for disallowed email domain, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/me", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without authorization header, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/users/me", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}
}

func TestProtectedRoutesWithValidToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", registerPayload(), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "ana@gmail.com",
		"password": "secret-password",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", w.Code)
	}

	var login struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/users/me", nil, map[string]string{
		"Authorization": "Bearer " + login.Access,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var me struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me.Email != "ana@gmail.com" {
		t.Fatalf("unexpected email in me response: %s", me.Email)
	}
}

func registerUser(t *testing.T, r *gin.Engine, email, document string) {
	t.Helper()

	payload := registerPayload()
	payload["email"] = email
	payload["document"] = document

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", payload, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", email, w.Code, w.Body.String())
	}
}

func promoteToAdmin(t *testing.T, repo *memoryUserRepo, email string) {
	t.Helper()

	for id, user := range repo.users {
		if user.Email == email {
			user.Role = "admin"
			repo.users[id] = user
			return
		}
	}
	t.Fatalf("no stored user with email %s", email)
}

func loginToken(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", email, w.Code, w.Body.String())
	}

	var login struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return login.Access
}

func userIDByEmail(t *testing.T, repo *memoryUserRepo, email string) string {
	t.Helper()

	for id, user := range repo.users {
		if user.Email == email {
			return id
		}
	}
	t.Fatalf("no stored user with email %s", email)
	return ""
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestWriteRoutesForbiddenForRegularUsers(t *testing.T) {
	r, repo := newTestRouter(t)

	registerUser(t, r, "ana@gmail.com", "1029384756")
	token := loginToken(t, r, "ana@gmail.com", "secret-password")
	id := userIDByEmail(t, repo, "ana@gmail.com")

	writes := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"create", http.MethodPost, "/api/v1/users", registerPayload()},
		{"update", http.MethodPatch, "/api/v1/users/" + id, map[string]any{"firstname": "Anita"}},
		{"delete", http.MethodDelete, "/api/v1/users/" + id, nil},
	}

	for _, tc := range writes {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, tc.method, tc.path, tc.body, bearer(token))
			if w.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d (%s)", w.Code, w.Body.String())
			}
		})
	}

	// Read routes stay open to any authenticated caller.
	w := doJSON(t, r, http.MethodGet, "/api/v1/users", nil, bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestAdminManagesUsers(t *testing.T) {
	r, repo := newTestRouter(t)

	registerUser(t, r, "ana@gmail.com", "1029384756")
	promoteToAdmin(t, repo, "ana@gmail.com")
	token := loginToken(t, r, "ana@gmail.com", "secret-password")

	payload := registerPayload()
	payload["email"] = "luis@gmail.com"
	payload["document"] = "5647382910"

	w := doJSON(t, r, http.MethodPost, "/api/v1/users", payload, bearer(token))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	luisID := userIDByEmail(t, repo, "luis@gmail.com")

	w = doJSON(t, r, http.MethodPatch, "/api/v1/users/"+luisID, map[string]any{
		"firstname": "Luis Alberto",
	}, bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if repo.users[luisID].Firstname != "Luis Alberto" {
		t.Fatalf("update not persisted: %q", repo.users[luisID].Firstname)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/v1/users/"+luisID, nil, bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if _, ok := repo.users[luisID]; ok {
		t.Fatal("delete did not remove the user")
	}
}

func TestDuplicateEmailConflicts(t *testing.T) {
	r, repo := newTestRouter(t)

	registerUser(t, r, "ana@gmail.com", "1029384756")
	registerUser(t, r, "luis@gmail.com", "5647382910")
	promoteToAdmin(t, repo, "ana@gmail.com")
	token := loginToken(t, r, "ana@gmail.com", "secret-password")

	// Registering an email that is already taken.
	payload := registerPayload()
	payload["document"] = "1111111111"
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", payload, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("register duplicate: expected 409, got %d (%s)", w.Code, w.Body.String())
	}

	// Creating a user with a taken email through the admin route.
	w = doJSON(t, r, http.MethodPost, "/api/v1/users", payload, bearer(token))
	if w.Code != http.StatusConflict {
		t.Fatalf("create duplicate: expected 409, got %d (%s)", w.Code, w.Body.String())
	}

	// Updating a user onto another user's email.
	luisID := userIDByEmail(t, repo, "luis@gmail.com")
	w = doJSON(t, r, http.MethodPatch, "/api/v1/users/"+luisID, map[string]any{
		"email": "ana@gmail.com",
	}, bearer(token))
	if w.Code != http.StatusConflict {
		t.Fatalf("update duplicate: expected 409, got %d (%s)", w.Code, w.Body.String())
	}
}
