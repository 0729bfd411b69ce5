package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/internal/service/auth"
	"github.com/datelohan/projetorh/internal/service/user"
	"github.com/datelohan/projetorh/pkg/config"
	"github.com/datelohan/projetorh/pkg/crypto"
	jwtpkg "github.com/datelohan/projetorh/pkg/jwt"
)

const testSecret = "test-secret"

type userRepoStub struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]*domain.User)}
}

func (u *userRepoStub) CreateUser(_ context.Context, account *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.users {
		if existing.Email == account.Email {
			return repository.ErrConflict
		}
	}
	copied := *account
	u.users[account.ID] = &copied
	return nil
}

func (u *userRepoStub) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, account := range u.users {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *userRepoStub) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if account, ok := u.users[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (u *userRepoStub) ListUsers(_ context.Context) ([]domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]domain.User, 0, len(u.users))
	for _, account := range u.users {
		out = append(out, *account)
	}
	return out, nil
}

func (u *userRepoStub) UpdateUser(_ context.Context, account *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	current, ok := u.users[account.ID]
	if !ok {
		return repository.ErrNotFound
	}
	copied := *account
	if copied.PasswordHash == "" {
		copied.PasswordHash = current.PasswordHash
	}
	u.users[account.ID] = &copied
	return nil
}

func (u *userRepoStub) DeleteUser(_ context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(u.users, id)
	return nil
}

type rateLimiterStub struct {
	mu      sync.Mutex
	calls   []rateLimitCall
	allowFn func(key string, limit int, window time.Duration) rateDecision
}

type rateLimitCall struct {
	key    string
	limit  int
	window time.Duration
}

func (rl *rateLimiterStub) Allow(key string, limit int, window time.Duration) rateDecision {
	rl.mu.Lock()
	rl.calls = append(rl.calls, rateLimitCall{key: key, limit: limit, window: window})
	fn := rl.allowFn
	rl.mu.Unlock()
	if fn != nil {
		return fn(key, limit, window)
	}
	return rateDecision{allowed: true, count: 1, windowEnd: time.Now().Add(window)}
}

func (rl *rateLimiterStub) Close() {}

func setupRouter(t *testing.T) (*Router, *userRepoStub) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newUserRepoStub()
	cfg := config.APIConfig{JWTSecret: testSecret, TokenTTL: time.Hour}
	return &Router{
		logger:  logger,
		auth:    auth.New(repo, logger, cfg),
		users:   user.New(repo, logger),
		limiter: &rateLimiterStub{},
	}, repo
}

func seedAccount(t *testing.T, repo *userRepoStub, id, email, password string, active bool) {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.users[id] = &domain.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		Active:       active,
	}
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwtpkg.Sign(subject, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	msg, _ := payload["message"].(string)
	return msg
}

func TestGuardMissingHeader(t *testing.T) {
	router, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rr := httptest.NewRecorder()
	router.requireAuth(router.handleMe)(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "token not provided" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestGuardWrongScheme(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "a@example.com", "pw", true)
	token := signToken(t, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Token "+token)
	rr := httptest.NewRecorder()
	router.requireAuth(router.handleMe)(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "invalid token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestGuardEmptyToken(t *testing.T) {
	router, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer ")
	rr := httptest.NewRecorder()
	router.requireAuth(router.handleMe)(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "invalid token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestGuardTamperedToken(t *testing.T) {
	router, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rr := httptest.NewRecorder()
	router.requireAuth(router.handleMe)(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "not authorized" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestGuardExpiredTokenSameMessageAsTampered(t *testing.T) {
	router, _ := setupRouter(t)
	expired, err := jwtpkg.Sign("user-1", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr := httptest.NewRecorder()
	router.requireAuth(router.handleMe)(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "not authorized" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestGuardSubjectlessToken(t *testing.T) {
	router, _ := setupRouter(t)
	token := signToken(t, "")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.requireAuth(router.handleMe)(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "invalid token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestMeReturnsPublicProfile(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "ana@example.com", "pw", true)
	token := signToken(t, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.requireAuth(router.handleMe)(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(strings.ToLower(body), "password") {
		t.Fatalf("response leaks credentials: %s", body)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["email"] != "ana@example.com" {
		t.Fatalf("unexpected email %v", payload["email"])
	}
}

func TestMeDeletedAccount(t *testing.T) {
	router, _ := setupRouter(t)
	// a valid token outlives its account; the guard passes and the
	// profile lookup reports the gap
	token := signToken(t, "deleted-user")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.requireAuth(router.handleMe)(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "user not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestLoginValidation(t *testing.T) {
	router, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@example.com"}`))
	rr := httptest.NewRecorder()
	router.handleLogin(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "email and password are required" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestLoginUnknownAndWrongPasswordShareMessage(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "ana@example.com", "right", true)

	for _, body := range []string{
		`{"email":"ghost@example.com","password":"x"}`,
		`{"email":"ana@example.com","password":"wrong"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.handleLogin(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s, got %d", body, rr.Code)
		}
		if msg := decodeMessage(t, rr); msg != "invalid credentials" {
			t.Fatalf("unexpected message %q", msg)
		}
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "inactive@example.com", "pw", false)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"inactive@example.com","password":"pw"}`))
	rr := httptest.NewRecorder()
	router.handleLogin(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "inactive account" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "ana@example.com", "pw", true)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"pw"}`))
	rr := httptest.NewRecorder()
	router.handleLogin(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	subject, err := jwtpkg.Verify(payload.Token, testSecret)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("token subject %q", subject)
	}
	if payload.User["email"] != "ana@example.com" {
		t.Fatalf("unexpected user payload: %v", payload.User)
	}
}

func TestRegisterValidation(t *testing.T) {
	router, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"name":"X","email":"x@example.com"}`))
	rr := httptest.NewRecorder()
	router.handleRegister(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "name, email and password are required" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "taken@example.com", "pw", true)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"name":"Dup","email":"taken@example.com","password":"pw"}`))
	rr := httptest.NewRecorder()
	router.handleRegister(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "email already registered" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRegisterCreatesAccountWithToken(t *testing.T) {
	router, repo := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"name":"New","email":"new@example.com","password":"pw","role":"NOT_A_ROLE"}`))
	rr := httptest.NewRecorder()
	router.handleRegister(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	var payload struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.User["role"] != "EMPLOYEE" {
		t.Fatalf("expected role fallback, got %v", payload.User["role"])
	}
	if active, ok := payload.User["active"].(bool); !ok || !active {
		t.Fatalf("expected active default true")
	}
	if _, err := jwtpkg.Verify(payload.Token, testSecret); err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	stored, err := repo.GetUserByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("expected account persisted: %v", err)
	}
	if stored.PasswordHash == "pw" || stored.PasswordHash == "" {
		t.Fatalf("expected stored password hashed")
	}
}

func TestUsersCreateRejectsInvalidRole(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/usuarios", strings.NewReader(`{"name":"X","email":"x@example.com","password":"pw","role":"ROOT"}`))
	rr := httptest.NewRecorder()
	router.handleUsers(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "invalid role, allowed values: ADMIN, HR, MANAGER, EMPLOYEE" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestUserDeleteMissing(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/usuarios/ghost", nil)
	rr := httptest.NewRecorder()
	router.handleUserByID(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if msg := decodeMessage(t, rr); msg != "user not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestUserDeleteReturnsNoContent(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "gone@example.com", "pw", true)

	req := httptest.NewRequest(http.MethodDelete, "/usuarios/user-1", nil)
	rr := httptest.NewRecorder()
	router.handleUserByID(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if _, err := repo.GetUserByID(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected account removed")
	}
}

func TestRateLimitDeniedRequest(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "ana@example.com", "pw", true)
	token := signToken(t, "user-1")

	reset := time.Unix(1_950_000_000, 0)
	limiter := &rateLimiterStub{allowFn: func(key string, limit int, window time.Duration) rateDecision {
		return rateDecision{allowed: false, count: limit, windowEnd: reset}
	}}
	router.limiter = limiter

	handler := router.handlerAuthRate("/usuarios", rateLimitUserWrite, rateWindowDefault, router.handleUsers)
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("X-RateLimit-Limit") != "60" {
		t.Fatalf("unexpected limit header %q", rr.Header().Get("X-RateLimit-Limit"))
	}
	if rr.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("unexpected remaining header %q", rr.Header().Get("X-RateLimit-Remaining"))
	}
	if rr.Header().Get("X-RateLimit-Reset") != "1950000000" {
		t.Fatalf("unexpected reset header %q", rr.Header().Get("X-RateLimit-Reset"))
	}
	if msg := decodeMessage(t, rr); msg != "rate limit exceeded" {
		t.Fatalf("unexpected message %q", msg)
	}

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.calls) != 1 {
		t.Fatalf("expected limiter called once, got %d", len(limiter.calls))
	}
	if limiter.calls[0].key != "user:user-1" {
		t.Fatalf("unexpected limiter key %q", limiter.calls[0].key)
	}
}

func TestRateLimitAllowedRequestSetsHeaders(t *testing.T) {
	router, repo := setupRouter(t)
	seedAccount(t, repo, "user-1", "ana@example.com", "pw", true)
	token := signToken(t, "user-1")

	reset := time.Unix(1_950_000_100, 0)
	router.limiter = &rateLimiterStub{allowFn: func(key string, limit int, window time.Duration) rateDecision {
		return rateDecision{allowed: true, count: 3, windowEnd: reset}
	}}

	handler := router.handlerAuthRate("/usuarios", rateLimitUserWrite, rateWindowDefault, router.handleUsers)
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-RateLimit-Remaining") != "57" {
		t.Fatalf("unexpected remaining header %q", rr.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestMemoryRateLimiterWindow(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		decision := limiter.Allow("k", 3, time.Minute)
		if !decision.allowed {
			t.Fatalf("request %d unexpectedly denied", i+1)
		}
	}
	decision := limiter.Allow("k", 3, time.Minute)
	if decision.allowed {
		t.Fatalf("expected fourth request denied")
	}
	if decision.count != 3 {
		t.Fatalf("unexpected count %d", decision.count)
	}
}

func TestHealthReportsDatabaseOutage(t *testing.T) {
	router, _ := setupRouter(t)
	router.dbHealth = func(context.Context) error { return context.DeadlineExceeded }

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.handleHealth(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["status"] != "degraded" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.handleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("unexpected payload %v", payload)
	}
}
