package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom-occupancy-tracker/internal/config"
	domainAccount "classroom-occupancy-tracker/internal/domain/account"
	domainStatus "classroom-occupancy-tracker/internal/domain/status"
	"classroom-occupancy-tracker/internal/middleware"
	accountUsecase "classroom-occupancy-tracker/internal/usecase/account"
	statusUsecase "classroom-occupancy-tracker/internal/usecase/status"
	"classroom-occupancy-tracker/pkg/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// --- in-memory fakes ---

type fakeAccountRepo struct {
	accounts map[string]*domainAccount.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domainAccount.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, a *domainAccount.Account) error {
	if _, ok := f.accounts[a.Username]; ok {
		return domainAccount.ErrUsernameTaken
	}
	f.accounts[a.Username] = a
	return nil
}

func (f *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domainAccount.Account, error) {
	a, ok := f.accounts[username]
	if !ok {
		return nil, domainAccount.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.accounts)), nil
}

func (f *fakeAccountRepo) SetResetToken(_ context.Context, username, token string, expiresAt time.Time) error {
	a, ok := f.accounts[username]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	a.ResetToken = &token
	a.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeAccountRepo) RedeemResetToken(_ context.Context, username, token, newPasswordHash string, now time.Time) error {
	a, ok := f.accounts[username]
	if !ok || a.ResetToken == nil || *a.ResetToken != token || a.ResetTokenExpiresAt == nil || !a.ResetTokenExpiresAt.After(now) {
		return domainAccount.ErrInvalidResetToken
	}
	a.PasswordHash = newPasswordHash
	a.ResetToken = nil
	a.ResetTokenExpiresAt = nil
	return nil
}

type fakeStatusRepo struct {
	records map[domainStatus.Kind]map[string]bool
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{records: map[domainStatus.Kind]map[string]bool{
		domainStatus.KindRoom: {},
		domainStatus.KindLab:  {},
	}}
}

func (f *fakeStatusRepo) Snapshot(_ context.Context, kind domainStatus.Kind) ([]domainStatus.Record, error) {
	m, ok := f.records[kind]
	if !ok {
		return nil, domainStatus.ErrUnknownKind
	}
	records := make([]domainStatus.Record, 0, len(m))
	for name, occupied := range m {
		records = append(records, domainStatus.Record{Name: name, Occupied: occupied})
	}
	return records, nil
}

func (f *fakeStatusRepo) Upsert(_ context.Context, kind domainStatus.Kind, name string, occupied bool) (*domainStatus.Record, error) {
	m, ok := f.records[kind]
	if !ok {
		return nil, domainStatus.ErrUnknownKind
	}
	m[name] = occupied
	return &domainStatus.Record{Name: name, Occupied: occupied}, nil
}

func (f *fakeStatusRepo) Count(_ context.Context, kind domainStatus.Kind) (int64, error) {
	return int64(len(f.records[kind])), nil
}

func (f *fakeStatusRepo) CreateBatch(_ context.Context, kind domainStatus.Kind, records []domainStatus.Record) error {
	for _, rec := range records {
		f.records[kind][rec.Name] = rec.Occupied
	}
	return nil
}

type discardMailer struct {
	lastTo   string
	lastBody string
}

func (m *discardMailer) Send(_ context.Context, to, _, htmlBody string) error {
	m.lastTo = to
	m.lastBody = htmlBody
	return nil
}

// --- test harness ---

type testEnv struct {
	router      *gin.Engine
	accountRepo *fakeAccountRepo
	statusRepo  *fakeStatusRepo
	mailer      *discardMailer
	cfg         *config.Config
}

// newTestEnv wires the real handlers and auth middleware over in-memory
// stores, seeded the same way first-run seeding would.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{BaseURL: "http://localhost:3001"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		SMTP:   config.SMTPConfig{RecipientDomain: "example.com"},
	}

	accountRepo := newFakeAccountRepo()
	statusRepo := newFakeStatusRepo()
	mailer := &discardMailer{}

	hash, err := utils.HashPassword("1234")
	require.NoError(t, err)
	require.NoError(t, accountRepo.Create(context.Background(), &domainAccount.Account{
		Username:     "faculty",
		PasswordHash: hash,
	}))

	for _, name := range domainStatus.DefaultRooms() {
		statusRepo.records[domainStatus.KindRoom][name] = false
	}
	for _, name := range domainStatus.DefaultLabs() {
		statusRepo.records[domainStatus.KindLab][name] = false
	}

	accountHandler := NewAccountHandler(accountUsecase.NewService(accountRepo, mailer, cfg))
	statusHandler := NewStatusHandler(statusUsecase.NewService(statusRepo))

	router := gin.New()
	api := router.Group("/api")
	accountHandler.RegisterPublicRoutes(api)
	statusHandler.RegisterPublicRoutes(api.Group("/public"))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	accountHandler.RegisterProtectedRoutes(protected)
	statusHandler.RegisterProtectedRoutes(protected)

	return &testEnv{
		router:      router,
		accountRepo: accountRepo,
		statusRepo:  statusRepo,
		mailer:      mailer,
		cfg:         cfg,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) loginAs(t *testing.T, username, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

// --- tests ---

func TestPublicRoomStatus_AfterSeeding(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/public/room-status", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Len(t, snapshot, 16)
	for name, occupied := range snapshot {
		assert.False(t, occupied, "room %s should start unoccupied", name)
	}
}

func TestPublicLabStatus_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/public/lab-status", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Len(t, snapshot, 6)
}

func TestLogin_SeededDefaultAccount(t *testing.T) {
	env := newTestEnv(t)

	token := env.loginAs(t, "faculty", "1234")

	w := env.do(t, http.MethodGet, "/api/room-status", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Len(t, snapshot, 16)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/login", "",
		`{"username":"faculty","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
}

func TestProtectedStatus_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/room-status", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedStatus_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/room-status", "not-a-token", "")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
}

func TestProtectedStatus_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	expired, err := utils.GenerateToken("faculty", env.cfg.JWT.Secret, -time.Second)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/room-status", expired, "")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateRoomStatus(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "faculty", "1234")

	w := env.do(t, http.MethodPost, "/api/room-status", token,
		`{"room":"A11","status":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Message string              `json:"message"`
		Data    domainStatus.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Room status updated successfully", body.Message)
	assert.Equal(t, "A11", body.Data.Name)
	assert.True(t, body.Data.Occupied)

	assert.True(t, env.statusRepo.records[domainStatus.KindRoom]["A11"])
}

func TestUpdateRoomStatus_ExplicitFalse(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "faculty", "1234")

	env.statusRepo.records[domainStatus.KindRoom]["A11"] = true

	w := env.do(t, http.MethodPost, "/api/room-status", token,
		`{"room":"A11","status":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, env.statusRepo.records[domainStatus.KindRoom]["A11"])
}

func TestUpdateLabStatus_OutsideCatalog(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "faculty", "1234")

	w := env.do(t, http.MethodPost, "/api/lab-status", token,
		`{"lab":"Lab 9","status":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, env.statusRepo.records[domainStatus.KindLab]["Lab 9"])
}

func TestUpdateRoomStatus_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "faculty", "1234")

	w := env.do(t, http.MethodPost, "/api/room-status", token, `{"room":"A11"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/register", "",
		`{"username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginAs(t, "faculty", "1234")

	w := env.do(t, http.MethodPost, "/api/register", token,
		`{"username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/register", token,
		`{"username":"alice","password":"pw2"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Username already exists"}`, w.Body.String())

	// The first registration won; the new password never applied.
	token2 := env.loginAs(t, "alice", "pw1")
	assert.NotEmpty(t, token2)
}

func TestResetPasswordRequest_UnknownUsername(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/reset-password-request", "",
		`{"username":"ghost"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Username not found"}`, w.Body.String())
}

func TestResetPasswordFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/reset-password-request", "",
		`{"username":"faculty"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "faculty@example.com", env.mailer.lastTo)

	token := *env.accountRepo.accounts["faculty"].ResetToken

	w = env.do(t, http.MethodPost, "/api/reset-password", "",
		`{"username":"faculty","token":"`+token+`","newPassword":"fresh-pw"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Replay fails now that the token is cleared.
	w = env.do(t, http.MethodPost, "/api/reset-password", "",
		`{"username":"faculty","token":"`+token+`","newPassword":"other"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired reset token"}`, w.Body.String())

	env.loginAs(t, "faculty", "fresh-pw")
}
