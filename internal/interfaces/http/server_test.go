package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/repairnotes-api/internal/application/analytics"
	"github.com/jhoicas/repairnotes-api/internal/application/auth"
	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
	"github.com/jhoicas/repairnotes-api/internal/domain/entity"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/repairnotes-api/internal/interfaces/http"
	"github.com/jhoicas/repairnotes-api/pkg/jwt"
	"github.com/jhoicas/repairnotes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type nopAvatars struct{}

func (nopAvatars) Save(_ context.Context, name string, _ io.Reader) (string, error) {
	return "avatar-1-" + name, nil
}
func (nopAvatars) Remove(context.Context, string) error { return nil }

type stubPDF struct{}

func (stubPDF) GenerateAnalyticsReport(context.Context, *dto.AnalyticsReportDTO) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

type testServer struct {
	app    *fiber.App
	store  *memory.Store
	issuer *jwt.Issuer
	clock  *fakeClock
}

type serverOption func(*apphttp.RouterDeps)

// newTestServer arma la app completa sobre el store en memoria, igual que cmd/api.
func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)}
	issuer, err := jwt.NewIssuer(jwt.Config{AccessSecret: "acc-secret", RefreshSecret: "ref-secret", Now: clock.Now})
	require.NoError(t, err)

	store := memory.NewStore()
	analyticsUC, err := usecase.NewAnalyticsUseCase(store.Analytics(), store.Sessions(), "UTC", clock.Now)
	require.NoError(t, err)
	log := logger.Nop()

	deps := apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(store.Users(), store.Sessions(), issuer, clock.Now),
		NoteUC:        usecase.NewNoteUseCase(store.Notes(), store.Users(), clock.Now),
		UserUC:        usecase.NewUserUseCase(store.Users(), store.Notes(), nopAvatars{}, "http://api.test/uploads/AVATAR.png", clock.Now),
		AnalyticsUC:   analyticsUC,
		ReportUC:      analytics.NewReportUseCase(analyticsUC, stubPDF{}, clock.Now),
		Verifier:      issuer,
		Cookie:        apphttp.CookieConfig{Secure: true, MaxAge: issuer.RefreshTTL()},
		PublicBaseURL: "http://api.test",
		ServiceName:   "repairnotes-api",
		Log:           log,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, deps)
	app.Use(apphttp.NotFound)

	return &testServer{app: app, store: store, issuer: issuer, clock: clock}
}

func (s *testServer) addUser(t *testing.T, id, username, password string, roles ...entity.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.store.Users().Create(context.Background(), &entity.User{
		ID: id, Username: username, PasswordHash: string(hash), Roles: roles, Active: true,
		Avatar: "http://api.test/uploads/" + id + ".png", CreatedAt: s.clock.Now(), UpdatedAt: s.clock.Now(),
	}))
}

// bearer token de acceso válido para username/roles.
func (s *testServer) bearer(t *testing.T, username string, roles ...string) string {
	t.Helper()
	tok, err := s.issuer.IssueAccessToken(username, roles)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do lanza la petición; body se serializa a JSON si no es nil.
func (s *testServer) do(t *testing.T, method, path, authHeader string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[map[string]any](t, resp)["message"].(string)
}

func refreshCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.RefreshCookieName {
			return c
		}
	}
	return nil
}
